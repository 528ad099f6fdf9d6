// Package regdef turns an annotated Go struct into a validated register bank.
//
// A bank is a struct whose exported fields are reg.R, reg.W or reg.RW
// registers carrying a "reg" struct tag:
//
//	type UART struct {
//		CTRL reg.RW[uint32] `reg:"offset=0x00,reset=0x1"`
//		STAT reg.R[uint32]  `reg:"offset=0x04"`
//		_    [8]byte
//		DATA reg.W[uint32]  `reg:"offset=0x10"`
//	}
//
// Init checks every declaration against the struct's actual memory layout,
// applies reset values, and returns the bank layout. Any violation is a
// definition error: the bank is unusable until the declaration is fixed,
// which MustInit turns into a panic at package init time.
package regdef

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"regio/log"
	"regio/reg"
)

// Access is a register's access mode. It is derived from the register's Go
// type, never declared in the tag, so the capability the type system enforces
// and the one tooling reports cannot diverge.
type Access uint8

//go:generate stringer -type=Access -trimprefix=Access

const (
	AccessRW Access = iota
	AccessRO
	AccessWO
)

type constError string

func (err constError) Error() string { return string(err) }

const (
	// ErrNotBank reports an Init argument that is not a pointer to struct.
	ErrNotBank constError = "regdef: bank must be a non-nil pointer to struct"

	// ErrBadTag reports a malformed "reg" struct tag.
	ErrBadTag constError = "regdef: malformed reg tag"

	// ErrResetRange reports a reset value wider than its register.
	ErrResetRange constError = "regdef: reset value exceeds register width"

	// ErrOffset reports a declared offset that contradicts the struct layout.
	ErrOffset constError = "regdef: declared offset does not match struct layout"

	// ErrDupOffset reports two registers declared at the same offset.
	ErrDupOffset constError = "regdef: duplicate register offset"

	// ErrAlign reports a register offset not aligned to its size.
	ErrAlign constError = "regdef: register offset not aligned to its size"
)

// RegInfo describes one register of an initialized bank.
type RegInfo struct {
	Name   string
	Offset uint
	Size   uint // bytes
	Access Access
	Reset  uint64
}

// Layout is the introspectable result of a bank definition.
type Layout struct {
	Bank string
	Size uint // span in bytes, up to the end of the last register
	Regs []RegInfo
}

// Lookup returns the register named name.
func (l *Layout) Lookup(name string) (RegInfo, bool) {
	for _, r := range l.Regs {
		if r.Name == name {
			return r, true
		}
	}
	return RegInfo{}, false
}

type kind struct {
	access Access
	size   uint
}

var kinds = map[reflect.Type]kind{
	reflect.TypeOf(reg.R[uint8]{}):   {AccessRO, 1},
	reflect.TypeOf(reg.R[uint16]{}):  {AccessRO, 2},
	reflect.TypeOf(reg.R[uint32]{}):  {AccessRO, 4},
	reflect.TypeOf(reg.R[uint64]{}):  {AccessRO, 8},
	reflect.TypeOf(reg.W[uint8]{}):   {AccessWO, 1},
	reflect.TypeOf(reg.W[uint16]{}):  {AccessWO, 2},
	reflect.TypeOf(reg.W[uint32]{}):  {AccessWO, 4},
	reflect.TypeOf(reg.W[uint64]{}):  {AccessWO, 8},
	reflect.TypeOf(reg.RW[uint8]{}):  {AccessRW, 1},
	reflect.TypeOf(reg.RW[uint16]{}): {AccessRW, 2},
	reflect.TypeOf(reg.RW[uint32]{}): {AccessRW, 4},
	reflect.TypeOf(reg.RW[uint64]{}): {AccessRW, 8},
}

// Init validates the bank declaration, applies reset values and returns its
// layout. Struct fields without a "reg" tag are ignored, which is how padding
// and auxiliary fields coexist with registers.
func Init(bank any) (*Layout, error) {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %T", ErrNotBank, bank)
	}
	sv := v.Elem()
	st := sv.Type()

	l := &Layout{Bank: st.Name()}
	seen := map[uint]string{}

	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		tag, ok := sf.Tag.Lookup("reg")
		if !ok {
			continue
		}
		if !sf.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s: register fields must be exported",
				ErrBadTag, st.Name(), sf.Name)
		}
		k, ok := kinds[sf.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s: field type %s is not a register",
				ErrBadTag, st.Name(), sf.Name, sf.Type)
		}

		offset, reset, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", st.Name(), sf.Name, err)
		}

		if offset%k.size != 0 {
			return nil, fmt.Errorf("%w: %s.%s: offset %#x, size %d",
				ErrAlign, st.Name(), sf.Name, offset, k.size)
		}
		if offset != uint(sf.Offset) {
			return nil, fmt.Errorf("%w: %s.%s: declared %#x, struct places it at %#x",
				ErrOffset, st.Name(), sf.Name, offset, sf.Offset)
		}
		if prev, dup := seen[offset]; dup {
			return nil, fmt.Errorf("%w: %s.%s and %s.%s at %#x",
				ErrDupOffset, st.Name(), prev, st.Name(), sf.Name, offset)
		}
		seen[offset] = sf.Name

		if maxv := maxForSize(k.size); reset > maxv {
			return nil, fmt.Errorf("%w: %s.%s: reset %#x > %#x",
				ErrResetRange, st.Name(), sf.Name, reset, maxv)
		}

		// The backing word is the register's only field.
		sv.Field(i).Field(0).SetUint(reset)

		l.Regs = append(l.Regs, RegInfo{
			Name:   sf.Name,
			Offset: offset,
			Size:   k.size,
			Access: k.access,
			Reset:  reset,
		})
		if end := offset + k.size; end > l.Size {
			l.Size = end
		}
	}

	sort.Slice(l.Regs, func(i, j int) bool { return l.Regs[i].Offset < l.Regs[j].Offset })

	log.ModDef.DebugZ("bank initialized").
		String("bank", l.Bank).
		Int("regs", int64(len(l.Regs))).
		Uint("size", uint64(l.Size)).
		End()
	return l, nil
}

// MustInit is Init for package-level bank definitions: a bad declaration must
// not yield a runnable artifact.
func MustInit(bank any) *Layout {
	l, err := Init(bank)
	if err != nil {
		panic(err)
	}
	return l
}

func maxForSize(size uint) uint64 {
	if size >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*size) - 1
}

func parseTag(tag string) (offset uint, reset uint64, err error) {
	hasOffset := false
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, val, found := strings.Cut(opt, "=")
		if !found {
			return 0, 0, fmt.Errorf("%w: option %q", ErrBadTag, opt)
		}
		switch key {
		case "offset":
			n, perr := strconv.ParseUint(val, 0, 32)
			if perr != nil {
				return 0, 0, fmt.Errorf("%w: offset %q: %v", ErrBadTag, val, perr)
			}
			offset = uint(n)
			hasOffset = true
		case "reset":
			n, perr := strconv.ParseUint(val, 0, 64)
			if perr != nil {
				return 0, 0, fmt.Errorf("%w: reset %q: %v", ErrBadTag, val, perr)
			}
			reset = n
		default:
			return 0, 0, fmt.Errorf("%w: unknown option %q", ErrBadTag, key)
		}
	}
	if !hasOffset {
		return 0, 0, fmt.Errorf("%w: missing offset", ErrBadTag)
	}
	return offset, reset, nil
}
