// Package gen compiles declarative register bank definitions into Go source.
// A definition is a TOML file listing registers (name, underlying type,
// access mode, offset, reset) and their fields (name, width, offset, named
// values). The output is a bank struct of capability-typed registers plus
// field descriptors and named value constants; every mask and offset in the
// generated API is computed here, so no consumer ever writes one by hand.
//
// All definition errors are caught at generation time: an invalid definition
// produces no output file, and the build that depends on it fails.
package gen

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// BankDef is the root of a definition file.
type BankDef struct {
	Package   string        `toml:"package"`
	Bank      string        `toml:"bank"`
	Registers []RegisterDef `toml:"register"`

	// Source is the definition file path, recorded by Load for the generated
	// file header and error messages.
	Source string `toml:"-"`
}

// RegisterDef declares one register of a bank.
type RegisterDef struct {
	Name   string     `toml:"name"`
	Type   string     `toml:"type"`   // uint8, uint16, uint32, uint64
	Access string     `toml:"access"` // ro, wo, rw
	Offset uint64     `toml:"offset"` // byte offset within the bank
	Reset  uint64     `toml:"reset"`
	Fields []FieldDef `toml:"field"`
}

// Size returns the register width in bytes.
func (r *RegisterDef) Size() uint64 {
	return regTypes[r.Type].size
}

// FieldDef declares one bit field of a register.
type FieldDef struct {
	Name   string            `toml:"name"`
	Width  uint64            `toml:"width"`
	Offset uint64            `toml:"offset"` // bit offset of the lsb
	Values map[string]uint64 `toml:"values"`
}

type regType struct {
	bits uint64
	size uint64
}

var regTypes = map[string]regType{
	"uint8":  {8, 1},
	"uint16": {16, 2},
	"uint32": {32, 4},
	"uint64": {64, 8},
}

var accessTypes = map[string]string{
	"ro": "reg.R",
	"wo": "reg.W",
	"rw": "reg.RW",
}

// Load parses a definition file. Unknown keys are definition errors, so a
// typo cannot silently drop a constraint.
func Load(path string) (*BankDef, error) {
	var d BankDef
	md, err := toml.DecodeFile(path, &d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	d.Source = path
	return &d, nil
}
