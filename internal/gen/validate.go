package gen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Validate applies every definition-time rule. It returns the first violation
// found; Generate refuses a definition that has not passed it. Registers must
// be declared in ascending offset order, mirroring the memory they describe.
//
// Overlap between the bit ranges of sibling fields is deliberately not
// checked. The OR-composition stays well defined for overlapping fields, and
// some hardware genuinely exposes the same bits under two names, so that
// modeling call is left to the definition author.
func (d *BankDef) Validate() error {
	if err := checkIdent("package", d.Package); err != nil {
		return err
	}
	if err := checkExportedIdent("bank", d.Bank); err != nil {
		return err
	}
	if len(d.Registers) == 0 {
		return fmt.Errorf("bank %s: no registers", d.Bank)
	}

	regNames := map[string]bool{}
	end := uint64(0) // first free byte after the previous register
	for i := range d.Registers {
		r := &d.Registers[i]
		where := fmt.Sprintf("bank %s: register %s", d.Bank, r.Name)

		if err := checkExportedIdent("register", r.Name); err != nil {
			return fmt.Errorf("bank %s: %w", d.Bank, err)
		}
		if regNames[r.Name] {
			return fmt.Errorf("%s: duplicate register name", where)
		}
		regNames[r.Name] = true

		rt, ok := regTypes[r.Type]
		if !ok {
			return fmt.Errorf("%s: invalid type %q (want uint8, uint16, uint32 or uint64)", where, r.Type)
		}
		if _, ok := accessTypes[r.Access]; !ok {
			return fmt.Errorf("%s: invalid access %q (want ro, wo or rw)", where, r.Access)
		}
		if r.Offset%rt.size != 0 {
			return fmt.Errorf("%s: offset %#x not aligned to size %d", where, r.Offset, rt.size)
		}
		if r.Offset < end {
			return fmt.Errorf("%s: offset %#x overlaps previous register (ends at %#x)", where, r.Offset, end)
		}
		end = r.Offset + rt.size

		if maxv := maxForBits(rt.bits); r.Reset > maxv {
			return fmt.Errorf("%s: reset %#x exceeds %s", where, r.Reset, r.Type)
		}

		fieldNames := map[string]bool{}
		for j := range r.Fields {
			f := &r.Fields[j]
			fwhere := fmt.Sprintf("%s: field %s", where, f.Name)

			if err := checkExportedIdent("field", f.Name); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
			if fieldNames[f.Name] {
				return fmt.Errorf("%s: duplicate field name", fwhere)
			}
			fieldNames[f.Name] = true

			if f.Width == 0 {
				return fmt.Errorf("%s: width must be at least 1", fwhere)
			}
			if f.Offset+f.Width > rt.bits {
				return fmt.Errorf("%s: offset %d + width %d exceeds %s", fwhere, f.Offset, f.Width, r.Type)
			}

			// Named values go through the same bound formula as runtime
			// candidates: authoring mistakes die here, before any consumer
			// code exists.
			maxv := maxForBits(f.Width)
			for name, val := range f.Values {
				if err := checkExportedIdent("value", name); err != nil {
					return fmt.Errorf("%s: %w", fwhere, err)
				}
				if val > maxv {
					return fmt.Errorf("%s: value %s = %#x exceeds %d-bit field (max %#x)",
						fwhere, name, val, f.Width, maxv)
				}
			}
		}
	}
	return nil
}

func maxForBits(bits uint64) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

func checkIdent(what, s string) error {
	if s == "" {
		return fmt.Errorf("missing %s name", what)
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("%s name %q is not a valid identifier", what, s)
	}
	return nil
}

func checkExportedIdent(what, s string) error {
	if err := checkIdent(what, s); err != nil {
		return err
	}
	if r, _ := utf8.DecodeRuneInString(s); !unicode.IsUpper(r) {
		return fmt.Errorf("%s name %q must be exported", what, s)
	}
	return nil
}
