package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"sort"
)

// Generate validates the definition and emits the Go source for its bank.
func Generate(d *BankDef) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	regs := make([]*RegisterDef, len(d.Registers))
	for i := range d.Registers {
		regs[i] = &d.Registers[i]
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Offset < regs[j].Offset })

	var bb bytes.Buffer
	src := "a register definition"
	if d.Source != "" {
		src = filepath.Base(d.Source)
	}
	fmt.Fprintf(&bb, "// Code generated by reggen from %s. DO NOT EDIT.\n\n", src)
	fmt.Fprintf(&bb, "package %s\n\n", d.Package)
	fmt.Fprintf(&bb, "import (\n\t\"regio/reg\"\n\t\"regio/regdef\"\n)\n\n")

	// Bank struct. Blank padding fields keep each register at its declared
	// byte offset so the struct can be placed directly over mapped memory.
	fmt.Fprintf(&bb, "// %s register bank.\ntype %s struct {\n", d.Bank, d.Bank)
	cur, npad := uint64(0), 0
	for _, r := range regs {
		if r.Offset > cur {
			fmt.Fprintf(&bb, "\t_ [%d]byte\n", r.Offset-cur)
			npad++
		}
		tag := fmt.Sprintf("offset=%#x", r.Offset)
		if r.Reset != 0 {
			tag += fmt.Sprintf(",reset=%#x", r.Reset)
		}
		fmt.Fprintf(&bb, "\t%s %s[%s] `reg:\"%s\"`\n", r.Name, accessTypes[r.Access], r.Type, tag)
		cur = r.Offset + r.Size()
	}
	fmt.Fprintf(&bb, "}\n\n")

	// Field descriptors and named values.
	for _, r := range regs {
		if len(r.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&bb, "// %s.%s fields.\nvar (\n", d.Bank, r.Name)
		for i := range r.Fields {
			f := &r.Fields[i]
			fmt.Fprintf(&bb, "\t%s%s%s = reg.MustField[%s](%q, %d, %d)\n",
				d.Bank, r.Name, f.Name, r.Type, f.Name, f.Width, f.Offset)
		}
		fmt.Fprintf(&bb, ")\n\n")

		for i := range r.Fields {
			f := &r.Fields[i]
			if len(f.Values) == 0 {
				continue
			}
			fmt.Fprintf(&bb, "// Named values of %s.%s.%s.\nvar (\n", d.Bank, r.Name, f.Name)
			for _, name := range sortedValueNames(f.Values) {
				fmt.Fprintf(&bb, "\t%s%s%s%s = %s%s%s.MustNew(%d)\n",
					d.Bank, r.Name, f.Name, name, d.Bank, r.Name, f.Name, f.Values[name])
			}
			fmt.Fprintf(&bb, ")\n\n")
		}
	}

	fmt.Fprintf(&bb, `// Init checks the %[1]s declaration against its struct layout and applies
// reset values. Call it once after placing the bank over its backing memory.
func (b *%[1]s) Init() *regdef.Layout {
	return regdef.MustInit(b)
}

// New%[1]s returns an initialized %[1]s backed by ordinary memory, for
// emulation and tests.
func New%[1]s() *%[1]s {
	b := new(%[1]s)
	b.Init()
	return b
}
`, d.Bank)

	buf, err := format.Source(bb.Bytes())
	if err != nil {
		// A formatting failure means the emitter produced bad code. Return
		// the raw buffer anyway so it can be inspected.
		return bb.Bytes(), fmt.Errorf("bank %s: format generated source: %w", d.Bank, err)
	}
	return buf, nil
}

// sortedValueNames orders named values by literal, then name, so output is
// deterministic regardless of TOML map ordering.
func sortedValueNames(values map[string]uint64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := values[names[i]], values[names[j]]
		if vi != vj {
			return vi < vj
		}
		return names[i] < names[j]
	})
	return names
}
