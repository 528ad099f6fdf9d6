package gen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/jx"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DumpJSON encodes the bank layout as JSON, for tools that consume register
// maps (debuggers, documentation generators).
func DumpJSON(d *BankDef) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var e jx.Encoder
	e.SetIdent(2)
	e.Obj(func(e *jx.Encoder) {
		e.Field("bank", func(e *jx.Encoder) { e.Str(d.Bank) })
		e.Field("package", func(e *jx.Encoder) { e.Str(d.Package) })
		e.Field("registers", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range d.Registers {
					r := &d.Registers[i]
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(r.Name) })
						e.Field("type", func(e *jx.Encoder) { e.Str(r.Type) })
						e.Field("access", func(e *jx.Encoder) { e.Str(r.Access) })
						e.Field("offset", func(e *jx.Encoder) { e.UInt64(r.Offset) })
						e.Field("reset", func(e *jx.Encoder) { e.UInt64(r.Reset) })
						e.Field("fields", func(e *jx.Encoder) {
							e.Arr(func(e *jx.Encoder) {
								for j := range r.Fields {
									f := &r.Fields[j]
									e.Obj(func(e *jx.Encoder) {
										e.Field("name", func(e *jx.Encoder) { e.Str(f.Name) })
										e.Field("width", func(e *jx.Encoder) { e.UInt64(f.Width) })
										e.Field("offset", func(e *jx.Encoder) { e.UInt64(f.Offset) })
										e.Field("mask", func(e *jx.Encoder) {
											e.UInt64(maxForBits(f.Width) << f.Offset)
										})
										if len(f.Values) > 0 {
											e.Field("values", func(e *jx.Encoder) {
												e.Obj(func(e *jx.Encoder) {
													for _, name := range sortedValueNames(f.Values) {
														e.Field(name, func(e *jx.Encoder) {
															e.UInt64(f.Values[name])
														})
													}
												})
											})
										}
									})
								}
							})
						})
					})
				}
			})
		})
	})
	return e.Bytes(), nil
}

// WriteInfo renders the bank layout as a table for humans.
func WriteInfo(d *BankDef, w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if w == nil {
		w = os.Stdout
	}

	t := table.NewWriter()
	t.SetTitle("Bank %s (package %s)", d.Bank, d.Package)
	t.SetStyle(table.StyleColoredBright)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Register", "Type", "Access", "Offset", "Reset", "Field", "Bits", "Values"})

	for i := range d.Registers {
		r := &d.Registers[i]
		if len(r.Fields) == 0 {
			t.AppendRow(table.Row{r.Name, r.Type, r.Access,
				hex(r.Offset), hex(r.Reset), "", "", ""})
			continue
		}
		for j := range r.Fields {
			f := &r.Fields[j]
			name, typ, access, off, reset := "", "", "", "", ""
			if j == 0 {
				name, typ, access = r.Name, r.Type, r.Access
				off, reset = hex(r.Offset), hex(r.Reset)
			}
			t.AppendRow(table.Row{name, typ, access, off, reset,
				f.Name, bitRange(f), valueList(f)})
		}
		t.AppendSeparator()
	}
	t.Render()
	return nil
}

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func bitRange(f *FieldDef) string {
	if f.Width == 1 {
		return fmt.Sprintf("%d", f.Offset)
	}
	return fmt.Sprintf("%d:%d", f.Offset+f.Width-1, f.Offset)
}

func valueList(f *FieldDef) string {
	if len(f.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, name := range sortedValueNames(f.Values) {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%d", name, f.Values[name])
	}
	return sb.String()
}
