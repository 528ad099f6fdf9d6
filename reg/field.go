package reg

import "fmt"

// Field describes a named, bounded sub-range of bits within a register: a
// width, the offset of its least significant bit, and the mask derived from
// the two. A Field carries no register contents; it is the descriptor through
// which values are built, extracted and compared.
//
// Fields are built once, when a register bank is defined (by hand through
// MustField, or by reggen), and are immutable afterwards.
type Field[U Uint] struct {
	name   string
	width  uint
	offset uint
	mask   U
}

// NewField validates width and offset against the register width and returns
// the field descriptor. Width 0 and fields overflowing the register are
// definition errors.
func NewField[U Uint](name string, width, offset uint) (Field[U], error) {
	if width == 0 {
		return Field[U]{}, fmt.Errorf("%w: %s", ErrZeroWidth, name)
	}
	if offset+width > Bits[U]() {
		return Field[U]{}, fmt.Errorf("%w: %s: offset %d + width %d > %d",
			ErrFieldRange, name, offset, width, Bits[U]())
	}
	return Field[U]{
		name:   name,
		width:  width,
		offset: offset,
		mask:   MaxVal[U](width) << offset,
	}, nil
}

// MustField is like NewField but panics on invalid definitions. It is meant
// for package-level field descriptors, where a bad definition must not
// produce a usable artifact.
func MustField[U Uint](name string, width, offset uint) Field[U] {
	f, err := NewField[U](name, width, offset)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Field[U]) Name() string { return f.name }
func (f Field[U]) Width() uint  { return f.width }
func (f Field[U]) Offset() uint { return f.offset }
func (f Field[U]) Mask() U      { return f.mask }

func (f Field[U]) String() string {
	return fmt.Sprintf("%s[%d:%d]", f.name, f.offset+f.width-1, f.offset)
}

// New builds a FieldValue from a runtime-supplied value. It fails with
// ErrOutOfBounds when v does not fit in the field's width; it never truncates.
func (f Field[U]) New(v U) (FieldValue[U], error) {
	if !Fits(f.width, v) {
		return FieldValue[U]{}, fmt.Errorf("%w: %s: %#x > %#x",
			ErrOutOfBounds, f.name, uint64(v), uint64(MaxVal[U](f.width)))
	}
	return FieldValue[U]{bits: v << f.offset & f.mask, mask: f.mask}, nil
}

// MustNew is the definition-time counterpart of New, for literals and named
// value constants whose candidate is known when the definition is authored.
func (f Field[U]) MustNew(v U) FieldValue[U] {
	fv, err := f.New(v)
	if err != nil {
		panic(err)
	}
	return fv
}

// Get extracts this field's bits from a raw register value, shifted down to
// start at bit 0.
func (f Field[U]) Get(raw U) U {
	return raw & f.mask >> f.offset
}

// Is reports whether the field's bits in raw equal the given value, typically
// one of the field's named constants.
func (f Field[U]) Is(raw U, fv FieldValue[U]) bool {
	return raw&f.mask == fv.bits
}
