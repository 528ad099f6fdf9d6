package reg

import (
	"errors"
	"testing"
)

func TestNewFieldMask(t *testing.T) {
	tests := []struct {
		width, offset uint
		mask          uint8
	}{
		{1, 0, 0b0000_0001},
		{1, 7, 0b1000_0000},
		{3, 2, 0b0001_1100},
		{8, 0, 0b1111_1111},
		{4, 4, 0b1111_0000},
	}
	for _, tt := range tests {
		f, err := NewField[uint8]("f", tt.width, tt.offset)
		if err != nil {
			t.Fatalf("NewField(%d, %d): %v", tt.width, tt.offset, err)
		}
		if f.Mask() != tt.mask {
			t.Errorf("NewField(%d, %d).Mask() = %08b, want %08b",
				tt.width, tt.offset, f.Mask(), tt.mask)
		}
	}
}

func TestNewFieldInvalid(t *testing.T) {
	if _, err := NewField[uint8]("f", 0, 3); !errors.Is(err, ErrZeroWidth) {
		t.Errorf("width 0: err = %v, want ErrZeroWidth", err)
	}
	if _, err := NewField[uint8]("f", 2, 7); !errors.Is(err, ErrFieldRange) {
		t.Errorf("offset+width overflow: err = %v, want ErrFieldRange", err)
	}
	if _, err := NewField[uint16]("f", 17, 0); !errors.Is(err, ErrFieldRange) {
		t.Errorf("width > register: err = %v, want ErrFieldRange", err)
	}
	// Limit cases are fine.
	if _, err := NewField[uint8]("f", 1, 7); err != nil {
		t.Errorf("1-bit field at msb: %v", err)
	}
	if _, err := NewField[uint64]("f", 64, 0); err != nil {
		t.Errorf("full-width field: %v", err)
	}
}

func TestMustFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustField with invalid definition did not panic")
		}
	}()
	MustField[uint8]("bad", 3, 6)
}

func TestFieldNewBounds(t *testing.T) {
	f := MustField[uint8]("color", 3, 2)

	// Every value that fits must land shifted at the field's position.
	for v := uint8(0); v <= 7; v++ {
		fv, err := f.New(v)
		if err != nil {
			t.Fatalf("New(%d): %v", v, err)
		}
		if want := v << 2; fv.Bits() != want {
			t.Errorf("New(%d).Bits() = %08b, want %08b", v, fv.Bits(), want)
		}
		if fv.Mask() != f.Mask() {
			t.Errorf("New(%d).Mask() = %08b, want %08b", v, fv.Mask(), f.Mask())
		}
	}

	// Every value that does not fit must be rejected, not truncated.
	for _, v := range []uint8{8, 9, 15, 0xff} {
		if _, err := f.New(v); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("New(%d): err = %v, want ErrOutOfBounds", v, err)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	f := MustField[uint8]("color", 3, 2)
	defer func() {
		if recover() == nil {
			t.Error("MustNew with out-of-range literal did not panic")
		}
	}()
	f.MustNew(8)
}

func TestFieldGet(t *testing.T) {
	f := MustField[uint16]("mode", 4, 9)
	raw := uint16(0b0001_0110_0000_0000)
	if got := f.Get(raw); got != 0b1011 {
		t.Errorf("Get(%016b) = %04b, want 1011", raw, got)
	}
}

func TestFieldIs(t *testing.T) {
	f := MustField[uint8]("kind", 2, 4)
	a := f.MustNew(2)
	if !f.Is(0b0010_1111, a) {
		t.Error("Is should match the field bits regardless of other bits")
	}
	if f.Is(0b0001_1111, a) {
		t.Error("Is matched the wrong field value")
	}
}

func TestMaxVal(t *testing.T) {
	if got := MaxVal[uint8](3); got != 7 {
		t.Errorf("MaxVal[uint8](3) = %d, want 7", got)
	}
	if got := MaxVal[uint8](8); got != 0xff {
		t.Errorf("MaxVal[uint8](8) = %#x, want 0xff", got)
	}
	if got := MaxVal[uint64](64); got != ^uint64(0) {
		t.Errorf("MaxVal[uint64](64) = %#x", got)
	}
	// Saturates instead of overflowing the shift.
	if got := MaxVal[uint8](200); got != 0xff {
		t.Errorf("MaxVal[uint8](200) = %#x, want 0xff", got)
	}
}

func TestBits(t *testing.T) {
	if Bits[uint8]() != 8 || Bits[uint16]() != 16 || Bits[uint32]() != 32 || Bits[uint64]() != 64 {
		t.Errorf("Bits: %d %d %d %d", Bits[uint8](), Bits[uint16](), Bits[uint32](), Bits[uint64]())
	}
}
