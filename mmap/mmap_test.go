package mmap_test

import (
	"errors"
	"testing"

	"regio/mmap"
	"regio/reg"
	"regio/regdef"
)

type gpioBank struct {
	MODE reg.RW[uint32] `reg:"offset=0x0"`
	SET  reg.W[uint32]  `reg:"offset=0x4"`
	LEV  reg.R[uint32]  `reg:"offset=0x8"`
}

func TestBankOverAnonRegion(t *testing.T) {
	r, err := mmap.OpenAnon(4096)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	gpio, err := mmap.Bank[gpioBank](r, 0x100)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := regdef.Init(gpio); err != nil {
		t.Fatal(err)
	}

	// A write through the typed view lands in the mapping.
	gpio.MODE.Write(0xcafe_f00d)
	raw := r.Bytes()[0x100:0x104]
	got := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	if got != 0xcafe_f00d {
		t.Errorf("mapping after MODE write: %#x, want 0xcafef00d", got)
	}

	// And a poke to the mapping is seen through a fresh read, as with
	// hardware mutating a register behind the program's back.
	r.Bytes()[0x108] = 0x55
	if gpio.LEV.Read() != 0x55 {
		t.Errorf("LEV = %#x, want 0x55", gpio.LEV.Read())
	}
}

func TestBankErrors(t *testing.T) {
	r, err := mmap.OpenAnon(4096)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := mmap.Bank[gpioBank](r, 4090); !errors.Is(err, mmap.ErrRange) {
		t.Errorf("out of range: err = %v, want ErrRange", err)
	}
	if _, err := mmap.Bank[gpioBank](r, 0x102); !errors.Is(err, mmap.ErrAlign) {
		t.Errorf("misaligned: err = %v, want ErrAlign", err)
	}
}

func TestClosedRegion(t *testing.T) {
	r, err := mmap.OpenAnon(4096)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); !errors.Is(err, mmap.ErrClosed) {
		t.Errorf("double close: err = %v, want ErrClosed", err)
	}
	if _, err := mmap.Bank[gpioBank](r, 0); !errors.Is(err, mmap.ErrClosed) {
		t.Errorf("bank after close: err = %v, want ErrClosed", err)
	}
}

func TestMustBankPanics(t *testing.T) {
	r, err := mmap.OpenAnon(4096)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	defer func() {
		if recover() == nil {
			t.Error("MustBank out of range did not panic")
		}
	}()
	mmap.MustBank[gpioBank](r, 1<<20)
}
