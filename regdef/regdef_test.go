package regdef_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"regio/reg"
	"regio/regdef"
)

type uartBank struct {
	CTRL reg.RW[uint8] `reg:"offset=0x0,reset=0x23"`
	STAT reg.R[uint8]  `reg:"offset=0x1,reset=0x80"`
	_    [2]byte
	BAUD reg.RW[uint32] `reg:"offset=0x4,reset=0x1a"`
	DATA reg.W[uint8]   `reg:"offset=0x8"`

	scratch uint8 // untagged, ignored
}

func TestInit(t *testing.T) {
	bank := &uartBank{}
	l, err := regdef.Init(bank)
	if err != nil {
		t.Fatal(err)
	}

	want := &regdef.Layout{
		Bank: "uartBank",
		Size: 9,
		Regs: []regdef.RegInfo{
			{Name: "CTRL", Offset: 0, Size: 1, Access: regdef.AccessRW, Reset: 0x23},
			{Name: "STAT", Offset: 1, Size: 1, Access: regdef.AccessRO, Reset: 0x80},
			{Name: "BAUD", Offset: 4, Size: 4, Access: regdef.AccessRW, Reset: 0x1a},
			{Name: "DATA", Offset: 8, Size: 1, Access: regdef.AccessWO},
		},
	}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}

	// Resets are applied to the backing words, including read-only ones.
	if got := bank.CTRL.Read(); got != 0x23 {
		t.Errorf("CTRL after reset = %02x, want 23", got)
	}
	if got := bank.STAT.Read(); got != 0x80 {
		t.Errorf("STAT after reset = %02x, want 80", got)
	}
	if got := bank.BAUD.Read(); got != 0x1a {
		t.Errorf("BAUD after reset = %02x, want 1a", got)
	}

	if _, ok := l.Lookup("BAUD"); !ok {
		t.Error("Lookup(BAUD) failed")
	}
	if _, ok := l.Lookup("NOPE"); ok {
		t.Error("Lookup(NOPE) succeeded")
	}
}

func TestInitResetTooBig(t *testing.T) {
	type bank struct {
		R reg.RW[uint8] `reg:"offset=0x0,reset=0x123"`
	}
	_, err := regdef.Init(&bank{})
	if !errors.Is(err, regdef.ErrResetRange) {
		t.Errorf("err = %v, want ErrResetRange", err)
	}
}

func TestInitOffsetMismatch(t *testing.T) {
	type bank struct {
		A reg.RW[uint8] `reg:"offset=0x0"`
		B reg.RW[uint8] `reg:"offset=0x4"` // struct places B at 1
	}
	_, err := regdef.Init(&bank{})
	if !errors.Is(err, regdef.ErrOffset) {
		t.Errorf("err = %v, want ErrOffset", err)
	}
}

func TestInitUnaligned(t *testing.T) {
	type bank struct {
		A reg.RW[uint8]  `reg:"offset=0x0"`
		B reg.RW[uint32] `reg:"offset=0x1"`
	}
	_, err := regdef.Init(&bank{})
	if !errors.Is(err, regdef.ErrAlign) {
		t.Errorf("err = %v, want ErrAlign", err)
	}
}

func TestInitClashingOffsets(t *testing.T) {
	// Two registers declared at the same offset: the second one necessarily
	// contradicts the struct layout.
	type clash struct {
		A reg.RW[uint8] `reg:"offset=0x0"`
		B reg.RW[uint8] `reg:"offset=0x0"`
	}
	if _, err := regdef.Init(&clash{}); err == nil {
		t.Fatal("expected error for clashing offsets")
	}
}

func TestInitBadTag(t *testing.T) {
	for name, bank := range map[string]any{
		"missing offset": &struct {
			A reg.RW[uint8] `reg:"reset=0x1"`
		}{},
		"unknown option": &struct {
			A reg.RW[uint8] `reg:"offset=0x0,rwmask=0xF0"`
		}{},
		"not a register": &struct {
			A uint8 `reg:"offset=0x0"`
		}{},
		"garbage offset": &struct {
			A reg.RW[uint8] `reg:"offset=zzz"`
		}{},
	} {
		if _, err := regdef.Init(bank); !errors.Is(err, regdef.ErrBadTag) {
			t.Errorf("%s: err = %v, want ErrBadTag", name, err)
		}
	}
}

func TestInitNotBank(t *testing.T) {
	for _, bad := range []any{nil, 42, uartBank{}, (*uartBank)(nil)} {
		if _, err := regdef.Init(bad); !errors.Is(err, regdef.ErrNotBank) {
			t.Errorf("Init(%T) err = %v, want ErrNotBank", bad, err)
		}
	}
}

func TestMustInitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustInit with a bad declaration did not panic")
		}
	}()
	type bank struct {
		A reg.RW[uint8] `reg:"offset=0x0,reset=0x100"`
	}
	regdef.MustInit(&bank{})
}

func TestAccessString(t *testing.T) {
	if regdef.AccessRW.String() != "RW" || regdef.AccessRO.String() != "RO" || regdef.AccessWO.String() != "WO" {
		t.Errorf("Access strings: %s %s %s", regdef.AccessRW, regdef.AccessRO, regdef.AccessWO)
	}
}
