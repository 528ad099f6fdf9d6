package reg

import "math/bits"

// Uint is the set of types a register can store.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits returns the bit width of U.
func Bits[U Uint]() uint {
	return uint(bits.Len64(uint64(^U(0))))
}

// MaxVal returns the largest value representable in width bits, saturating at
// the full width of U.
func MaxVal[U Uint](width uint) U {
	if width >= Bits[U]() {
		return ^U(0)
	}
	return U(1)<<width - 1
}

// Fits reports whether v fits within width bits. This is the single bound
// formula shared by the definition-time and runtime checking paths.
func Fits[U Uint](width uint, v U) bool {
	return v <= MaxVal[U](width)
}
