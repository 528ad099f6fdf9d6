package reg

import "fmt"

// FieldValue is a validated field write: the value bits already shifted into
// position, paired with the mask of the bits they are allowed to touch. The
// invariant bits&^mask == 0 holds for every FieldValue built through a Field
// constructor and is preserved by Or.
//
// The zero FieldValue is the identity of the composition: modifying a
// register with it is a plain read-modify-write that changes nothing.
type FieldValue[U Uint] struct {
	bits U
	mask U
}

// Bits returns the shifted, masked value, ready to be OR'ed into a register.
func (v FieldValue[U]) Bits() U { return v.bits }

// Mask returns the bit positions this value covers.
func (v FieldValue[U]) Mask() U { return v.mask }

// Or combines two field values of the same register into one write. The
// operation is commutative and associative. Overlapping operands are not
// detected; their bits simply OR together.
func (v FieldValue[U]) Or(o FieldValue[U]) FieldValue[U] {
	return FieldValue[U]{bits: v.bits | o.bits, mask: v.mask | o.mask}
}

// Merge folds any number of field values into one. Merge() returns the
// identity.
func Merge[U Uint](vs ...FieldValue[U]) FieldValue[U] {
	var acc FieldValue[U]
	for _, v := range vs {
		acc = acc.Or(v)
	}
	return acc
}

func (v FieldValue[U]) String() string {
	return fmt.Sprintf("%#x/%#x", uint64(v.bits), uint64(v.mask))
}
