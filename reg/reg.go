// Package reg models memory-mapped hardware registers: fixed-width words
// logically divided into named bit fields. Field descriptors carry the
// width/offset/mask arithmetic so that callers never hand-compute a shift,
// and the three register types expose only the operations their access mode
// allows, so that writing a read-only register is a compile error rather
// than something to detect at runtime.
package reg

// Register loads and stores go through these noinline helpers so that every
// Read/Write performs a real memory access: the backing word may be changed
// by hardware between any two observations, and a clear-on-read register must
// not have its load elided or cached.

//go:noinline
func load[U Uint](p *U) U { return *p }

//go:noinline
func store[U Uint](p *U, v U) { *p = v }

// R is a read-only register of width U. It contains exactly its backing word
// and nothing else, so a struct of R/W/RW fields can be placed directly over
// a mapped memory region.
//
// V is exported for the definition mechanism and for memory overlay; go
// through the typed operations everywhere else.
type R[U Uint] struct {
	V U
}

// Read returns the current raw contents. Each call performs a fresh load.
func (r *R[U]) Read() U { return load(&r.V) }

// GetField extracts one field from a fresh read, shifted down to bit 0. The
// second return is false only for a zero-mask (malformed) descriptor.
func (r *R[U]) GetField(f Field[U]) (U, bool) {
	if f.mask == 0 {
		return 0, false
	}
	return f.Get(r.Read()), true
}

// AnySet reports whether any bit of mask is set in a fresh read.
func (r *R[U]) AnySet(mask U) bool { return r.Read()&mask != 0 }

// AllSet reports whether all bits of mask are set in a fresh read.
func (r *R[U]) AllSet(mask U) bool { return r.Read()&mask == mask }

// W is a write-only register of width U.
type W[U Uint] struct {
	V U
}

// Write replaces the whole raw contents.
func (w *W[U]) Write(v U) { store(&w.V, v) }

// WriteFields writes a register built from field values, all unnamed bits
// zero. This is the composition entry point for write-only registers, where
// a read-modify-write is not possible.
func (w *W[U]) WriteFields(vs ...FieldValue[U]) {
	w.Write(Merge(vs...).bits)
}

// RW is a read-write register of width U.
type RW[U Uint] struct {
	V U
}

func (r *RW[U]) Read() U   { return load(&r.V) }
func (r *RW[U]) Write(v U) { store(&r.V, v) }

func (r *RW[U]) GetField(f Field[U]) (U, bool) {
	if f.mask == 0 {
		return 0, false
	}
	return f.Get(r.Read()), true
}

func (r *RW[U]) AnySet(mask U) bool { return r.Read()&mask != 0 }
func (r *RW[U]) AllSet(mask U) bool { return r.Read()&mask == mask }

// Modify updates the bits covered by fv's mask and preserves every other bit:
// new = (read() &^ fv.Mask()) | fv.Bits().
//
// The read and the write are two separate accesses; regio takes no lock. If
// another context (interrupt handler, DMA, second core) can touch the same
// register, mutual exclusion is the caller's responsibility.
func (r *RW[U]) Modify(fv FieldValue[U]) {
	r.Write(r.Read()&^fv.mask | fv.bits)
}

// Set is shorthand for Modify of a single field value.
func (r *RW[U]) Set(f Field[U], v U) error {
	fv, err := f.New(v)
	if err != nil {
		return err
	}
	r.Modify(fv)
	return nil
}

// Toggle flips the bits of mask, leaving the rest untouched.
func (r *RW[U]) Toggle(mask U) {
	r.Write(r.Read() ^ mask)
}
