// Package mmap maps physical memory so register banks can be placed over it.
// It is the only package in the module that performs unsafe aliasing: Bank is
// the single point where a raw address becomes a typed, mutable view, and it
// checks bounds and alignment before handing one out.
package mmap

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"regio/log"
)

type constError string

func (err constError) Error() string { return string(err) }

const (
	// ErrClosed reports use of a region after Close.
	ErrClosed constError = "mmap: region closed"

	// ErrRange reports a bank that does not fit inside the region.
	ErrRange constError = "mmap: bank exceeds region"

	// ErrAlign reports a bank offset misaligned for the bank type.
	ErrAlign constError = "mmap: misaligned bank offset"
)

// Region is a mapped span of memory. The caller guarantees the mapping stays
// valid for as long as any bank obtained from it is in use.
type Region struct {
	base uintptr
	data []byte
}

// Open maps size bytes of physical memory at addr through /dev/mem. addr must
// be page-aligned.
func Open(addr uintptr, size int) (*Region, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap: open /dev/mem: %w", err)
	}
	defer f.Close()

	data, err := syscall.Mmap(int(f.Fd()), int64(addr), size,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %#x+%#x: %w", addr, size, err)
	}

	log.ModMap.DebugZ("mapped region").
		Hex64("addr", uint64(addr)).
		Int("size", int64(size)).
		End()
	return &Region{base: addr, data: data}, nil
}

// OpenAnon maps size bytes of anonymous memory. It backs banks in tests,
// examples and software-emulated devices, where no hardware sits behind the
// registers.
func OpenAnon(size int) (*Region, error) {
	data, err := syscall.Mmap(-1, 0, size,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: map anonymous +%#x: %w", size, err)
	}
	return &Region{data: data}, nil
}

// Base returns the physical address the region was mapped at, zero for
// anonymous regions.
func (r *Region) Base() uintptr { return r.base }

// Size returns the mapped length in bytes.
func (r *Region) Size() int { return len(r.data) }

// Bytes exposes the raw mapping, mainly for tests and dumps.
func (r *Region) Bytes() []byte { return r.data }

// Close unmaps the region. Banks obtained from it must not be used afterwards.
func (r *Region) Close() error {
	if r.data == nil {
		return ErrClosed
	}
	data := r.data
	r.data = nil
	if err := syscall.Munmap(data); err != nil {
		return fmt.Errorf("mmap: unmap: %w", err)
	}
	return nil
}

// Bank places a register bank of type T at byte offset off within the region.
// T is typically a struct of reg.R/W/RW fields, laid out (and checked) by
// regdef or generated by reggen. This is the unsafe boundary: the returned
// pointer aliases the mapping directly.
func Bank[T any](r *Region, off uintptr) (*T, error) {
	if r.data == nil {
		return nil, ErrClosed
	}
	var t *T
	size := unsafe.Sizeof(*t)
	align := unsafe.Alignof(*t)
	if off >= uintptr(len(r.data)) || off+size > uintptr(len(r.data)) {
		return nil, fmt.Errorf("%w: offset %#x size %#x in %#x-byte region",
			ErrRange, off, size, len(r.data))
	}
	if (r.base+off)%align != 0 {
		return nil, fmt.Errorf("%w: offset %#x needs %d-byte alignment",
			ErrAlign, off, align)
	}
	return (*T)(unsafe.Pointer(&r.data[off])), nil
}

// MustBank is Bank for offsets that are part of a device definition: a bank
// that cannot be placed is a definition error.
func MustBank[T any](r *Region, off uintptr) *T {
	b, err := Bank[T](r, off)
	if err != nil {
		panic(err)
	}
	return b
}
