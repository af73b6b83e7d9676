package column

import (
	"lv-priceest/internal/fail"

	"golang.org/x/exp/mmap"
)

// Decoder reads one fixed-width record of size ElemSize out of a byte
// slice at least that long.
type Decoder[T any] struct {
	ElemSize int
	Decode   func(b []byte) T
}

// File is a memory-mapped, file-backed Column. The file's byte length
// must be positive and a multiple of the decoder's element size.
type File[T any] struct {
	r    *mmap.ReaderAt
	dec  Decoder[T]
	size int
}

// OpenFile memory-maps path and validates its length against dec before
// returning a usable Column.
func OpenFile[T any](path string, dec Decoder[T]) (*File[T], error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fail.New(fail.InputError, "mmap.Open", "%s: %v", path, err)
	}
	length := r.Len()
	if err := fail.RequireInput(length > 0, "file length > 0", "%s is empty", path); err != nil {
		r.Close()
		return nil, err
	}
	if err := fail.RequireInput(length%dec.ElemSize == 0, "length % elem_size == 0",
		"%s has length %d, not a multiple of record size %d", path, length, dec.ElemSize); err != nil {
		r.Close()
		return nil, err
	}
	return &File[T]{r: r, dec: dec, size: length / dec.ElemSize}, nil
}

// Close unmaps the underlying file.
func (f *File[T]) Close() error { return f.r.Close() }

func (f *File[T]) Size() int { return f.size }

// At decodes and returns the i-th record.
func (f *File[T]) At(i int) T {
	buf := make([]byte, f.dec.ElemSize)
	off := int64(i) * int64(f.dec.ElemSize)
	if _, err := f.r.ReadAt(buf, off); err != nil {
		panic(err)
	}
	return f.dec.Decode(buf)
}
