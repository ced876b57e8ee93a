package npy

import (
	"fmt"
	"io"
	"os"
)

// Read decodes a single NPY stream: the header prefix followed by
// exactly the little-endian data bytes the header implies.
func Read(r io.Reader) (*Array, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	want := numElems(h.Shape) * h.DType.Size()
	data := make([]byte, want)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("reading %d data bytes: %w", want, err)
	}
	return NewArray(h.DType, h.Shape, h.FortranOrder, data)
}

// ReadFile decodes the NPY file at path.
func ReadFile(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
