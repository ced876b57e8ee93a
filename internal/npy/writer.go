package npy

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write encodes a single array as an NPY stream.
func Write(w io.Writer, a *Array) error {
	if a.DType.Size() == 0 {
		return ErrUnsupportedDType{Descr: a.DType.Code()}
	}
	if want := a.NumElems() * a.DType.Size(); len(a.Data) != want {
		return fmt.Errorf("data length %d does not match %s shape %v (want %d bytes)", len(a.Data), a.DType, a.Shape, want)
	}
	if _, err := w.Write(a.Header().encode()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(a.Data); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

// WriteFile writes the array to path in NPY format, truncating any
// existing file.
func WriteFile(path string, a *Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := Write(w, a); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
