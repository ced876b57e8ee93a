package npy

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Suffix is the conventional NPY file extension, also used for archive
// member names.
const Suffix = ".npy"

// NamedArray pairs an archive member name with its decoded array.
type NamedArray struct {
	Name  string
	Array *Array
}

// WriteArchive bundles arrays into an NPZ file, a zip archive whose
// members are NPY streams named "<name>.npy". Members are written in
// sorted name order so the archive bytes are deterministic.
func WriteArchive(path string, arrays map[string]*Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name + Suffix)
		if err != nil {
			f.Close()
			return fmt.Errorf("%s: creating member %s: %w", path, name, err)
		}
		if err := Write(w, arrays[name]); err != nil {
			f.Close()
			return fmt.Errorf("%s: member %s: %w", path, name, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// ReadArchive decodes every member of an NPZ file, in archive order.
func ReadArchive(path string) ([]NamedArray, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]NamedArray, 0, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: member %s: %w", path, zf.Name, err)
		}
		a, err := Read(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: member %s: %w", path, zf.Name, err)
		}
		out = append(out, NamedArray{Name: strings.TrimSuffix(zf.Name, Suffix), Array: a})
	}
	return out, nil
}

// ReadArchiveArrays decodes only the named members of an NPZ file. A
// name with no matching member is an error.
func ReadArchiveArrays(path string, names ...string) (map[string]*Array, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	byName := make(map[string]*zip.File, len(zr.File))
	for _, zf := range zr.File {
		byName[strings.TrimSuffix(zf.Name, Suffix)] = zf
	}

	out := make(map[string]*Array, len(names))
	for _, name := range names {
		zf, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%s: no member %q", path, name)
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: member %s: %w", path, name, err)
		}
		a, err := Read(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: member %s: %w", path, name, err)
		}
		out[name] = a
	}
	return out, nil
}

// Archive reads NPZ members on demand, reopening the zip per lookup so
// no file handle outlives a call.
type Archive struct {
	path  string
	names []string
}

// OpenArchive indexes the members of an NPZ file without decoding any
// array data.
func OpenArchive(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		names = append(names, strings.TrimSuffix(zf.Name, Suffix))
	}
	sort.Strings(names)
	return &Archive{path: path, names: names}, nil
}

// Names lists the member names in sorted order, without the .npy
// suffix.
func (ar *Archive) Names() []string {
	return append([]string(nil), ar.names...)
}

// Header decodes only the NPY prefix of the named member.
func (ar *Archive) Header(name string) (*Header, error) {
	zr, rc, err := ar.member(name)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	defer rc.Close()
	h, err := readHeader(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: member %s: %w", ar.path, name, err)
	}
	return h, nil
}

// Get decodes the named member in full.
func (ar *Archive) Get(name string) (*Array, error) {
	zr, rc, err := ar.member(name)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	defer rc.Close()
	a, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: member %s: %w", ar.path, name, err)
	}
	return a, nil
}

func (ar *Archive) member(name string) (*zip.ReadCloser, io.ReadCloser, error) {
	zr, err := zip.OpenReader(ar.path)
	if err != nil {
		return nil, nil, err
	}
	want := name + Suffix
	for _, zf := range zr.File {
		if zf.Name != want {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			zr.Close()
			return nil, nil, fmt.Errorf("%s: member %s: %w", ar.path, name, err)
		}
		return zr, rc, nil
	}
	zr.Close()
	return nil, nil, fmt.Errorf("%s: no member %q", ar.path, name)
}
