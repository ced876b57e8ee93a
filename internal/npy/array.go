package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Order selects how reshaped dimensions map onto the linear buffer.
type Order uint8

const (
	RowMajor Order = iota // C layout: last index varies fastest
	ColMajor              // Fortran layout: first index varies fastest
)

func (o Order) String() string {
	if o == ColMajor {
		return "F"
	}
	return "C"
}

// Array is an in-memory n-dimensional array: a dtype, a shape, a layout
// flag and the raw little-endian element bytes. The buffer always holds
// the elements in storage order; Fortran records whether that order is
// column-major.
type Array struct {
	DType   DType
	Shape   []int
	Fortran bool
	Data    []byte
}

// NewArray wraps raw little-endian element bytes in an Array, checking
// that the buffer length matches the shape. Arrays below rank two are
// never marked Fortran: the two layouts coincide there.
func NewArray(d DType, shape []int, fortran bool, data []byte) (*Array, error) {
	if d.Size() == 0 {
		return nil, ErrUnsupportedDType{Descr: d.Code()}
	}
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("negative dimension %d in shape %v", dim, shape)
		}
	}
	want := numElems(shape) * d.Size()
	if len(data) != want {
		return nil, fmt.Errorf("data length %d does not match %s shape %v (want %d bytes)", len(data), d, shape, want)
	}
	if len(shape) < 2 {
		fortran = false
	}
	return &Array{DType: d, Shape: append([]int(nil), shape...), Fortran: fortran, Data: data}, nil
}

func numElems(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// NumElems returns the element count, the product of all dimensions.
func (a *Array) NumElems() int { return numElems(a.Shape) }

// SizeBytes returns the length of the raw data buffer.
func (a *Array) SizeBytes() int { return len(a.Data) }

// Order reports the storage order of the array.
func (a *Array) Order() Order {
	if a.Fortran {
		return ColMajor
	}
	return RowMajor
}

// Reshape reinterprets a one-dimensional array under the given dims,
// filling positions in the requested order. The buffer is shared, not
// copied: as with a NumPy reshape view only the metadata changes, and
// a column-major fill is recorded by marking the result Fortran.
func (a *Array) Reshape(order Order, dims ...int) (*Array, error) {
	if len(a.Shape) != 1 {
		return nil, fmt.Errorf("reshape requires a one-dimensional source, have shape %v", a.Shape)
	}
	n := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d", d)
		}
		n *= d
	}
	if n != a.NumElems() {
		return nil, fmt.Errorf("cannot reshape %d elements into %v", a.NumElems(), dims)
	}
	return &Array{
		DType:   a.DType,
		Shape:   append([]int(nil), dims...),
		Fortran: order == ColMajor && len(dims) >= 2,
		Data:    a.Data,
	}, nil
}

// strides returns per-dimension element strides for the storage layout.
func (a *Array) strides() []int {
	n := len(a.Shape)
	s := make([]int, n)
	acc := 1
	if a.Fortran {
		for i := 0; i < n; i++ {
			s[i] = acc
			acc *= a.Shape[i]
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			s[i] = acc
			acc *= a.Shape[i]
		}
	}
	return s
}

func (a *Array) linearIndex(indices []int) (int, error) {
	if len(indices) != len(a.Shape) {
		return 0, fmt.Errorf("got %d indices for %d dimensions", len(indices), len(a.Shape))
	}
	strides := a.strides()
	k := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.Shape[i] {
			return 0, fmt.Errorf("index %d out of range for dimension %d of size %d", idx, i, a.Shape[i])
		}
		k += idx * strides[i]
	}
	return k, nil
}

// At returns the element at the given logical indices, widened to
// complex128. Integer magnitudes above 2^53 lose precision in the
// widening.
func (a *Array) At(indices ...int) (complex128, error) {
	k, err := a.linearIndex(indices)
	if err != nil {
		return 0, err
	}
	return a.element(k), nil
}

// element decodes the element at buffer position k (storage order).
func (a *Array) element(k int) complex128 {
	b := a.Data[k*a.DType.Size():]
	switch a.DType {
	case Int8:
		return complex(float64(int8(b[0])), 0)
	case Int16:
		return complex(float64(int16(binary.LittleEndian.Uint16(b))), 0)
	case Int32:
		return complex(float64(int32(binary.LittleEndian.Uint32(b))), 0)
	case Int64:
		return complex(float64(int64(binary.LittleEndian.Uint64(b))), 0)
	case Uint8:
		return complex(float64(b[0]), 0)
	case Uint16:
		return complex(float64(binary.LittleEndian.Uint16(b)), 0)
	case Uint32:
		return complex(float64(binary.LittleEndian.Uint32(b)), 0)
	case Uint64:
		return complex(float64(binary.LittleEndian.Uint64(b)), 0)
	case Float32:
		return complex(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), 0)
	case Float64:
		return complex(math.Float64frombits(binary.LittleEndian.Uint64(b)), 0)
	case Complex64:
		re := math.Float32frombits(binary.LittleEndian.Uint32(b))
		im := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		return complex(float64(re), float64(im))
	case Complex128:
		re := math.Float64frombits(binary.LittleEndian.Uint64(b))
		im := math.Float64frombits(binary.LittleEndian.Uint64(b[8:]))
		return complex(re, im)
	default:
		return 0
	}
}

// Header returns the NPY header describing this array.
func (a *Array) Header() *Header {
	return &Header{DType: a.DType, FortranOrder: a.Fortran, Shape: a.Shape}
}

// Equal reports whether two arrays agree on dtype, shape, layout and
// raw bytes.
func (a *Array) Equal(b *Array) bool {
	if b == nil || a.DType != b.DType || a.Fortran != b.Fortran || len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	return bytes.Equal(a.Data, b.Data)
}
