package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Element is the set of Go types with a direct dtype counterpart.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		complex64 | complex128
}

func dtypeFor[T Element]() DType {
	var z T
	switch any(z).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	return 0
}

// FromSlice builds an array from a typed Go slice, inferring the dtype
// from the element type. With no shape the result is one-dimensional;
// multi-dimensional shapes are taken as row-major.
func FromSlice[T Element](vals []T, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{len(vals)}
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return NewArray(dtypeFor[T](), shape, false, buf.Bytes())
}

// Values decodes the raw buffer into a typed Go slice, in storage
// order. The requested type must match the array dtype exactly.
func Values[T Element](a *Array) ([]T, error) {
	if want := dtypeFor[T](); want != a.DType {
		return nil, fmt.Errorf("array holds %s elements, not %s", a.DType, want)
	}
	out := make([]T, a.NumElems())
	if err := binary.Read(bytes.NewReader(a.Data), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Arange builds a one-dimensional array holding 0..n-1 cast to the
// given element type, after numpy.arange.
func Arange(d DType, n int) (*Array, error) {
	esz := d.Size()
	if esz == 0 {
		return nil, ErrUnsupportedDType{Descr: d.Code()}
	}
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	data := make([]byte, n*esz)
	for k := 0; k < n; k++ {
		b := data[k*esz:]
		switch d {
		case Int8, Uint8:
			b[0] = byte(k)
		case Int16, Uint16:
			binary.LittleEndian.PutUint16(b, uint16(k))
		case Int32, Uint32:
			binary.LittleEndian.PutUint32(b, uint32(k))
		case Int64, Uint64:
			binary.LittleEndian.PutUint64(b, uint64(k))
		case Float32:
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(k)))
		case Float64:
			binary.LittleEndian.PutUint64(b, math.Float64bits(float64(k)))
		case Complex64:
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(k)))
		case Complex128:
			binary.LittleEndian.PutUint64(b, math.Float64bits(float64(k)))
		}
	}
	return &Array{DType: d, Shape: []int{n}, Data: data}, nil
}
