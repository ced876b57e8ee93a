// Package arrowconv bridges NPY arrays and Apache Arrow tensors so
// fixture data can flow into Arrow-based pipelines without copying
// through an intermediate format.
package arrowconv

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/tensor"

	"github.com/23skdu/longbow-quiver/internal/npy"
)

// ErrNoArrowType marks element types Arrow tensors cannot represent,
// the complex kinds in particular.
type ErrNoArrowType struct{ DType npy.DType }

func (e ErrNoArrowType) Error() string {
	return fmt.Sprintf("no arrow tensor representation for dtype %s", e.DType)
}

func arrowType(d npy.DType) (arrow.DataType, error) {
	switch d {
	case npy.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case npy.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case npy.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case npy.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case npy.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case npy.Uint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case npy.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case npy.Uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case npy.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case npy.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	default:
		return nil, ErrNoArrowType{DType: d}
	}
}

func npyType(dt arrow.DataType) (npy.DType, error) {
	switch dt.ID() {
	case arrow.INT8:
		return npy.Int8, nil
	case arrow.INT16:
		return npy.Int16, nil
	case arrow.INT32:
		return npy.Int32, nil
	case arrow.INT64:
		return npy.Int64, nil
	case arrow.UINT8:
		return npy.Uint8, nil
	case arrow.UINT16:
		return npy.Uint16, nil
	case arrow.UINT32:
		return npy.Uint32, nil
	case arrow.UINT64:
		return npy.Uint64, nil
	case arrow.FLOAT32:
		return npy.Float32, nil
	case arrow.FLOAT64:
		return npy.Float64, nil
	default:
		return 0, fmt.Errorf("unsupported arrow type %s", dt)
	}
}

// byteStrides computes Arrow tensor strides (in bytes) for the array
// layout.
func byteStrides(shape []int, elem int, fortran bool) []int64 {
	n := len(shape)
	s := make([]int64, n)
	acc := int64(elem)
	if fortran {
		for i := 0; i < n; i++ {
			s[i] = acc
			acc *= int64(shape[i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			s[i] = acc
			acc *= int64(shape[i])
		}
	}
	return s
}

// ToTensor wraps the array's buffer in an Arrow tensor of matching
// shape and layout. The buffer is shared, not copied. The caller owns
// the returned tensor and must Release it.
func ToTensor(a *npy.Array) (tensor.Interface, error) {
	dt, err := arrowType(a.DType)
	if err != nil {
		return nil, err
	}

	buf := memory.NewBufferBytes(a.Data)
	data := array.NewData(dt, a.NumElems(), []*memory.Buffer{nil, buf}, nil, 0, 0)
	defer data.Release()

	shape := make([]int64, len(a.Shape))
	for i, d := range a.Shape {
		shape[i] = int64(d)
	}
	var strides []int64
	if len(a.Shape) > 0 {
		strides = byteStrides(a.Shape, a.DType.Size(), a.Fortran)
	}
	return tensor.New(data, shape, strides, nil), nil
}

// FromTensor copies an Arrow tensor back into an NPY array, keeping
// the tensor's storage layout. Only contiguous row-major or
// column-major tensors are supported.
func FromTensor(t tensor.Interface) (*npy.Array, error) {
	d, err := npyType(t.DataType())
	if err != nil {
		return nil, err
	}
	if !t.IsRowMajor() && !t.IsColMajor() {
		return nil, fmt.Errorf("tensor is not contiguous")
	}

	shape := make([]int, t.NumDims())
	n := 1
	for i, s := range t.Shape() {
		shape[i] = int(s)
		n *= int(s)
	}
	fortran := t.IsColMajor() && t.NumDims() > 1

	esz := d.Size()
	src := t.Data().Buffers()[1].Bytes()
	off := t.Data().Offset() * esz
	data := make([]byte, n*esz)
	copy(data, src[off:off+n*esz])

	return npy.NewArray(d, shape, fortran, data)
}
