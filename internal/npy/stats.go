package npy

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

const statsSampleLen = 8

// Stats summarizes the values of one array. Real kinds report plain
// value statistics; complex kinds report magnitude statistics.
type Stats struct {
	DType     string
	Shape     []int
	ElemCount int
	SizeBytes int
	Min       float64
	Max       float64
	Mean      float64
	HasNaN    bool
	HasInf    bool
	Sample    []float64
}

// ComputeStats scans every element of the array in storage order.
func ComputeStats(a *Array) (*Stats, error) {
	if a.DType.Size() == 0 {
		return nil, ErrUnsupportedDType{Descr: a.DType.Code()}
	}
	s := &Stats{
		DType:     a.DType.Code(),
		Shape:     append([]int(nil), a.Shape...),
		ElemCount: a.NumElems(),
		SizeBytes: a.SizeBytes(),
	}
	if s.ElemCount == 0 {
		return s, nil
	}

	complexKind := a.DType.Kind() == 'c'
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	sum := 0.0
	for k := 0; k < s.ElemCount; k++ {
		z := a.element(k)
		var v float64
		if complexKind {
			if cmplx.IsNaN(z) {
				s.HasNaN = true
			}
			if cmplx.IsInf(z) {
				s.HasInf = true
			}
			v = cmplx.Abs(z)
		} else {
			v = real(z)
			if math.IsNaN(v) {
				s.HasNaN = true
			}
			if math.IsInf(v, 0) {
				s.HasInf = true
			}
		}
		if k < statsSampleLen {
			s.Sample = append(s.Sample, v)
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(s.ElemCount)
	return s, nil
}

func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dtype=%s shape=%v elems=%d bytes=%d", s.DType, s.Shape, s.ElemCount, s.SizeBytes)
	fmt.Fprintf(&b, " min=%g max=%g mean=%g", s.Min, s.Max, s.Mean)
	if s.HasNaN {
		b.WriteString(" has-nan")
	}
	if s.HasInf {
		b.WriteString(" has-inf")
	}
	return b.String()
}
