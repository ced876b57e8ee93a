package npy

import (
	"math"
	"strings"
	"testing"
)

func TestComputeStatsSequence(t *testing.T) {
	for _, d := range DTypes() {
		t.Run(d.Code(), func(t *testing.T) {
			a, err := Arange(d, 8)
			if err != nil {
				t.Fatal(err)
			}
			s, err := ComputeStats(a)
			if err != nil {
				t.Fatal(err)
			}
			if s.Min != 0 || s.Max != 7 {
				t.Errorf("min/max = %g/%g, want 0/7", s.Min, s.Max)
			}
			if s.Mean != 3.5 {
				t.Errorf("mean = %g, want 3.5", s.Mean)
			}
			if s.HasNaN || s.HasInf {
				t.Error("sequence has no NaN or Inf")
			}
			if s.ElemCount != 8 || s.SizeBytes != 8*d.Size() {
				t.Errorf("elems=%d bytes=%d, want 8/%d", s.ElemCount, s.SizeBytes, 8*d.Size())
			}
			if len(s.Sample) != 8 || s.Sample[3] != 3 {
				t.Errorf("sample = %v", s.Sample)
			}
		})
	}
}

func TestComputeStatsNaNInf(t *testing.T) {
	a, err := FromSlice([]float64{1, math.NaN(), math.Inf(1), -2})
	if err != nil {
		t.Fatal(err)
	}
	s, err := ComputeStats(a)
	if err != nil {
		t.Fatal(err)
	}
	if !s.HasNaN {
		t.Error("expected HasNaN")
	}
	if !s.HasInf {
		t.Error("expected HasInf")
	}
	if s.Min != -2 {
		t.Errorf("min = %g, want -2", s.Min)
	}
}

func TestComputeStatsComplexMagnitude(t *testing.T) {
	a, err := FromSlice([]complex128{3 + 4i, 0})
	if err != nil {
		t.Fatal(err)
	}
	s, err := ComputeStats(a)
	if err != nil {
		t.Fatal(err)
	}
	if s.Max != 5 {
		t.Errorf("max magnitude = %g, want 5", s.Max)
	}
	if s.Min != 0 {
		t.Errorf("min magnitude = %g, want 0", s.Min)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	a, err := NewArray(Int32, []int{0}, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := ComputeStats(a)
	if err != nil {
		t.Fatal(err)
	}
	if s.ElemCount != 0 || s.Min != 0 || s.Max != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestStatsString(t *testing.T) {
	a, err := Arange(Int32, 8)
	if err != nil {
		t.Fatal(err)
	}
	s, err := ComputeStats(a)
	if err != nil {
		t.Fatal(err)
	}
	out := s.String()
	for _, want := range []string{"dtype=i4", "elems=8", "min=0", "max=7", "mean=3.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}
