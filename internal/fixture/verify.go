package fixture

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/23skdu/longbow-quiver/internal/metrics"
	"github.com/23skdu/longbow-quiver/internal/npy"
)

// Report holds the outcome of a corpus verification pass.
type Report struct {
	FilesChecked int
	Issues       []string
}

func (r *Report) OK() bool { return len(r.Issues) == 0 }

func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("verified %d files, no issues", r.FilesChecked)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "verified %d files, %d issues:\n", r.FilesChecked, len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "  - %s\n", issue)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Report) add(kind, format string, args ...interface{}) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
	metrics.RecordVerifyIssue(kind)
}

// Verify re-reads the corpus from the output directory and checks
// every file against the expected dtype, shape, layout flag, raw byte
// sequence and logical element values. Problems are collected as
// issues rather than aborting, so one broken file does not hide the
// rest.
func (g *Generator) Verify() *Report {
	rep := &Report{}
	for _, d := range npy.DTypes() {
		base, err := npy.Arange(d, g.cfg.SeqLen)
		if err != nil {
			rep.add("read", "%s: %v", d.Code(), err)
			continue
		}

		var files [5][]byte
		for idx := 1; idx <= 4; idx++ {
			name := fmt.Sprintf("%s_%d%s", d.Code(), idx, npy.Suffix)
			raw, err := os.ReadFile(g.cfg.OutPath(name))
			if err != nil {
				rep.add("missing", "%s: %v", name, err)
				continue
			}
			files[idx] = raw

			a, err := npy.Read(bytes.NewReader(raw))
			if err != nil {
				rep.add("read", "%s: %v", name, err)
				continue
			}
			rep.FilesChecked++
			g.checkFixture(rep, name, idx, base, a)
		}

		// The two flat framings must be byte-for-byte duplicates.
		if files[1] != nil && files[2] != nil && !bytes.Equal(files[1], files[2]) {
			rep.add("duplicate", "%s_1 and %s_2 are not byte-identical", d.Code(), d.Code())
		}
	}
	return rep
}

func (g *Generator) checkFixture(rep *Report, name string, idx int, base, a *npy.Array) {
	if a.DType != base.DType {
		rep.add("dtype", "%s: dtype %s, want %s", name, a.DType, base.DType)
		return
	}

	wantFortran := idx == 4
	if a.Fortran != wantFortran {
		rep.add("order", "%s: fortran_order %v, want %v", name, a.Fortran, wantFortran)
	}

	if idx <= 2 {
		if len(a.Shape) != 1 || a.Shape[0] != g.cfg.SeqLen {
			rep.add("shape", "%s: shape %v, want (%d,)", name, a.Shape, g.cfg.SeqLen)
			return
		}
	} else {
		if len(a.Shape) != 2 || a.Shape[0] != g.cfg.Rows || a.Shape[1] != g.cfg.Cols {
			rep.add("shape", "%s: shape %v, want (%d, %d)", name, a.Shape, g.cfg.Rows, g.cfg.Cols)
			return
		}
	}

	// Reshapes relabel the buffer, they never move data: the raw bytes
	// of every framing equal the flat sequence.
	if !bytes.Equal(a.Data, base.Data) {
		rep.add("data", "%s: raw data differs from the base sequence", name)
		return
	}

	if len(a.Shape) == 1 {
		for k := 0; k < g.cfg.SeqLen; k++ {
			got, err := a.At(k)
			if err != nil {
				rep.add("values", "%s: %v", name, err)
				return
			}
			if got != complex(float64(k), 0) {
				rep.add("values", "%s: element %d = %v, want %d", name, k, got, k)
				return
			}
		}
		return
	}

	for r := 0; r < g.cfg.Rows; r++ {
		for c := 0; c < g.cfg.Cols; c++ {
			want := r*g.cfg.Cols + c // row-major fill
			if idx == 4 {
				want = r + c*g.cfg.Rows // column-major fill
			}
			got, err := a.At(r, c)
			if err != nil {
				rep.add("values", "%s: %v", name, err)
				return
			}
			if got != complex(float64(want), 0) {
				rep.add("values", "%s: element (%d,%d) = %v, want %d", name, r, c, got, want)
				return
			}
		}
	}
}
