package fixture

import (
	"fmt"
	"os"
	"time"

	"github.com/23skdu/longbow-quiver/internal/config"
	"github.com/23skdu/longbow-quiver/internal/logger"
	"github.com/23skdu/longbow-quiver/internal/metrics"
	"github.com/23skdu/longbow-quiver/internal/npy"
)

// Generator writes the NPY fixture corpus: for every supported element
// type, the sequence 0..n-1 in four framings numbered _1 through _4
// (flat, flat again, 2-d row-major, 2-d column-major). All four share
// the same raw data bytes; only headers differ.
type Generator struct {
	cfg config.Config
}

func NewGenerator(cfg config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Fixture pairs a corpus file stem like "i4_3" with its array.
type Fixture struct {
	Name  string
	Array *npy.Array
}

// Corpus enumerates the full fixture set in generation order. The
// index increments across the (dims, order) passes, so _1 and _2 are
// the flat sequence twice: the 1-d reshape is layout-neutral and both
// passes produce byte-identical files, which downstream readers rely
// on when they diff the pair.
func (g *Generator) Corpus() ([]Fixture, error) {
	var out []Fixture
	for _, d := range npy.DTypes() {
		idx := 1
		for _, dims := range []int{1, 2} {
			for _, order := range []npy.Order{npy.RowMajor, npy.ColMajor} {
				a, err := npy.Arange(d, g.cfg.SeqLen)
				if err != nil {
					return nil, err
				}
				if dims == 2 {
					a, err = a.Reshape(order, g.cfg.Rows, g.cfg.Cols)
					if err != nil {
						return nil, err
					}
				}
				out = append(out, Fixture{
					Name:  fmt.Sprintf("%s_%d", d.Code(), idx),
					Array: a,
				})
				idx++
			}
		}
	}
	return out, nil
}

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Summary reports what one corpus run produced.
type Summary struct {
	Files    int
	Bytes    int64
	Duration time.Duration
	Names    []string
	PerDType map[string]int
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d files, %d bytes in %s", s.Files, s.Bytes, s.Duration.Round(time.Millisecond))
}

// Run writes the corpus to the output directory, creating it first.
// The first write error aborts the run and is returned unwrapped from
// the file layer; files already written stay in place.
func (g *Generator) Run() (*Summary, error) {
	start := time.Now()
	if err := EnsureDir(g.cfg.OutDir); err != nil {
		return nil, fmt.Errorf("creating %s: %w", g.cfg.OutDir, err)
	}
	fixtures, err := g.Corpus()
	if err != nil {
		return nil, err
	}

	sum := &Summary{PerDType: make(map[string]int)}
	for _, fx := range fixtures {
		name := fx.Name + npy.Suffix
		path := g.cfg.OutPath(name)
		wstart := time.Now()
		if err := npy.WriteFile(path, fx.Array); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		metrics.RecordFixtureWrite(fx.Array.DType.Code(), int(info.Size()), time.Since(wstart))
		logger.Log.Debug("wrote fixture",
			"file", name,
			"dtype", fx.Array.DType.Code(),
			"shape", fx.Array.Shape,
			"fortran", fx.Array.Fortran,
			"bytes", info.Size())
		sum.Files++
		sum.Bytes += info.Size()
		sum.Names = append(sum.Names, name)
		sum.PerDType[fx.Array.DType.Code()]++
	}
	sum.Duration = time.Since(start)
	metrics.RecordCorpusRun(sum.Duration)
	logger.Log.Info("corpus complete",
		"dir", g.cfg.OutDir,
		"files", sum.Files,
		"bytes", sum.Bytes,
		"duration", sum.Duration)
	return sum, nil
}

// Bundle writes the whole corpus into a single NPZ archive. Member
// names match the loose file stems, so corpus.npz members unpack to
// the same fixtures Run writes as files.
func (g *Generator) Bundle(path string) error {
	fixtures, err := g.Corpus()
	if err != nil {
		return err
	}
	arrays := make(map[string]*npy.Array, len(fixtures))
	for _, fx := range fixtures {
		arrays[fx.Name] = fx.Array
	}
	if err := npy.WriteArchive(path, arrays); err != nil {
		return err
	}
	metrics.RecordArchiveBundle()
	logger.Log.Info("bundled corpus", "path", path, "members", len(arrays))
	return nil
}
