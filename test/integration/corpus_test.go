package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/23skdu/longbow-quiver/internal/config"
	"github.com/23skdu/longbow-quiver/internal/fixture"
	"github.com/23skdu/longbow-quiver/internal/npy"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func corpusNames() []string {
	names := make([]string, 0, 48)
	for _, d := range npy.DTypes() {
		for idx := 1; idx <= 4; idx++ {
			names = append(names, fmt.Sprintf("%s_%d", d.Code(), idx))
		}
	}
	return names
}

// TestE2E_CorpusGeneration generates the full corpus and re-reads every
// file from disk.
func TestE2E_CorpusGeneration(t *testing.T) {
	cfg := testConfig(t)
	gen := fixture.NewGenerator(cfg)

	sum, err := gen.Run()
	if err != nil {
		t.Fatalf("Failed to generate corpus: %v", err)
	}
	if sum.Files != 48 {
		t.Fatalf("Expected 48 files, got %d", sum.Files)
	}

	for _, name := range corpusNames() {
		t.Run(name, func(t *testing.T) {
			path := cfg.OutPath(name + npy.Suffix)
			a, err := npy.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read %s: %v", path, err)
			}
			if a.NumElems() != cfg.SeqLen {
				t.Errorf("Expected %d elements, got %d", cfg.SeqLen, a.NumElems())
			}
			// The final logical corner holds the last sequence value in
			// both storage orders.
			var got complex128
			if len(a.Shape) == 1 {
				got, err = a.At(cfg.SeqLen - 1)
			} else {
				got, err = a.At(cfg.Rows-1, cfg.Cols-1)
			}
			if err != nil {
				t.Fatalf("Failed to index last element: %v", err)
			}
			if real(got) != float64(cfg.SeqLen-1) {
				t.Errorf("Expected last element %d, got %g", cfg.SeqLen-1, real(got))
			}
		})
	}

	t.Logf("Corpus generation test completed: %s", sum)
}

// TestE2E_CorpusVerify runs the generator and then the verifier as a
// single workflow.
func TestE2E_CorpusVerify(t *testing.T) {
	cfg := testConfig(t)
	gen := fixture.NewGenerator(cfg)

	if _, err := gen.Run(); err != nil {
		t.Fatalf("Failed to generate corpus: %v", err)
	}

	rep := gen.Verify()
	if !rep.OK() {
		t.Fatalf("Verification failed:\n%s", rep)
	}
	if rep.FilesChecked != 48 {
		t.Errorf("Expected 48 files checked, got %d", rep.FilesChecked)
	}

	t.Log("Corpus verify test completed")
}

// TestE2E_VerifyCatchesTampering corrupts one file after generation and
// expects the verifier to report it.
func TestE2E_VerifyCatchesTampering(t *testing.T) {
	cfg := testConfig(t)
	gen := fixture.NewGenerator(cfg)

	if _, err := gen.Run(); err != nil {
		t.Fatalf("Failed to generate corpus: %v", err)
	}

	// Truncate one member to just its header.
	path := cfg.OutPath("f4_2" + npy.Suffix)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-8], 0o644); err != nil {
		t.Fatalf("Failed to truncate %s: %v", path, err)
	}

	rep := gen.Verify()
	if rep.OK() {
		t.Fatal("Expected verification to fail after tampering")
	}
	found := false
	for _, issue := range rep.Issues {
		if strings.Contains(issue, "f4_2") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an issue naming f4_2, got: %v", rep.Issues)
	}
}

// TestE2E_RerunDeterministic generates the corpus twice into the same
// directory and expects byte-identical files.
func TestE2E_RerunDeterministic(t *testing.T) {
	cfg := testConfig(t)
	gen := fixture.NewGenerator(cfg)

	if _, err := gen.Run(); err != nil {
		t.Fatalf("Failed to generate corpus: %v", err)
	}
	first := make(map[string][]byte, 48)
	for _, name := range corpusNames() {
		raw, err := os.ReadFile(cfg.OutPath(name + npy.Suffix))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		first[name] = raw
	}

	if _, err := gen.Run(); err != nil {
		t.Fatalf("Failed to regenerate corpus: %v", err)
	}
	for _, name := range corpusNames() {
		raw, err := os.ReadFile(cfg.OutPath(name + npy.Suffix))
		if err != nil {
			t.Fatalf("Failed to re-read %s: %v", name, err)
		}
		if !bytes.Equal(first[name], raw) {
			t.Errorf("File %s changed between runs", name)
		}
	}

	t.Log("Deterministic rerun test completed")
}

// TestE2E_BundleMatchesCorpus bundles the corpus into an NPZ archive and
// compares every member against its on-disk NPY file.
func TestE2E_BundleMatchesCorpus(t *testing.T) {
	cfg := testConfig(t)
	cfg.BundlePath = filepath.Join(t.TempDir(), "corpus.npz")
	gen := fixture.NewGenerator(cfg)

	if _, err := gen.Run(); err != nil {
		t.Fatalf("Failed to generate corpus: %v", err)
	}
	if err := gen.Bundle(cfg.BundlePath); err != nil {
		t.Fatalf("Failed to bundle corpus: %v", err)
	}

	members, err := npy.ReadArchive(cfg.BundlePath)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if len(members) != 48 {
		t.Fatalf("Expected 48 members, got %d", len(members))
	}

	for _, m := range members {
		onDisk, err := npy.ReadFile(cfg.OutPath(m.Name + npy.Suffix))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", m.Name, err)
		}
		if !m.Array.Equal(onDisk) {
			t.Errorf("Member %s differs from its NPY file", m.Name)
		}
	}

	t.Log("Bundle test completed")
}
