package archive

import (
	"path/filepath"
	"testing"

	"protsim-core/psm"
	"protsim/pkg/api"
)

func TestInsertAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	cfg := psm.Config{
		FullSpeciesBirthRate:           1,
		IncipientSpeciesConversionRate: 2,
	}
	for i := 1; i <= 3; i++ {
		s := api.SampleV1{
			Replicate:         i,
			Seed:              int64(100 + i),
			FinalTime:         1.5,
			Leaves:            4,
			FullSpeciesLeaves: 2,
			ProtractedTree:    "(a,b);",
			PrunedTree:        "(a,b);",
		}
		if err := a.InsertSample(cfg, s); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	n, err := a.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer b.Close()
	if n, err := b.Count(); err != nil || n != 0 {
		t.Errorf("count = %d, %v; want 0, nil", n, err)
	}
}
