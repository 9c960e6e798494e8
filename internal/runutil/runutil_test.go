package runutil

import "testing"

func TestDeriveSeedStable(t *testing.T) {
	if DeriveSeed(42, 3) != DeriveSeed(42, 3) {
		t.Fatal("seed derivation is not deterministic")
	}
}

func TestDeriveSeedDistinctAcrossReplicates(t *testing.T) {
	seen := map[int64]int{}
	for rep := 1; rep <= 1000; rep++ {
		s := DeriveSeed(7, rep)
		if prev, dup := seen[s]; dup {
			t.Fatalf("replicates %d and %d share seed %d", prev, rep, s)
		}
		seen[s] = rep
	}
}

func TestDeriveSeedDependsOnBase(t *testing.T) {
	if DeriveSeed(1, 1) == DeriveSeed(2, 1) {
		t.Fatal("different base seeds collide on replicate 1")
	}
}
