package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"protsim-core/phylo"
	"protsim/internal/output"
	"protsim/internal/pipeline"
	"protsim/pkg/api"
)

func resultN(rep int) pipeline.Result {
	root := phylo.NewNode("a")
	leaf := phylo.NewNode("b")
	leaf.Length = 1
	root.AddChild(leaf)
	tr := phylo.NewTree(root)
	tr.CalcNodeAges()
	return pipeline.Result{Replicate: rep, Seed: int64(rep), Protracted: tr, Pruned: tr}
}

func feed(t *testing.T, format string, sort bool, reps ...int) string {
	t.Helper()
	var buf bytes.Buffer
	in, errCh := StartSampleWriter(&buf, format, output.TreesBoth, sort, true, 0)
	for _, rep := range reps {
		in <- resultN(rep)
	}
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}
	return buf.String()
}

func TestTextWriterHasHeader(t *testing.T) {
	got := feed(t, "text", false, 1)
	if !strings.HasPrefix(got, "replicate\t") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "\n1\t1\t") {
		t.Errorf("missing row: %q", got)
	}
}

func TestJSONWriterSortsByReplicate(t *testing.T) {
	got := feed(t, "json", true, 3, 1, 2)
	var samples []api.SampleV1
	if err := json.Unmarshal([]byte(got), &samples); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples", len(samples))
	}
	for i, s := range samples {
		if s.Replicate != i+1 {
			t.Errorf("position %d has replicate %d", i, s.Replicate)
		}
	}
}

func TestNewickWriterEmitsTwoLinesPerResult(t *testing.T) {
	got := feed(t, "newick", false, 1, 2)
	if n := strings.Count(got, ";"); n != 4 {
		t.Errorf("got %d trees, want 4:\n%s", n, got)
	}
}

func TestUnknownFormatErrors(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartSampleWriter(&buf, "xml", output.TreesBoth, false, true, 0)
	in <- resultN(1)
	close(in)
	if err := <-errCh; err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
