package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"protsim-core/phylo"
	"protsim/internal/pipeline"
	"protsim/pkg/api"
)

func demoTree() *phylo.Tree {
	root := phylo.NewNode("a")
	b := phylo.NewNode("b")
	b.Length = 1
	c := phylo.NewNode("c")
	c.Length = 2
	root.AddChild(b)
	root.AddChild(c)
	t := phylo.NewTree(root)
	t.CalcNodeAges()
	return t
}

func demoResult() pipeline.Result {
	return pipeline.Result{
		Replicate:  1,
		Seed:       42,
		Protracted: demoTree(),
		Pruned:     demoTree(),
	}
}

func TestNewickRendering(t *testing.T) {
	got := Newick(demoTree())
	want := "(b:1,c:2)a:0;"
	if got != want {
		t.Errorf("Newick = %q, want %q", got, want)
	}
}

func TestWriteNewickSelectors(t *testing.T) {
	r := demoResult()
	cases := map[string]int{
		TreesBoth:       2,
		TreesProtracted: 1,
		TreesPruned:     1,
	}
	for sel, lines := range cases {
		var buf bytes.Buffer
		if err := WriteNewick(&buf, r.Protracted, r.Pruned, sel); err != nil {
			t.Fatalf("%s: %v", sel, err)
		}
		if n := strings.Count(buf.String(), "\n"); n != lines {
			t.Errorf("%s: %d lines, want %d", sel, n, lines)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(demoResult())
	if s.Replicate != 1 || s.Seed != 42 {
		t.Errorf("identity fields wrong: %+v", s)
	}
	if s.FinalTime != 2 {
		t.Errorf("FinalTime = %g, want 2 (root age)", s.FinalTime)
	}
	if s.Leaves != 2 || s.FullSpeciesLeaves != 2 {
		t.Errorf("leaf counts wrong: %+v", s)
	}
}

func TestSummarizeCountsRootEdge(t *testing.T) {
	r := demoResult()
	// The root edge carries the wait before the first event; the final
	// time must include it, not just the root age.
	r.Protracted.Root.Length = 1.5
	s := Summarize(r)
	if s.FinalTime != 3.5 {
		t.Errorf("FinalTime = %g, want 3.5 (root age 2 + root edge 1.5)", s.FinalTime)
	}
}

func TestTextRowFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTextHeader(&buf); err != nil {
		t.Fatal(err)
	}
	if err := WriteTextRow(&buf, demoResult()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "replicate\tseed\tfinal_time\tleaves\tfull_species_leaves" {
		t.Errorf("bad header %q", lines[0])
	}
	fields := strings.Split(lines[1], "\t")
	if len(fields) != 5 || fields[0] != "1" || fields[1] != "42" {
		t.Errorf("bad row %q", lines[1])
	}
}

func TestToAPISampleTreesSelector(t *testing.T) {
	r := demoResult()
	both := ToAPISample(r, TreesBoth)
	if both.ProtractedTree == "" || both.PrunedTree == "" {
		t.Errorf("both: missing tree in %+v", both)
	}
	onlyP := ToAPISample(r, TreesPruned)
	if onlyP.ProtractedTree != "" || onlyP.PrunedTree == "" {
		t.Errorf("pruned: wrong trees in %+v", onlyP)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := []api.SampleV1{ToAPISample(demoResult(), TreesBoth)}
	if err := WriteJSON(&buf, in); err != nil {
		t.Fatal(err)
	}
	var out []api.SampleV1
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Seed != 42 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
