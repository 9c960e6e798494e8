package phylo

import (
	"math"
	"testing"
)

func chain(labels ...string) (*Tree, map[string]*Node) {
	nodes := map[string]*Node{}
	var prev *Node
	for _, l := range labels {
		nd := NewNode(l)
		nodes[l] = nd
		if prev != nil {
			prev.AddChild(nd)
		}
		prev = nd
	}
	return NewTree(nodes[labels[0]]), nodes
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent() != b {
		t.Fatalf("parent = %v, want b", c.Parent())
	}
	if len(a.Children()) != 0 {
		t.Fatalf("a still has %d children", len(a.Children()))
	}
}

func TestPruneSubtree(t *testing.T) {
	root := NewNode("root")
	left, right := NewNode("left"), NewNode("right")
	root.AddChild(left)
	root.AddChild(right)
	tip := NewNode("tip")
	left.AddChild(tip)
	tr := NewTree(root)

	if err := tr.PruneSubtree(left); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if got := len(tr.LeafNodes()); got != 1 {
		t.Fatalf("leaves after prune = %d, want 1", got)
	}
	// Detached nodes keep their own structure.
	if tip.Parent() != left {
		t.Errorf("pruned subtree lost internal structure")
	}
	if err := tr.PruneSubtree(root); err == nil {
		t.Errorf("expected error pruning the root")
	}
	if err := tr.PruneSubtree(left); err == nil {
		t.Errorf("expected error pruning a detached node")
	}
}

func TestPostorderOrder(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(NewNode("a1"))
	tr := NewTree(root)

	var got []string
	for _, nd := range tr.PostorderNodes() {
		got = append(got, nd.Label)
	}
	want := []string{"a1", "a", "b", "root"}
	if len(got) != len(want) {
		t.Fatalf("postorder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("postorder = %v, want %v", got, want)
		}
	}
}

func TestCalcNodeAgesAndEdgeLengths(t *testing.T) {
	// Ultrametric: root at age 3, internal at age 1, three tips at 0.
	root := NewNode("root")
	in := NewNode("in")
	x, y, z := NewNode("x"), NewNode("y"), NewNode("z")
	root.AddChild(in)
	root.AddChild(z)
	in.AddChild(x)
	in.AddChild(y)
	in.Length = 2
	x.Length, y.Length = 1, 1
	z.Length = 3
	tr := NewTree(root)

	tr.CalcNodeAges()
	if a, ok := in.Age(); !ok || a != 1 {
		t.Fatalf("internal age = %v,%v, want 1", a, ok)
	}
	if a, ok := root.Age(); !ok || a != 3 {
		t.Fatalf("root age = %v,%v, want 3", a, ok)
	}

	// Round-trip: ages back to edge lengths reproduces the inputs.
	tr.SetEdgeLengthsFromNodeAges()
	for nd, want := range map[*Node]float64{in: 2, x: 1, y: 1, z: 3} {
		if math.Abs(nd.Length-want) > 1e-12 {
			t.Errorf("%s length = %v, want %v", nd.Label, nd.Length, want)
		}
	}
}

func TestSuppressUnifurcationsChain(t *testing.T) {
	tr, nodes := chain("root", "a", "b", "leaf")
	nodes["a"].Length = 1
	nodes["b"].Length = 2
	nodes["leaf"].Length = 3

	tr.SuppressUnifurcations()
	if tr.Root != nodes["leaf"] {
		t.Fatalf("root = %v, want leaf", tr.Root.Label)
	}
	if tr.Root.Length != 6 {
		t.Fatalf("collapsed length = %v, want 6", tr.Root.Length)
	}
}

func TestSuppressUnifurcationsKeepsSiblingOrder(t *testing.T) {
	root := NewNode("root")
	u := NewNode("u")
	first, last := NewNode("first"), NewNode("last")
	inner := NewNode("inner")
	root.AddChild(first)
	root.AddChild(u)
	root.AddChild(last)
	u.AddChild(inner)
	u.Length, inner.Length = 1.5, 0.5
	tr := NewTree(root)

	tr.SuppressUnifurcations()
	kids := tr.Root.Children()
	if len(kids) != 3 || kids[1] != inner {
		t.Fatalf("children after collapse = %v", kids)
	}
	if inner.Length != 2 {
		t.Fatalf("inner length = %v, want 2", inner.Length)
	}
}
