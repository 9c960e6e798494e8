package phylo

import (
	"errors"
	"math"
)

// Tree is a rooted tree over Nodes.
type Tree struct {
	Root   *Node
	Rooted bool
	// TaxonNamespace is an opaque caller handle carried through to
	// serialization; the library does not interpret it.
	TaxonNamespace any
}

// NewTree returns a rooted tree seeded with root.
func NewTree(root *Node) *Tree {
	return &Tree{Root: root, Rooted: true}
}

// PruneSubtree detaches nd and everything below it from the tree. The
// detached nodes keep their labels, lengths and references so callers can
// still inspect them.
func (t *Tree) PruneSubtree(nd *Node) error {
	if nd == t.Root {
		return errors.New("phylo: cannot prune the root")
	}
	if nd.parent == nil {
		return errors.New("phylo: node is already detached")
	}
	nd.parent.removeChild(nd)
	return nil
}

// PostorderNodes returns every node reachable from the root, children
// before parents.
func (t *Tree) PostorderNodes() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			walk(c)
		}
		out = append(out, n)
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return out
}

// PreorderNodes returns every node reachable from the root, parents
// before children.
func (t *Tree) PreorderNodes() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return out
}

// LeafNodes returns the reachable leaves in traversal order.
func (t *Tree) LeafNodes() []*Node {
	var out []*Node
	for _, nd := range t.PreorderNodes() {
		if nd.IsLeaf() {
			out = append(out, nd)
		}
	}
	return out
}

// CalcNodeAges assigns ages bottom-up: leaves get age 0, internal nodes
// the maximum over children of child age + child edge length. Nodes not
// reachable from the root are left untouched.
func (t *Tree) CalcNodeAges() {
	for _, nd := range t.PostorderNodes() {
		if nd.IsLeaf() {
			nd.SetAge(0)
			continue
		}
		oldest := math.Inf(-1)
		for _, ch := range nd.children {
			if a, ok := ch.Age(); ok && a+ch.Length > oldest {
				oldest = a + ch.Length
			}
		}
		nd.SetAge(oldest)
	}
}

// SetEdgeLengthsFromNodeAges applies the ultrametric age-to-length
// transform: every non-root edge becomes parent age minus node age. The
// root edge is left unchanged.
func (t *Tree) SetEdgeLengthsFromNodeAges() {
	for _, nd := range t.PostorderNodes() {
		if nd.parent == nil {
			continue
		}
		pa, _ := nd.parent.Age()
		na, _ := nd.Age()
		nd.Length = pa - na
	}
}

// SuppressUnifurcations collapses internal nodes with exactly one child,
// combining edge lengths additively. A unifurcating root is replaced by
// its child, which absorbs the root's edge length.
func (t *Tree) SuppressUnifurcations() {
	for _, nd := range t.PostorderNodes() {
		if len(nd.children) != 1 {
			continue
		}
		child := nd.children[0]
		child.Length += nd.Length
		if nd.parent == nil {
			child.parent = nil
			nd.children = nil
			t.Root = child
			continue
		}
		p := nd.parent
		// Splice the child into nd's slot to keep sibling order.
		for i, c := range p.children {
			if c == nd {
				p.children[i] = child
				break
			}
		}
		child.parent = p
		nd.parent = nil
		nd.children = nil
	}
}
