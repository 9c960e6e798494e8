package phylo

// Annotation is one key/value metadata entry attached to a node for
// downstream serialization. The simulation writes annotations and never
// reads them back.
type Annotation struct {
	Name  string
	Value any
}

// Node is a node of a rooted tree. Edge length is stored on the node and
// describes the edge to its parent.
type Node struct {
	Label string
	// Length is the edge length subtending this node.
	Length float64
	// LineageRef is an arena-style index linking the node back to the
	// caller record that produced it; -1 when unset. It is deliberately
	// an index rather than a pointer so trees never own caller state.
	LineageRef int
	// SpeciationEvent marks the node as a true full-speciation event.
	// Once set it is never cleared.
	SpeciationEvent bool
	// Source links a node of a derived tree back to its counterpart in
	// the tree it was derived from.
	Source *Node

	Annotations []Annotation

	age    float64
	hasAge bool

	parent   *Node
	children []*Node
}

// NewNode returns a detached node with zero edge length.
func NewNode(label string) *Node {
	return &Node{Label: label, LineageRef: -1}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) IsLeaf() bool      { return len(n.children) == 0 }

// Age returns the node's age and whether one has been assigned (via
// SetAge or Tree.CalcNodeAges).
func (n *Node) Age() (float64, bool) { return n.age, n.hasAge }

func (n *Node) SetAge(a float64) { n.age, n.hasAge = a, true }

// AddChild attaches c as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Annotate appends a key/value annotation. Names are not deduplicated.
func (n *Node) Annotate(name string, value any) {
	n.Annotations = append(n.Annotations, Annotation{Name: name, Value: value})
}
