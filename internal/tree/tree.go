// Package tree builds and edits the binary trees shown by binary-tree
// elements. Trees are plain pointer structures; every node carries a stable
// id and all structural edits address nodes by that id. Edits never mutate
// their input: they return a freshly copied tree.
package tree

import (
	"strings"

	"github.com/structboard/structboard/internal/typeid"
)

// NullToken marks an absent node in level-order input and output.
const NullToken = "null"

// Node is a single binary tree node.
type Node struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Left  *Node  `json:"left"`
	Right *Node  `json:"right"`
}

// Side selects a child slot.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// NewNode creates a leaf with a fresh id.
func NewNode(value string) *Node {
	return &Node{ID: typeid.NewTreeNodeID(), Value: value}
}

func isNull(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == NullToken
}

// BuildFromValues builds a tree from a level-order list. The first value is
// the root; each dequeued node then consumes two values (left, right).
// Null or empty values leave the slot empty and end that branch. Anything
// else is taken as a node value verbatim.
func BuildFromValues(values []string) *Node {
	if len(values) == 0 || isNull(values[0]) {
		return nil
	}

	root := NewNode(values[0])
	queue := []*Node{root}
	i := 1

	for len(queue) > 0 && i < len(values) {
		n := queue[0]
		queue = queue[1:]

		if !isNull(values[i]) {
			n.Left = NewNode(values[i])
			queue = append(queue, n.Left)
		}
		i++

		if i < len(values) {
			if !isNull(values[i]) {
				n.Right = NewNode(values[i])
				queue = append(queue, n.Right)
			}
			i++
		}
	}

	return root
}

// Depth returns the number of levels in the tree (0 for an empty tree).
func Depth(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Depth(n.Left), Depth(n.Right))
}

// AllNodes returns every node in pre-order.
func AllNodes(root *Node) []*Node {
	var nodes []*Node
	collect(root, &nodes)
	return nodes
}

func collect(n *Node, nodes *[]*Node) {
	if n == nil {
		return
	}
	*nodes = append(*nodes, n)
	collect(n.Left, nodes)
	collect(n.Right, nodes)
}

// Find returns the node with the given id, or nil.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	if n := Find(root.Left, id); n != nil {
		return n
	}
	return Find(root.Right, id)
}

// LevelOrder serializes the tree breadth-first, writing NullToken for each
// absent child of a present node. Trailing null tokens are trimmed.
func LevelOrder(root *Node) []string {
	if root == nil {
		return nil
	}

	var out []string
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			out = append(out, NullToken)
			continue
		}
		out = append(out, n.Value)
		queue = append(queue, n.Left, n.Right)
	}

	for len(out) > 0 && out[len(out)-1] == NullToken {
		out = out[:len(out)-1]
	}
	return out
}

// Clone returns a deep copy that shares nothing with n. Ids are preserved.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{
		ID:    n.ID,
		Value: n.Value,
		Left:  Clone(n.Left),
		Right: Clone(n.Right),
	}
}
