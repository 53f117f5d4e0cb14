package tree

// edit copies the tree and hands the copy of the node with the given id to
// fn. Whatever fn returns takes that node's place in the copy. A missing id
// yields an unchanged copy.
func edit(n *Node, id string, fn func(*Node) *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:    n.ID,
		Value: n.Value,
		Left:  edit(n.Left, id, fn),
		Right: edit(n.Right, id, fn),
	}
	if n.ID == id {
		return fn(c)
	}
	return c
}

// UpdateValue returns a copy of root with the value of node id replaced.
func UpdateValue(root *Node, id, value string) *Node {
	return edit(root, id, func(n *Node) *Node {
		n.Value = value
		return n
	})
}

// AddChild returns a copy of root with a new leaf attached on the given side
// of node parentID. An occupied slot is left as is.
func AddChild(root *Node, parentID string, side Side, value string) *Node {
	return edit(root, parentID, func(n *Node) *Node {
		switch side {
		case SideLeft:
			if n.Left == nil {
				n.Left = NewNode(value)
			}
		case SideRight:
			if n.Right == nil {
				n.Right = NewNode(value)
			}
		}
		return n
	})
}

// RemoveAndPromote returns a copy of root where node id is replaced by its
// left child, or by its right child when there is no left child. When both
// children exist the right subtree is dropped along with the node.
func RemoveAndPromote(root *Node, id string) *Node {
	return edit(root, id, func(n *Node) *Node {
		if n.Left != nil {
			return n.Left
		}
		return n.Right
	})
}

// RemoveSubtree returns a copy of root without node id and its descendants.
func RemoveSubtree(root *Node, id string) *Node {
	return edit(root, id, func(*Node) *Node {
		return nil
	})
}
