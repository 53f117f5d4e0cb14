package engine

import (
	"log/slog"
	"slices"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/geometry"
	"github.com/structboard/structboard/internal/tree"
)

// insertionPoint returns the world point at the horizontal center of the
// viewport, InsertTop pixels below its top edge.
func (e *Engine) insertionPoint() document.Point {
	return e.ScreenToWorld(document.Point{X: e.viewportW / 2, Y: InsertTop})
}

// AddArray inserts an array of values centered in the viewport and selects
// it. Empty input is ignored. It returns the new id, or "".
func (e *Engine) AddArray(values []string) string {
	if len(values) == 0 {
		return ""
	}
	at := e.insertionPoint()
	w := geometry.ArrayBounds(0, 0, len(values)).Width
	return e.insertStructure(document.Element{
		Type:   document.TypeArray,
		X:      at.X - w/2,
		Y:      at.Y,
		Values: slices.Clone(values),
	})
}

// AddLinkedList inserts a linked list of values centered in the viewport.
func (e *Engine) AddLinkedList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	at := e.insertionPoint()
	w := geometry.LinkedListBounds(0, 0, len(values)).Width
	return e.insertStructure(document.Element{
		Type:   document.TypeLinkedList,
		X:      at.X - w/2,
		Y:      at.Y,
		Values: slices.Clone(values),
	})
}

// AddBinaryTree inserts a tree built from level-order values with its root
// at the viewport center. Input that yields no root is ignored.
func (e *Engine) AddBinaryTree(values []string) string {
	root := tree.BuildFromValues(values)
	if root == nil {
		return ""
	}
	at := e.insertionPoint()
	return e.insertStructure(document.Element{
		Type: document.TypeBinaryTree,
		X:    at.X,
		Y:    at.Y + geometry.TreeNodeRadius,
		Root: root,
	})
}

func (e *Engine) insertStructure(el document.Element) string {
	el.ID = document.NewElementID(el.Type)
	e.store.SaveToHistory()
	e.store.Add(el)
	e.store.Select(el.ID)
	e.store.Commit()
	return el.ID
}

// UpdateDataStructureValues replaces the values of the selected array or
// linked list. A selected binary tree is rebuilt from level-order values,
// and removed when they yield no root.
func (e *Engine) UpdateDataStructureValues(values []string) {
	id := e.store.SelectedID()
	el, ok := e.store.Element(id)
	if !ok || !el.Type.IsDataStructure() {
		slog.Debug("no data structure selected", "id", id)
		return
	}
	e.store.SaveToHistory()
	switch el.Type {
	case document.TypeArray, document.TypeLinkedList:
		el.Values = slices.Clone(values)
		e.store.Replace(el)
	case document.TypeBinaryTree:
		e.replaceTree(el, tree.BuildFromValues(values))
	}
	e.store.Commit()
}

// --- Tree nodes ---

// TreeNodeAt returns the topmost binary-tree element and node under screen
// point p.
func (e *Engine) TreeNodeAt(p document.Point) (elementID, nodeID string, ok bool) {
	w := e.ScreenToWorld(p)
	els := e.store.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		el := els[i]
		if el.Type != document.TypeBinaryTree {
			continue
		}
		if n := geometry.TreeNodeAt(w, el.Root, el.X, el.Y); n != nil {
			return el.ID, n.ID, true
		}
	}
	return "", "", false
}

// UpdateTreeNode sets the value of a node.
func (e *Engine) UpdateTreeNode(elementID, nodeID, value string) {
	e.editTree(elementID, nodeID, func(root *tree.Node) *tree.Node {
		return tree.UpdateValue(root, nodeID, value)
	})
}

// AddTreeChild attaches a new leaf on side of a node. Occupied slots are
// left untouched.
func (e *Engine) AddTreeChild(elementID, parentID string, side tree.Side, value string) {
	e.editTree(elementID, parentID, func(root *tree.Node) *tree.Node {
		return tree.AddChild(root, parentID, side, value)
	})
}

// RemoveTreeNode removes a node. With promote the node is replaced by one
// of its children, otherwise its whole subtree goes. Removing the last node
// removes the element.
func (e *Engine) RemoveTreeNode(elementID, nodeID string, promote bool) {
	e.editTree(elementID, nodeID, func(root *tree.Node) *tree.Node {
		if promote {
			return tree.RemoveAndPromote(root, nodeID)
		}
		return tree.RemoveSubtree(root, nodeID)
	})
}

func (e *Engine) editTree(elementID, nodeID string, fn func(*tree.Node) *tree.Node) {
	el, ok := e.store.Element(elementID)
	if !ok || el.Type != document.TypeBinaryTree || tree.Find(el.Root, nodeID) == nil {
		slog.Debug("tree edit on unknown node", "element", elementID, "node", nodeID)
		return
	}
	e.store.SaveToHistory()
	e.replaceTree(el, fn(el.Root))
	e.store.Commit()
}

func (e *Engine) replaceTree(el document.Element, root *tree.Node) {
	if root == nil {
		e.store.Remove(el.ID)
		return
	}
	el.Root = root
	e.store.Replace(el)
}
