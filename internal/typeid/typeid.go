package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixRectangle  = "rect"
	PrefixCircle     = "circle"
	PrefixLine       = "line"
	PrefixArrow      = "arrow"
	PrefixDraw       = "draw"
	PrefixText       = "text"
	PrefixArray      = "array"
	PrefixLinkedList = "list"
	PrefixBinaryTree = "tree"
	PrefixTreeNode   = "node"
	PrefixSession    = "sess"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewTreeNodeID() string { return New(PrefixTreeNode) }
func NewSessionID() string  { return New(PrefixSession) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
