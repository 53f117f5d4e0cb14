package typeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndValidate(t *testing.T) {
	id := NewSessionID()
	assert.Regexp(t, `^sess_[0-9a-z]{26}$`, id)
	assert.NoError(t, Validate(id, PrefixSession))

	node := NewTreeNodeID()
	assert.Error(t, Validate(node, PrefixSession))
	assert.NoError(t, Validate(node, PrefixTreeNode))

	assert.Error(t, Validate("", PrefixSession))
	assert.Error(t, Validate("sess_nope", PrefixSession))
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New(PrefixRectangle)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
