package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	r := NewRegistry()

	a := r.Register("user-1", nil)
	b := r.Register("user-1", nil)
	c := r.Register("user-2", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, r.Clients("user-1"), 2)
	assert.Equal(t, 3, r.Count())

	r.Unregister(a)
	assert.Len(t, r.Clients("user-1"), 1)

	r.Unregister(b)
	r.Unregister(c)
	assert.Empty(t, r.Clients("user-1"))
	assert.Equal(t, 0, r.Count())

	// unregistering twice is harmless
	r.Unregister(c)
}
