package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "a"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains(nil, "a"))
}

func TestRemove(t *testing.T) {
	assert.Equal(t, []string{"b"}, Remove([]string{"a", "b"}, "a"))
	assert.Equal(t, []string{"a", "b"}, Remove([]string{"a", "b"}, "c"))
	assert.Equal(t, []string{"a", "b"}, Remove([]string{"a", "x", "b"}, "x"))
	assert.Empty(t, Remove([]string{"a"}, "a"))
}
