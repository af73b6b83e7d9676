package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryColumn(t *testing.T) {
	m := NewMemory([]int{10, 20, 30})
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 10, m.At(0))
	assert.Equal(t, 20, m.At(1))
	assert.Equal(t, 30, m.At(2))
}
