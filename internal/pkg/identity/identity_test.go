package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "ids must be unique")
		seen[id] = true
	}
}
