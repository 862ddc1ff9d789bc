//go:build unit

package resource_test

import (
	"testing"

	"booking-board/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	t.Run("top-level resource", func(t *testing.T) {
		id := uuid.New()
		r, err := resource.NewResource(id, "Room A", nil)
		require.NoError(t, err)

		assert.Equal(t, id, r.ID())
		assert.True(t, r.IsTopLevel())
		assert.Nil(t, r.ParentID())
	})

	t.Run("sub-resource", func(t *testing.T) {
		parentID := uuid.New()
		r, err := resource.NewResource(uuid.New(), "Seat A-1", &parentID)
		require.NoError(t, err)

		assert.False(t, r.IsTopLevel())
		assert.Equal(t, parentID, *r.ParentID())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := resource.NewResource(uuid.New(), "", nil)
		assert.ErrorIs(t, err, resource.ErrEmptyName)
	})

	t.Run("self parent", func(t *testing.T) {
		id := uuid.New()
		_, err := resource.NewResource(id, "Room A", &id)
		assert.ErrorIs(t, err, resource.ErrSelfParent)
	})
}

func TestSerializationRoot(t *testing.T) {
	t.Run("top-level serializes on itself", func(t *testing.T) {
		id := uuid.New()
		r := resource.ReconstructResource(id, "Room A", nil)
		assert.Equal(t, id, r.SerializationRoot())
	})

	t.Run("sub-resource serializes on its parent", func(t *testing.T) {
		parentID := uuid.New()
		r := resource.ReconstructResource(uuid.New(), "Seat A-1", &parentID)
		assert.Equal(t, parentID, r.SerializationRoot())
	})
}
