package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseEntity(t *testing.T) {
	t.Run("new entities get an ID and matching timestamps", func(t *testing.T) {
		e := NewBaseEntity()

		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	})

	t.Run("touch advances only the update timestamp", func(t *testing.T) {
		e := NewBaseEntity()
		created := e.CreatedAt
		e.UpdatedAt = e.UpdatedAt.Add(-time.Minute)
		before := e.UpdatedAt

		e.Touch()

		assert.Equal(t, created, e.CreatedAt)
		assert.True(t, e.UpdatedAt.After(before))
	})
}
