package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "author_create",
		Description: "Created author Stephen King",
		EntityType:  "author",
		EntityID:    "76053df4-6687-4353-8937-b45556748abe",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType:  entities.AuditEventCreate,
			Action:     "author_create",
			EntityType: "author",
			Status:     entities.AuditStatusSuccess,
			CreatedAt:  time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(event))
	}

	for i := 0; i < 5; i++ {
		event := &entities.AuditEvent{
			EventType:  entities.AuditEventDelete,
			Action:     "book_delete",
			EntityType: "book",
			Status:     entities.AuditStatusSuccess,
		}
		require.NoError(t, repo.LogEvent(event))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents("", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("filter by entity type", func(t *testing.T) {
		events, total, err := repo.GetEvents("book", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, events, 5)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents("author", 10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)
	})

	t.Run("most recent first", func(t *testing.T) {
		events, _, err := repo.GetEvents("author", 2, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt))
	})
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	id := "412c3012-d891-4f5e-9613-ff7aa63e6bb3"
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventCreate, Action: "author_create", EntityType: "author", EntityID: id}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventDelete, Action: "author_delete", EntityType: "author", EntityID: id}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventCreate, Action: "author_create", EntityType: "author", EntityID: "other"}))

	events, err := repo.GetEventsForEntity("author", id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "author_create", events[0].Action)
	assert.Equal(t, "author_delete", events[1].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "new"}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
