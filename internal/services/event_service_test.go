package services

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentEventsAreScopedAndLimited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.events.Record(ctx, "alice", models.EventContactCreate, "created")
	}
	f.events.Record(ctx, "bob", models.EventContactCreate, "created")

	got, err := f.events.Recent(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, "alice", e.Username)
	}

	got, err = f.events.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.events.Recent(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPruneBefore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := models.Event{ID: "old", Username: "alice", Type: "x", Message: "old", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	require.NoError(t, f.db.Create(&old).Error)
	f.events.Record(ctx, "alice", models.EventUserLogin, "fresh")

	removed, err := f.events.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := f.events.Recent(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Message)
}
