package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(id string) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		TouchedAt: now,
	}
}

func TestMemoryStoreReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := storedRecord("sid-1")
	rec.Flash = map[string][]string{FlashSuccess: {"saved"}}
	require.NoError(t, store.Put(ctx, rec))

	// Mutating the caller's record after Put must not reach the store.
	rec.Flash[FlashSuccess] = append(rec.Flash[FlashSuccess], "stray")

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"saved"}, got.Flash[FlashSuccess])

	// Draining the returned copy without a write-back must leave the
	// stored flash queue intact.
	s := newSession(got, false, false)
	assert.Equal(t, []string{"saved"}, s.TakeFlash(FlashSuccess))

	again, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, []string{"saved"}, again.Flash[FlashSuccess],
		"drain without Put must not mutate the durable copy")
}

func TestMemoryStoreDropsExpiredRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := storedRecord("sid-2")
	rec.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.Get(ctx, "sid-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
