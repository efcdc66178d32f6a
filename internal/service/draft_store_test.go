package service

import (
	"context"
	"testing"
	"time"

	"mediconnect/internal/booking"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	return NewDraftStore(client, log, 30*time.Minute), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	sessionID := uuid.New()

	draft := booking.NewDraft()
	require.NoError(t, draft.SubmitContact("Jane Doe", "jane@x.com", "(555) 123-4567"))

	require.NoError(t, store.Save(context.Background(), sessionID, draft))

	loaded, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, draft, loaded)
	require.Equal(t, booking.StepSelectionDetails, loaded.Step)
}

func TestDraftStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	sessionID := uuid.New()

	require.NoError(t, store.Save(context.Background(), sessionID, booking.NewDraft()))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(context.Background(), sessionID)
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	sessionID := uuid.New()

	require.NoError(t, store.Save(context.Background(), sessionID, booking.NewDraft()))
	require.NoError(t, store.Delete(context.Background(), sessionID))

	_, err := store.Get(context.Background(), sessionID)
	require.ErrorIs(t, err, ErrDraftNotFound)

	// deleting an already-gone draft is fine
	require.NoError(t, store.Delete(context.Background(), sessionID))
}
