package browse

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pitch-reservation/internal/catalog"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "browse", ttl), mr
}

func sampleState() State {
	floor := 500.0
	return NewState(catalog.Criteria{City: "İstanbul", MinPrice: &floor, ShoeRentals: []string{catalog.Yes}}, catalog.SortRating).WithPage(2)
}

func exerciseStore(t *testing.T, store SessionStore) {
	ctx := context.Background()

	sess, err := store.Create(ctx, sampleState())
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", got.State.Criteria.City)
	require.NotNil(t, got.State.Criteria.MinPrice)
	assert.Equal(t, 500.0, *got.State.Criteria.MinPrice)
	assert.Equal(t, catalog.SortRating, got.State.Sort)
	assert.Equal(t, 2, got.State.Page)

	got.State = got.State.WithCriteria(catalog.Criteria{City: "Ankara"})
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ankara", again.State.Criteria.City)
	assert.Equal(t, 1, again.State.Page)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Save(ctx, Session{ID: "missing"}), ErrSessionNotFound)
}

func TestRedisStore(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	exerciseStore(t, store)
	assert.Len(t, mr.Keys(), 1)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, sampleState())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("browse:"+sess.ID))

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Save(ctx, sess), ErrSessionNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Minute))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sess, err := store.Create(ctx, sampleState())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, sess))

	// Save refreshed the TTL
	now = now.Add(45 * time.Second)
	_, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSessionStore_FallsBackToMemory(t *testing.T) {
	assert.IsType(t, &MemoryStore{}, NewSessionStore(nil, 0))
}
