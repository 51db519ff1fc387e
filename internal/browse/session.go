package browse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("browse session not found")

// DefaultSessionTTL applies when a store is built with a non-positive TTL.
const DefaultSessionTTL = 30 * time.Minute

// Session is a server-held browse position.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStore persists browse sessions. Every write refreshes the TTL.
type SessionStore interface {
	Create(ctx context.Context, st State) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
}

// NewSessionStore returns a Redis backed store, or an in-process one when
// rdb is nil.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	if rdb == nil {
		return NewMemoryStore(ttl)
	}
	return NewRedisStore(rdb, "browse", ttl)
}

// RedisStore keeps sessions as JSON values under "<prefix>:<id>".
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Create(ctx context.Context, st State) (Session, error) {
	sess := Session{ID: uuid.NewString(), State: st, UpdatedAt: time.Now().UTC()}
	bs, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), bs, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	bs, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(bs, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save overwrites an existing session. It does not resurrect expired ones.
func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	sess.UpdatedAt = time.Now().UTC()
	bs, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, s.key(sess.ID), bs, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// MemoryStore is the fallback used when Redis is unavailable. Sessions do
// not survive a restart or span instances.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	sess    Session
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: map[string]memoryEntry{}}
}

func (m *MemoryStore) Create(_ context.Context, st State) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	now := m.now()
	sess := Session{ID: uuid.NewString(), State: st, UpdatedAt: now.UTC()}
	m.sessions[sess.ID] = memoryEntry{sess: sess, expires: now.Add(m.ttl)}
	return sess, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || !m.now().Before(e.expires) {
		delete(m.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	return e.sess, nil
}

func (m *MemoryStore) Save(_ context.Context, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e, ok := m.sessions[sess.ID]
	if !ok || !now.Before(e.expires) {
		delete(m.sessions, sess.ID)
		return ErrSessionNotFound
	}
	sess.UpdatedAt = now.UTC()
	m.sessions[sess.ID] = memoryEntry{sess: sess, expires: now.Add(m.ttl)}
	return nil
}

// sweep drops expired entries. Called with mu held.
func (m *MemoryStore) sweep() {
	now := m.now()
	for id, e := range m.sessions {
		if !now.Before(e.expires) {
			delete(m.sessions, id)
		}
	}
}
