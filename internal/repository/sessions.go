package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	SessionKeyPrefix = "session:"
	SessionTTL       = 24 * time.Hour
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the records of active games. Records expire after
// SessionTTL without access.
type SessionStore interface {
	Create(ctx context.Context, record models.GameRecord) (string, error)
	Get(ctx context.Context, id string) (models.GameRecord, error)
	Put(ctx context.Context, id string, record models.GameRecord) error
	Delete(ctx context.Context, id string) error
}

// NewSessionStore returns a Redis backed store if Redis is configured and an in-memory store otherwise.
func NewSessionStore(services *services.Services) SessionStore {
	if services.Redis != nil {
		return NewRedisSessionStore(services.Redis)
	}
	return NewMemorySessionStore()
}

// NewSessionRepository returns the session store of the app.
func NewSessionRepository(c *fiber.Ctx) SessionStore {
	return c.Locals("sessions").(SessionStore)
}

type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client}
}

func sessionKey(id string) string {
	return SessionKeyPrefix + id
}

// Create stores a record under a new random ID.
func (s *RedisSessionStore) Create(ctx context.Context, record models.GameRecord) (string, error) {
	id := uuid.New().String()

	if err := s.Put(ctx, id, record); err != nil {
		return "", err
	}

	return id, nil
}

// Get loads a record and resets its TTL.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (models.GameRecord, error) {
	jsonData, err := s.redis.GetEx(ctx, sessionKey(id), SessionTTL).Bytes()
	if err == redis.Nil {
		return models.GameRecord{}, ErrSessionNotFound
	}

	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error getting session: %w", err)
	}

	record, err := models.ParseRecord(jsonData)
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error loading session %s: %w", id, err)
	}

	return record, nil
}

// Put stores a record and resets its TTL.
func (s *RedisSessionStore) Put(ctx context.Context, id string, record models.GameRecord) error {
	jsonData, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	if err = s.redis.Set(ctx, sessionKey(id), jsonData, SessionTTL).Err(); err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}

	return nil
}

// Delete removes a record. Deleting an unknown ID is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Records are stored
// encoded, so callers never share state with the store.
type MemorySessionStore struct {
	// data stores the underlying map
	data map[string]memoryEntry

	// dataMutex protects data
	dataMutex sync.Mutex

	// now is replaced in tests
	now func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, record models.GameRecord) (string, error) {
	id := uuid.New().String()

	if err := s.Put(ctx, id, record); err != nil {
		return "", err
	}

	return id, nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (models.GameRecord, error) {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	s.evictExpired()

	entry, ok := s.data[id]
	if !ok {
		return models.GameRecord{}, ErrSessionNotFound
	}

	entry.expiresAt = s.now().Add(SessionTTL)
	s.data[id] = entry

	return models.ParseRecord(entry.data)
}

func (s *MemorySessionStore) Put(_ context.Context, id string, record models.GameRecord) error {
	jsonData, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	s.data[id] = memoryEntry{data: jsonData, expiresAt: s.now().Add(SessionTTL)}
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	delete(s.data, id)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet evicted.
func (s *MemorySessionStore) Len() int {
	s.dataMutex.Lock()
	defer s.dataMutex.Unlock()

	return len(s.data)
}

// evictExpired removes expired entries. It assumes dataMutex is locked.
func (s *MemorySessionStore) evictExpired() {
	now := s.now()
	for id, entry := range s.data {
		if now.After(entry.expiresAt) {
			delete(s.data, id)
		}
	}
}
