package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"tawdifak-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisStore is the session-storage backing: a string key-value namespace
// per session. The TTL doubles as the session lifetime, so abandoned
// sessions are torn down by Redis itself.
type RedisStore struct {
	client    redis.UniversalClient
	sessionID string
	ttl       time.Duration
}

// NewRedisStore scopes a store to one session.
func NewRedisStore(client redis.UniversalClient, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
	}
}

func (s *RedisStore) key(key string) string {
	return SessionPrefix(s.sessionID) + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, s.key(key)).Result()
	RecordOperationDuration("get", start)
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		IncrementError("get")
		return nil, NewCacheError("get", err, true)
	}
	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		IncrementError("get_unmarshal")
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return nil, NewCacheError("unmarshal", err, false)
	}
	return &entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry) error {
	stored := *entry
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	data, err := json.Marshal(&stored)
	if err != nil {
		IncrementError("set_marshal")
		return NewCacheError("marshal", err, false)
	}

	start := time.Now()
	ttl := strconv.FormatInt(s.ttl.Milliseconds(), 10)
	keys := []string{s.key(key), SessionIndexKey(s.sessionID)}
	err = setSessionEntryScript.Run(ctx, s.client, keys, string(data), ttl).Err()
	RecordOperationDuration("set", start)
	if err != nil {
		IncrementError("set")
		return NewCacheError("set", err, true)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	start := time.Now()
	removed, err := clearSessionEntriesScript.Run(ctx, s.client, []string{SessionIndexKey(s.sessionID)}).Int()
	RecordOperationDuration("clear", start)
	if err != nil {
		IncrementError("clear")
		return NewCacheError("clear", err, true)
	}
	logger.GlobalLogger.Debugf("cleared %d cached entries for session %s", removed, s.sessionID)
	return nil
}
