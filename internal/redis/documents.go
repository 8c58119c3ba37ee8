package redisclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is an opaque blob store. The core writes and reads documents
// by key and enforces no schema on their contents.
type DocumentStore interface {
	Put(ctx context.Context, key string, doc []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

type redisDocumentStore struct {
	client *redis.Client
}

func NewRedisDocumentStore(client *redis.Client) DocumentStore {
	return &redisDocumentStore{client: client}
}

func (s *redisDocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	if err := s.client.Set(ctx, key, doc, 0).Err(); err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}

func (s *redisDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}
	return val, nil
}
