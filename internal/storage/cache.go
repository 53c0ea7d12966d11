package storage

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

type cached struct {
	ContentStore

	c *lru.ARCCache
}

// NewCached returns ContentStore which keeps up to size recently used objects in memory.
// Objects are immutable so cache is never invalidated.
func NewCached(s ContentStore, size int) (ContentStore, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &cached{
		ContentStore: s,
		c:            c,
	}, nil
}

// Put ...
func (s *cached) Put(ctx context.Context, data []byte) (string, error) {
	address, err := s.ContentStore.Put(ctx, data)
	if err != nil {
		return "", err
	}

	s.c.Add(address, copyBytes(data))
	return address, nil
}

// Get ...
func (s *cached) Get(ctx context.Context, address string) ([]byte, error) {
	if v, ok := s.c.Get(address); ok {
		return copyBytes(v.([]byte)), nil
	}

	data, err := s.ContentStore.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	s.c.Add(address, copyBytes(data))
	return data, nil
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
