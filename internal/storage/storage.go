// Package storage contains content-addressed store and profile pointer registry interfaces.
package storage

import (
	"context"
	"errors"

	"github.com/Decentr-net/themis/internal/health"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound means that object is not found.
var ErrNotFound = errors.New("not found")

// ErrConflict means that pointer was updated by someone else since it was read.
var ErrConflict = errors.New("conflict")

// ErrIntegrity means that stored content doesn't match its address.
var ErrIntegrity = errors.New("content doesn't match its address")

// ContentStore is a content-addressed store. Put of the same data always returns the same address.
type ContentStore interface {
	health.Pinger

	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, cid string) ([]byte, error)
}
