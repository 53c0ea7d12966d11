package storage

import (
	"context"
	"time"

	"github.com/Decentr-net/themis/internal/health"
)

//go:generate mockgen -destination=./mock/index_storage.go -package=mock -source=index_storage.go

// Pointer refers to the current profile document of subject.
type Pointer struct {
	Subject string    `json:"subject"`
	CID     string    `json:"cid"`
	Version uint64    `json:"version"`
	Updated time.Time `json:"updated"`
}

// PointerRegistry stores profile pointers.
type PointerRegistry interface {
	health.Pinger

	// Get returns current pointer of subject or ErrNotFound.
	Get(ctx context.Context, subject string) (Pointer, error)
	// Update points subject to cid if the current version is expectedVersion and returns the new pointer.
	// Zero expectedVersion means subject has no pointer yet. ErrConflict is returned on version mismatch.
	Update(ctx context.Context, subject string, cid string, expectedVersion uint64) (Pointer, error)
	// History returns previous pointers of subject, newest first.
	History(ctx context.Context, subject string, limit uint16) ([]Pointer, error)
}
