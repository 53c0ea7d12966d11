// Package api provides API and client to Themis.
package api

import (
	"context"
	"errors"

	"github.com/Decentr-net/themis/internal/credential"
)

//go:generate mockgen -destination=./api_mock.go -package=api -source=api.go

// IssueCredentialEndpoint ...
const IssueCredentialEndpoint = "v1/credentials"

// VerifyCredentialEndpoint ...
const VerifyCredentialEndpoint = "v1/credentials/verify"

// ProfileEndpoint is formatted with subject address.
const ProfileEndpoint = "v1/profiles/%s"

// PublishCredentialEndpoint is formatted with subject address.
const PublishCredentialEndpoint = "v1/profiles/%s/credentials"

// HistoryEndpoint is formatted with subject address.
const HistoryEndpoint = "v1/profiles/%s/history"

// ErrInvalidRequest is returned when request is invalid.
var ErrInvalidRequest = errors.New("invalid request")

// ErrUnauthorized is returned when GitHub token is missing, invalid or expired.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when object is not found.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when profile was changed concurrently. Publishing should be retried.
var ErrConflict = errors.New("conflict")

// ErrThrottled is returned when issuance for the subject was requested recently.
var ErrThrottled = errors.New("too many requests")

// ErrUpstream is returned when GitHub or OAuth provider failed.
var ErrUpstream = errors.New("upstream failed")

// Themis provides user-friendly API methods.
type Themis interface {
	IssueCredential(ctx context.Context, r IssueCredentialRequest) (IssueCredentialResponse, error)
	VerifyCredential(ctx context.Context, sc credential.SignedCredential) (VerifyCredentialResponse, error)
	PublishCredential(ctx context.Context, r PublishCredentialRequest) (PublishCredentialResponse, error)
	GetProfile(ctx context.Context, subject string) (ProfileResponse, error)
	GetHistory(ctx context.Context, subject string, limit uint16) (HistoryResponse, error)
}
