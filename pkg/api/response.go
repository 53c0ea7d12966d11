package api

import (
	"time"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/languages"
	"github.com/Decentr-net/themis/internal/profile"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
	// Hint is a user-actionable advice.
	Hint string `json:"hint,omitempty"`
}

// IssueCredentialResponse ...
// swagger:model
type IssueCredentialResponse struct {
	Credential credential.SignedCredential `json:"credential"`
	Stats      github.AccountSnapshot      `json:"stats"`
	Languages  languages.Ranking           `json:"languages"`
}

// VerifyCredentialResponse ...
// swagger:model
type VerifyCredentialResponse struct {
	Valid   bool      `json:"valid"`
	Error   string    `json:"error,omitempty"`
	Issuer  string    `json:"issuer,omitempty"`
	Expires time.Time `json:"expires"`
}

// PublishCredentialResponse ...
// swagger:model
type PublishCredentialResponse struct {
	Credential credential.SignedCredential `json:"credential"`
	CID        string                      `json:"cid"`
	Version    uint64                      `json:"version"`
}

// ProfileResponse ...
// swagger:model
type ProfileResponse struct {
	Profile profile.Document `json:"profile"`
	CID     string           `json:"cid"`
	Version uint64           `json:"version"`
	Updated time.Time        `json:"updated"`
}

// HistoryResponse ...
// swagger:model
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// HistoryItem ...
type HistoryItem struct {
	CID     string    `json:"cid"`
	Version uint64    `json:"version"`
	Updated time.Time `json:"updated"`
}
