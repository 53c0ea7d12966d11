// Package producer contains the interface of publication notifications producer.
package producer

import (
	"context"
	"time"
)

//go:generate mockgen -destination=./mock/producer.go -package=mock -source=producer.go

// PublishedMessage is sent after profile pointer points to a document with new credential.
type PublishedMessage struct {
	Subject string `json:"subject"`
	CID     string `json:"cid"`
	Version uint64 `json:"version"`
	// CredentialID is id of the published SignedCredential, it changes on every publication.
	CredentialID string    `json:"credentialId"`
	Author       string    `json:"author"`
	Platform     string    `json:"platform"`
	Sealed       bool      `json:"sealed"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// Producer ...
type Producer interface {
	Produce(ctx context.Context, msg *PublishedMessage) error
}
