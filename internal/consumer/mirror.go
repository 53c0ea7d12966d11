package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/producer"
	"github.com/Decentr-net/themis/internal/profile"
	"github.com/Decentr-net/themis/internal/storage"
)

var log = logrus.WithField("package", "consumer")

type mirror struct {
	src storage.ContentStore
	dst storage.ContentStore
}

// NewMirror returns Handler which copies published profile documents from src to dst.
// Documents are verified before copying so dst never holds a document the issuer didn't sign.
func NewMirror(src, dst storage.ContentStore) Handler {
	return &mirror{
		src: src,
		dst: dst,
	}
}

// Handle ...
func (m *mirror) Handle(ctx context.Context, msg *producer.PublishedMessage) error {
	l := log.WithFields(logrus.Fields{
		"subject": msg.Subject,
		"cid":     msg.CID,
		"version": msg.Version,
	})

	data, err := m.src.Get(ctx, msg.CID)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrIntegrity):
		return fmt.Errorf("%w: %s", ErrRejected, err.Error())
	default:
		return fmt.Errorf("failed to get document: %w", err)
	}

	doc, err := profile.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRejected, err.Error())
	}

	if err := check(doc, msg); err != nil {
		return fmt.Errorf("%w: %s", ErrRejected, err.Error())
	}

	cid, err := m.dst.Put(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}

	if cid != msg.CID {
		return fmt.Errorf("%w: mirror addressed document as %s", ErrRejected, cid)
	}

	l.Info("document is mirrored")

	return nil
}

func check(doc profile.Document, msg *producer.PublishedMessage) error {
	if doc.Subject != msg.Subject {
		return fmt.Errorf("document belongs to %s", doc.Subject)
	}

	sc, ok := doc.Find(msg.Author, msg.Platform)
	if !ok || sc.ID != msg.CredentialID {
		return fmt.Errorf("credential %s is not in document", msg.CredentialID)
	}

	if sealed := sc.Credential.ClaimsEncrypted != nil; sealed != msg.Sealed {
		return fmt.Errorf("credential sealed=%t, expected %t", sealed, msg.Sealed)
	}

	return credential.Verify(sc)
}
