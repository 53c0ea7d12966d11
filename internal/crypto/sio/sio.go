// Package sio contains minio/sio implementation of crypto.ThresholdService.
// It holds the master key locally and is meant for development and tests.
package sio

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io/ioutil"
	"sync"
	"time"

	"github.com/minio/sio"

	icrypto "github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/policy"
)

// ErrDigestMismatch is returned when decrypted data doesn't match its digest.
var ErrDigestMismatch = errors.New("digest mismatch")

// Service is a local ThresholdService.
type Service struct {
	key []byte
	now func() time.Time

	mu        sync.RWMutex
	connected bool
}

var _ icrypto.ThresholdService = &Service{}

// New returns Service with master key.
func New(key [32]byte) *Service {
	return &Service{
		key: key[:],
		now: time.Now,
	}
}

// Connect ...
func (s *Service) Connect(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = true
	return nil
}

// Close ...
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	return nil
}

func (s *Service) isConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connected
}

// config returns sio config with key bound to conditions.
func (s *Service) config(conditions policy.Conditions) (sio.Config, error) {
	serialized, err := conditions.Serialize()
	if err != nil {
		return sio.Config{}, err
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(serialized)) // nolint

	return sio.Config{
		MinVersion: sio.Version20,
		Key:        mac.Sum(nil),
	}, nil
}

// Encrypt seals plaintext for parties satisfying conditions.
func (s *Service) Encrypt(_ context.Context, sc icrypto.SignerContext, conditions policy.Conditions, plaintext []byte) (icrypto.Sealed, error) {
	if !s.isConnected() {
		return icrypto.Sealed{}, icrypto.ErrNotConnected
	}

	if err := icrypto.VerifySignerContext(sc, s.now()); err != nil {
		return icrypto.Sealed{}, fmt.Errorf("unauthorized: %w", err)
	}

	if err := conditions.Validate(); err != nil {
		return icrypto.Sealed{}, err
	}

	c, err := s.config(conditions)
	if err != nil {
		return icrypto.Sealed{}, err
	}

	r, err := sio.EncryptReader(bytes.NewReader(plaintext), c)
	if err != nil {
		return icrypto.Sealed{}, fmt.Errorf("failed to create encrypting reader: %w", err)
	}

	ciphertext, err := ioutil.ReadAll(r)
	if err != nil {
		return icrypto.Sealed{}, fmt.Errorf("failed to encrypt: %w", err)
	}

	digest := sha256.Sum256(plaintext)

	return icrypto.Sealed{
		Ciphertext:        base64.StdEncoding.EncodeToString(ciphertext),
		DataToEncryptHash: hex.EncodeToString(digest[:]),
	}, nil
}

// Decrypt opens sealed data. Conditions are not evaluated on chain.
func (s *Service) Decrypt(_ context.Context, conditions policy.Conditions, sealed icrypto.Sealed) ([]byte, error) {
	if !s.isConnected() {
		return nil, icrypto.ErrNotConnected
	}

	c, err := s.config(conditions)
	if err != nil {
		return nil, err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	r, err := sio.DecryptReader(bytes.NewReader(ciphertext), c)
	if err != nil {
		return nil, fmt.Errorf("failed to create decrypting reader: %w", err)
	}

	plaintext, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	digest := sha256.Sum256(plaintext)
	if hex.EncodeToString(digest[:]) != sealed.DataToEncryptHash {
		return nil, ErrDigestMismatch
	}

	return plaintext, nil
}
