// Package crypto contains policy-gated encryption of claims.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/id"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/signer"
)

//go:generate mockgen -destination=./crypto_mock.go -package=crypto -source=crypto.go

// ErrEncryption is returned when threshold service is unavailable or rejected the request.
var ErrEncryption = errors.New("encryption failed")

// ErrNotConnected is returned by ThresholdService used before Connect or after Close.
var ErrNotConnected = errors.New("not connected")

// AuthTTL is the lifetime of SignerContext.
const AuthTTL = 24 * time.Hour

// SignerContext authorizes the encrypting party to threshold service.
type SignerContext struct {
	Address       string    `json:"address"`
	SignedMessage string    `json:"signedMessage"`
	Signature     string    `json:"sig"`
	Expiration    time.Time `json:"expiration"`
}

// Sealed is ciphertext with digest of the plaintext.
type Sealed struct {
	Ciphertext        string `json:"ciphertext"`
	DataToEncryptHash string `json:"dataToEncryptHash"`
}

// ThresholdService encrypts data under access-control conditions.
type ThresholdService interface {
	Connect(ctx context.Context) error
	Encrypt(ctx context.Context, sc SignerContext, conditions policy.Conditions, plaintext []byte) (Sealed, error)
	Close() error
}

// Encryptor replaces claims with encrypted bundle.
type Encryptor interface {
	// EncryptClaims returns bundle of claims decryptable by parties satisfying conditions.
	EncryptClaims(ctx context.Context, claims []credential.Claim, conditions policy.Conditions) (credential.EncryptedClaimBundle, error)
}

type encryptor struct {
	ts  ThresholdService
	s   signer.Signer
	now func() time.Time
}

// NewEncryptor returns Encryptor authorizing to ts with s.
func NewEncryptor(ts ThresholdService, s signer.Signer) Encryptor {
	return &encryptor{
		ts:  ts,
		s:   s,
		now: time.Now,
	}
}

// NewSignerContext returns SignerContext signed by s which expires at expiration.
func NewSignerContext(ctx context.Context, s signer.Signer, expiration time.Time) (SignerContext, error) {
	msg := fmt.Sprintf("%s authorizes encryption until %s", s.Address(), expiration.UTC().Format(time.RFC3339))

	sig, err := s.Sign(ctx, signer.Digest([]byte(msg)))
	if err != nil {
		return SignerContext{}, fmt.Errorf("failed to sign auth message: %w", err)
	}

	return SignerContext{
		Address:       s.Address(),
		SignedMessage: msg,
		Signature:     signer.EncodeSignature(sig),
		Expiration:    expiration,
	}, nil
}

// VerifySignerContext checks signature and expiration of sc.
func VerifySignerContext(sc SignerContext, now time.Time) error {
	if now.After(sc.Expiration) {
		return errors.New("signer context is expired")
	}

	sig, err := signer.DecodeSignature(sc.Signature)
	if err != nil {
		return err
	}

	addr, err := signer.Recover(signer.Digest([]byte(sc.SignedMessage)), sig)
	if err != nil {
		return err
	}
	if addr != signer.NormalizeAddress(sc.Address) {
		return errors.New("signer context is signed by another address")
	}

	return nil
}

// EncryptClaims ...
func (e *encryptor) EncryptClaims(ctx context.Context, claims []credential.Claim, conditions policy.Conditions) (credential.EncryptedClaimBundle, error) {
	if err := conditions.Validate(); err != nil {
		return credential.EncryptedClaimBundle{}, err
	}

	condition, err := conditions.Serialize()
	if err != nil {
		return credential.EncryptedClaimBundle{}, err
	}

	plaintext, err := credential.Canonicalize(claims)
	if err != nil {
		return credential.EncryptedClaimBundle{}, fmt.Errorf("failed to serialize claims: %w", err)
	}

	if e.s == nil {
		return credential.EncryptedClaimBundle{}, fmt.Errorf("%w: signer is not configured", ErrEncryption)
	}
	sc, err := NewSignerContext(ctx, e.s, e.now().Add(AuthTTL))
	if err != nil {
		return credential.EncryptedClaimBundle{}, fmt.Errorf("%w: %s", ErrEncryption, err.Error())
	}

	sealed, err := e.ts.Encrypt(ctx, sc, conditions, plaintext)
	if err != nil {
		return credential.EncryptedClaimBundle{}, fmt.Errorf("%w: %s", ErrEncryption, err.Error())
	}

	return credential.EncryptedClaimBundle{
		ID:                id.New(),
		Ciphertext:        sealed.Ciphertext,
		DataToEncryptHash: sealed.DataToEncryptHash,
		Condition:         condition,
		Total:             len(claims),
	}, nil
}
