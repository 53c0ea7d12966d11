// Package signer contains the issuer key capability.
package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

//go:generate mockgen -destination=./signer_mock.go -package=signer -source=signer.go

// ErrInvalidKey is returned when issuer key can't be parsed.
var ErrInvalidKey = errors.New("invalid key")

// ErrInvalidSignature is returned when signature is malformed or doesn't match digest.
var ErrInvalidSignature = errors.New("invalid signature")

// Signer signs digests with issuer's key.
type Signer interface {
	// Sign returns 65 bytes [R || S || V] signature of digest, V is 27 or 28.
	Sign(ctx context.Context, digest []byte) ([]byte, error)
	// Address returns checksummed issuer address.
	Address() string
}

type ecdsaSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewECDSA returns Signer with secp256k1 private key in hex.
func NewECDSA(hexKey string) (Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err.Error())
	}

	return FromECDSA(key), nil
}

// FromECDSA returns Signer with provided private key.
func FromECDSA(key *ecdsa.PrivateKey) Signer {
	return &ecdsaSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Sign signs digest.
func (s *ecdsaSigner) Sign(_ context.Context, digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	return sig, nil
}

// Address returns issuer address.
func (s *ecdsaSigner) Address() string {
	return s.address.Hex()
}

// Digest returns EIP-191 personal message hash of data.
func Digest(data []byte) []byte {
	return accounts.TextHash(data)
}

// Recover returns checksummed address of digest's signer.
func Recover(digest, sig []byte) (string, error) {
	if len(sig) != crypto.SignatureLength {
		return "", ErrInvalidSignature
	}

	s := make([]byte, len(sig))
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(digest, s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidSignature, err.Error())
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// EncodeSignature returns 0x-prefixed hex signature.
func EncodeSignature(sig []byte) string {
	return hexutil.Encode(sig)
}

// DecodeSignature decodes 0x-prefixed hex signature.
func DecodeSignature(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err.Error())
	}

	return b, nil
}

// IsAddressValid returns true if s is a hex EVM address.
func IsAddressValid(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress returns checksummed form of hex address.
func NormalizeAddress(s string) string {
	return common.HexToAddress(s).Hex()
}
