package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Decentr-net/themis/internal/id"
	"github.com/Decentr-net/themis/internal/signer"
)

//go:generate mockgen -destination=./mock/assembler.go -package=mock -source=assembler.go

// ErrSigning is returned when issuer key is unavailable or signing failed.
var ErrSigning = errors.New("signing failed")

// Assembler builds and signs credentials.
type Assembler interface {
	// Assemble returns credential for subject with claims, signed twice by issuer.
	Assemble(ctx context.Context, subject string, claims []Claim) (SignedCredential, error)
}

type assembler struct {
	s   signer.Signer
	now func() time.Time
}

// NewAssembler returns new instance of Assembler.
func NewAssembler(s signer.Signer) Assembler {
	return &assembler{
		s:   s,
		now: time.Now,
	}
}

// Assemble signs the claims-less credential first, then attaches claims and signs again.
func (a *assembler) Assemble(ctx context.Context, subject string, claims []Claim) (SignedCredential, error) {
	if a.s == nil {
		return SignedCredential{}, fmt.Errorf("%w: issuer key is not configured", ErrSigning)
	}

	c := New(id.New(), subject, a.now())

	d1, err := EndorsementDigest(c)
	if err != nil {
		return SignedCredential{}, fmt.Errorf("failed to get endorsement digest: %w", err)
	}

	sig1, err := a.s.Sign(ctx, d1)
	if err != nil {
		return SignedCredential{}, fmt.Errorf("%w: failed to sign endorsement: %s", ErrSigning, err.Error())
	}

	c = c.WithClaims(claims)

	d2, err := ClaimsDigest(c, c.Claims)
	if err != nil {
		return SignedCredential{}, fmt.Errorf("failed to get claims digest: %w", err)
	}

	sig2, err := a.s.Sign(ctx, d2)
	if err != nil {
		return SignedCredential{}, fmt.Errorf("%w: failed to sign claims: %s", ErrSigning, err.Error())
	}

	return SignedCredential{
		ID:         id.New(),
		Issuer:     a.s.Address(),
		Signature1: signer.EncodeSignature(sig1),
		Signature2: signer.EncodeSignature(sig2),
		Credential: c,
	}, nil
}
