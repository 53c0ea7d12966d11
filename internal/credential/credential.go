// Package credential contains credential model, its canonical digests, assembling and verification.
package credential

import (
	"errors"
	"fmt"
	"time"
)

// Validity is the duration credential stays valid since its issue.
const Validity = 30 * 24 * time.Hour

// Fixed credential texts.
const (
	Author      = "Talentlayer Core Team"
	Description = "This credential validates user's programming skills and his open source contributions"
)

// ErrInvalidCredential is returned when credential breaks model invariants.
var ErrInvalidCredential = errors.New("invalid credential")

// EncryptedClaimBundle replaces plaintext claims when confidentiality is requested.
type EncryptedClaimBundle struct {
	ID                string `json:"id"`
	Ciphertext        string `json:"ciphertext"`
	DataToEncryptHash string `json:"dataToEncryptHash"`
	// Condition is the serialized access-control policy gating decryption.
	Condition string `json:"condition"`
	// Total is the count of claims before encryption.
	Total int `json:"total"`
}

// Credential is the claims plus metadata prior to signing.
type Credential struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
	// IssueTime and ExpiryTime are unix seconds.
	IssueTime   int64  `json:"issueTime,string"`
	ExpiryTime  int64  `json:"expiryTime,string"`
	UserAddress string `json:"userAddress"`

	Claims          []Claim               `json:"claims,omitempty"`
	ClaimsEncrypted *EncryptedClaimBundle `json:"claimsEncrypted,omitempty"`
}

// SignedCredential is a credential with issuer signatures.
type SignedCredential struct {
	ID     string `json:"id"`
	Issuer string `json:"issuer"`
	// Signature1 is made over the credential without claims.
	Signature1 string `json:"signature1"`
	// Signature2 is made over the credential with plaintext claims.
	Signature2 string     `json:"signature2"`
	Credential Credential `json:"credential"`
}

// New returns credential without claims issued at issuedAt.
func New(id, subject string, issuedAt time.Time) Credential {
	issue := issuedAt.Unix()

	return Credential{
		ID:          id,
		Author:      Author,
		Platform:    Platform,
		Description: Description,
		IssueTime:   issue,
		ExpiryTime:  issue + int64(Validity/time.Second),
		UserAddress: subject,
	}
}

// Issued returns issue instant.
func (c Credential) Issued() time.Time {
	return time.Unix(c.IssueTime, 0).UTC()
}

// Expires returns expiry instant.
func (c Credential) Expires() time.Time {
	return time.Unix(c.ExpiryTime, 0).UTC()
}

// Validate checks credential invariants.
func (c Credential) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCredential)
	}
	if c.UserAddress == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidCredential)
	}
	if c.ExpiryTime-c.IssueTime != int64(Validity/time.Second) {
		return fmt.Errorf("%w: validity window must be %s", ErrInvalidCredential, Validity)
	}
	if len(c.Claims) > 0 && c.ClaimsEncrypted != nil {
		return fmt.Errorf("%w: claims and claimsEncrypted are mutually exclusive", ErrInvalidCredential)
	}
	if len(c.Claims) == 0 && c.ClaimsEncrypted == nil {
		return fmt.Errorf("%w: neither claims nor claimsEncrypted present", ErrInvalidCredential)
	}

	return nil
}

// WithClaims returns copy of credential carrying claims instead of encrypted bundle.
func (c Credential) WithClaims(claims []Claim) Credential {
	out := c.bare()
	out.Claims = make([]Claim, len(claims))
	copy(out.Claims, claims)
	return out
}

// WithEncryptedClaims returns copy of credential carrying encrypted bundle instead of claims.
func (c Credential) WithEncryptedClaims(b EncryptedClaimBundle) Credential {
	out := c.bare()
	out.ClaimsEncrypted = &b
	return out
}

// bare returns copy of credential without claims and encrypted bundle.
func (c Credential) bare() Credential {
	c.Claims = nil
	c.ClaimsEncrypted = nil
	return c
}
