package credential

import (
	"errors"
	"fmt"

	"github.com/Decentr-net/themis/internal/signer"
)

// ErrNotVerified is returned when a signature doesn't belong to the issuer.
var ErrNotVerified = errors.New("failed to verify credential")

// Verify checks signature1 and, when claims are in plaintext, signature2.
func Verify(sc SignedCredential) error {
	if err := sc.Credential.Validate(); err != nil {
		return err
	}

	if err := VerifyEndorsement(sc); err != nil {
		return err
	}

	if sc.Credential.ClaimsEncrypted != nil {
		return nil
	}

	return VerifyClaims(sc, sc.Credential.Claims)
}

// VerifyEndorsement checks that issuer endorsed subject, author, platform and validity window.
func VerifyEndorsement(sc SignedCredential) error {
	d, err := EndorsementDigest(sc.Credential)
	if err != nil {
		return fmt.Errorf("failed to get endorsement digest: %w", err)
	}

	return verify(d, sc.Signature1, sc.Issuer)
}

// VerifyClaims checks that issuer endorsed exactly claims for the credential.
// It's used to check decrypted claims of a sealed credential too.
func VerifyClaims(sc SignedCredential, claims []Claim) error {
	d, err := ClaimsDigest(sc.Credential, claims)
	if err != nil {
		return fmt.Errorf("failed to get claims digest: %w", err)
	}

	return verify(d, sc.Signature2, sc.Issuer)
}

func verify(digest []byte, signature, issuer string) error {
	sig, err := signer.DecodeSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotVerified, err.Error())
	}

	addr, err := signer.Recover(digest, sig)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotVerified, err.Error())
	}

	if !signer.IsAddressValid(issuer) || addr != signer.NormalizeAddress(issuer) {
		return ErrNotVerified
	}

	return nil
}
