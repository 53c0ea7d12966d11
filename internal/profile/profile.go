// Package profile contains the profile document and publication merge.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/id"
)

const (
	subjectField     = "subject"
	credentialsField = "credentials"
)

// Document is a subject's profile. Fields owned by other systems are kept in Extra verbatim.
type Document struct {
	Subject     string
	Credentials []credential.SignedCredential
	Extra       map[string]json.RawMessage
}

// MarshalJSON ...
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+2)
	for k, v := range d.Extra {
		out[k] = v
	}

	credentials := d.Credentials
	if credentials == nil {
		credentials = []credential.SignedCredential{}
	}

	if d.Subject != "" {
		out[subjectField] = d.Subject
	}
	out[credentialsField] = credentials

	return json.Marshal(out)
}

// UnmarshalJSON ...
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out Document
	if v, ok := raw[subjectField]; ok {
		if err := json.Unmarshal(v, &out.Subject); err != nil {
			return fmt.Errorf("failed to decode subject: %w", err)
		}
		delete(raw, subjectField)
	}
	if v, ok := raw[credentialsField]; ok {
		if err := json.Unmarshal(v, &out.Credentials); err != nil {
			return fmt.Errorf("failed to decode credentials: %w", err)
		}
		delete(raw, credentialsField)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}

	*d = out
	return nil
}

// Serialize returns canonical JSON of document.
func (d Document) Serialize() ([]byte, error) {
	return credential.Canonicalize(d)
}

// Parse decodes document.
func Parse(b []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return Document{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return d, nil
}

// Find returns credential of author on platform.
func (d Document) Find(author, platform string) (credential.SignedCredential, bool) {
	for _, v := range d.Credentials {
		if sameSource(v, author, platform) {
			return v, true
		}
	}
	return credential.SignedCredential{}, false
}

// Merge returns copy of existing with sc replacing any credential of the same author and platform.
// Nil existing is an empty profile of sc's subject. Existing is never modified.
func Merge(existing *Document, sc credential.SignedCredential) Document {
	var out Document
	if existing != nil {
		out.Subject = existing.Subject
		if existing.Extra != nil {
			out.Extra = make(map[string]json.RawMessage, len(existing.Extra))
			for k, v := range existing.Extra {
				out.Extra[k] = v
			}
		}
	}
	if out.Subject == "" {
		out.Subject = sc.Credential.UserAddress
	}

	out.Credentials = make([]credential.SignedCredential, 0, 1)
	if existing != nil {
		for _, v := range existing.Credentials {
			if sameSource(v, sc.Credential.Author, sc.Credential.Platform) {
				continue
			}
			out.Credentials = append(out.Credentials, v)
		}
	}
	out.Credentials = append(out.Credentials, sc)

	return out
}

func sameSource(sc credential.SignedCredential, author, platform string) bool {
	return sc.Credential.Author == author && sc.Credential.Platform == platform
}

// Sealed returns new revision of sc with claims replaced by bundle.
// Signature1 stays valid; signature2 is checked against decrypted claims.
func Sealed(sc credential.SignedCredential, b credential.EncryptedClaimBundle) credential.SignedCredential {
	out := sc
	out.ID = id.New()
	out.Credential = sc.Credential.WithEncryptedClaims(b)
	return out
}

// Revision returns copy of sc with fresh envelope id, for republishing.
func Revision(sc credential.SignedCredential) credential.SignedCredential {
	out := sc
	out.ID = id.New()
	out.Credential = sc.Credential.WithClaims(sc.Credential.Claims)
	if sc.Credential.ClaimsEncrypted != nil {
		out.Credential = sc.Credential.WithEncryptedClaims(*sc.Credential.ClaimsEncrypted)
	}
	return out
}
