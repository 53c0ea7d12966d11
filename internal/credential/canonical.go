package credential

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Decentr-net/themis/internal/signer"
)

// Canonicalize returns JSON of v with lexicographically sorted object keys and no insignificant whitespace.
// Every digest and content address is computed over canonical bytes.
func Canonicalize(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var generic interface{}
	if err := d.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	// encoding/json writes map keys sorted.
	b := bytes.Buffer{}
	e := json.NewEncoder(&b)
	e.SetEscapeHTML(false)
	if err := e.Encode(generic); err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}

	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// EndorsementDigest returns digest of the credential without claims.
func EndorsementDigest(c Credential) ([]byte, error) {
	return digest(c.bare())
}

// ClaimsDigest returns digest of the credential with claims.
func ClaimsDigest(c Credential, claims []Claim) ([]byte, error) {
	return digest(c.WithClaims(claims))
}

func digest(c Credential) ([]byte, error) {
	b, err := Canonicalize(c)
	if err != nil {
		return nil, err
	}

	return signer.Digest(b), nil
}
