package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/themis/internal/credential"
)

const subject = "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"

func signed(id, author, platform string, claims ...credential.Claim) credential.SignedCredential {
	c := credential.New("c-"+id, subject, time.Unix(1700000000, 0))
	c.Author = author
	c.Platform = platform

	return credential.SignedCredential{
		ID:         id,
		Issuer:     subject,
		Signature1: "0x01",
		Signature2: "0x02",
		Credential: c.WithClaims(claims),
	}
}

func followers(n int64) credential.Claim {
	return credential.Claim{ID: "f", Platform: credential.Platform, Criteria: "followers", Condition: credential.ConditionGreaterEqual, Value: credential.IntValue(n)}
}

func TestMerge_ReplacesSameSource(t *testing.T) {
	existing := &Document{
		Subject: subject,
		Credentials: []credential.SignedCredential{
			signed("a", credential.Author, credential.Platform, followers(10)),
			signed("other", "Someone", "gitlab.com"),
		},
	}

	b := signed("b", credential.Author, credential.Platform, followers(20))
	out := Merge(existing, b)

	require.Len(t, out.Credentials, 2)
	assert.Equal(t, "other", out.Credentials[0].ID)
	assert.Equal(t, "b", out.Credentials[1].ID)

	found, ok := out.Find(credential.Author, credential.Platform)
	require.True(t, ok)
	n, _ := found.Credential.Claims[0].Value.Int()
	assert.Equal(t, int64(20), n)

	// existing is untouched
	require.Len(t, existing.Credentials, 2)
	assert.Equal(t, "a", existing.Credentials[0].ID)
}

func TestMerge_Idempotent(t *testing.T) {
	a := signed("a", credential.Author, credential.Platform)
	b := signed("b", credential.Author, credential.Platform)

	once := Merge(nil, a)
	twice := Merge(&once, b)
	thrice := Merge(&twice, b)

	assert.Equal(t, twice, thrice)
	require.Len(t, thrice.Credentials, 1)
	assert.Equal(t, "b", thrice.Credentials[0].ID)
}

func TestMerge_Nil(t *testing.T) {
	out := Merge(nil, signed("a", credential.Author, credential.Platform))

	assert.Equal(t, subject, out.Subject)
	assert.Len(t, out.Credentials, 1)
	assert.Nil(t, out.Extra)
}

func TestMerge_SamePlatformOtherAuthor(t *testing.T) {
	existing := Merge(nil, signed("a", "Another Team", credential.Platform))
	out := Merge(&existing, signed("b", credential.Author, credential.Platform))

	assert.Len(t, out.Credentials, 2)
}

func TestDocument_JSON_PreservesExtra(t *testing.T) {
	const raw = `{"title":"Dev","skills":["go",1e3],"credentials":[],"nested":{"b":1,"a":2}}`

	d, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, d.Subject)
	assert.Empty(t, d.Credentials)
	assert.Len(t, d.Extra, 3)

	merged := Merge(&d, signed("a", credential.Author, credential.Platform))
	merged.Extra["title"] = json.RawMessage(`"Lead"`)
	assert.JSONEq(t, `"Dev"`, string(d.Extra["title"]))

	b, err := merged.Serialize()
	require.NoError(t, err)

	back, err := Parse(b)
	require.NoError(t, err)
	assert.JSONEq(t, `["go",1e3]`, string(back.Extra["skills"]))
	assert.JSONEq(t, `{"a":2,"b":1}`, string(back.Extra["nested"]))
	assert.Equal(t, subject, back.Subject)
	require.Len(t, back.Credentials, 1)
}

func TestDocument_Serialize_Deterministic(t *testing.T) {
	d := Merge(nil, signed("a", credential.Author, credential.Platform, followers(1)))

	first, err := d.Serialize()
	require.NoError(t, err)
	second, err := d.Serialize()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"credentials":[{"credential":{"author":`)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"credentials":{}}`))
	assert.Error(t, err)
}

func TestSealed(t *testing.T) {
	sc := signed("a", credential.Author, credential.Platform, followers(1))
	sealed := Sealed(sc, credential.EncryptedClaimBundle{ID: "b", Total: 1})

	assert.NotEqual(t, sc.ID, sealed.ID)
	assert.Nil(t, sealed.Credential.Claims)
	require.NotNil(t, sealed.Credential.ClaimsEncrypted)
	assert.Equal(t, sc.Credential.ID, sealed.Credential.ID)
	assert.Len(t, sc.Credential.Claims, 1)
	assert.NoError(t, sealed.Credential.Validate())
}

func TestRevision(t *testing.T) {
	sc := signed("a", credential.Author, credential.Platform, followers(1))
	r := Revision(sc)

	assert.NotEqual(t, sc.ID, r.ID)
	r.Credential.Claims[0].ID = "changed"
	assert.Equal(t, "f", sc.Credential.Claims[0].ID)

	sealed := Revision(Sealed(sc, credential.EncryptedClaimBundle{ID: "b", Total: 1}))
	assert.NotNil(t, sealed.Credential.ClaimsEncrypted)
	assert.Nil(t, sealed.Credential.Claims)
}
