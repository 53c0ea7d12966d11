package api

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Decentr-net/themis/internal/policy"
)

func TestIssueCredentialRequest_Validate(t *testing.T) {
	w := func(f float64) *float64 { return &f }

	tt := []struct {
		name  string
		req   IssueCredentialRequest
		valid bool
	}{
		{name: "token", req: IssueCredentialRequest{Subject: testSubject, Token: "gho"}, valid: true},
		{name: "code", req: IssueCredentialRequest{Subject: testSubject, Code: "code", SizeWeight: w(0.5), CountWeight: w(0)}, valid: true},
		{name: "no auth", req: IssueCredentialRequest{Subject: testSubject}},
		{name: "invalid subject", req: IssueCredentialRequest{Subject: "0x123", Token: "gho"}},
		{name: "negative weight", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", SizeWeight: w(-1)}},
		{name: "max weight", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", CountWeight: w(MaxWeight)}, valid: true},
		{name: "too big weight", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", CountWeight: w(1e300)}},
		{name: "nan weight", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", SizeWeight: w(math.NaN())}},
		{name: "inf weight", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", SizeWeight: w(math.Inf(1))}},
		{name: "too many excluded", req: IssueCredentialRequest{Subject: testSubject, Token: "gho", Exclude: make([]string, MaxExcludedRepositories+1)}},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidRequest), err)
			}
		})
	}
}

func TestPublishCredentialRequest_Validate(t *testing.T) {
	conditions := policy.HoldsToken("0x000000000000000000000000000000000000dEaD", policy.ChainAmoy)

	assert.NoError(t, PublishCredentialRequest{Credential: testCredential()}.Validate())
	assert.NoError(t, PublishCredentialRequest{Credential: testCredential(), Encrypt: true}.Validate())
	assert.NoError(t, PublishCredentialRequest{Credential: testCredential(), Encrypt: true, Conditions: conditions}.Validate())

	err := PublishCredentialRequest{Credential: testCredential(), Conditions: conditions}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	bad := policy.HoldsToken("0x1", "ethereum")
	err = PublishCredentialRequest{Credential: testCredential(), Encrypt: true, Conditions: bad}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestIsURLValid(t *testing.T) {
	assert.True(t, IsURLValid("https://themis.example.com"))
	assert.True(t, IsURLValid("http://localhost:8080"))
	assert.False(t, IsURLValid("themis"))
	assert.False(t, IsURLValid(""))
}
