package api

import (
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/signer"
)

// MaxExcludedRepositories limits IssueCredentialRequest.Exclude.
const MaxExcludedRepositories = 50

// MaxWeight is the upper bound of languages ranking weights.
const MaxWeight = 10

// IsWeightValid returns true if f is a finite weight in [0, MaxWeight].
func IsWeightValid(f float64) bool {
	return f >= 0 && f <= MaxWeight
}

// Validator interface provides method for validation.
type Validator interface {
	Validate() error
}

// IssueOptions controls what is aggregated.
type IssueOptions struct {
	IncludeAllCommits         bool `json:"includeAllCommits,omitempty"`
	IncludeMergedPullRequests bool `json:"includeMergedPullRequests,omitempty"`
	IncludeDiscussions        bool `json:"includeDiscussions,omitempty"`
	IncludeDiscussionsAnswers bool `json:"includeDiscussionsAnswers,omitempty"`
	// MultiPage is ignored unless the server allows fetching all pages.
	MultiPage bool `json:"multiPage,omitempty"`
}

// IssueCredentialRequest ...
// swagger:model
type IssueCredentialRequest struct {
	// Address of credential subject.
	Subject string `json:"subject"`
	// GitHub access token. Code is exchanged for a token when token is empty.
	Token string `json:"token,omitempty"`
	Code  string `json:"code,omitempty"`

	Options IssueOptions `json:"options"`
	// Repositories skipped by languages ranking.
	Exclude     []string `json:"exclude,omitempty"`
	SizeWeight  *float64 `json:"sizeWeight,omitempty"`
	CountWeight *float64 `json:"countWeight,omitempty"`
}

// Validate ...
func (r IssueCredentialRequest) Validate() error {
	if !signer.IsAddressValid(r.Subject) {
		return fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}
	if r.Token == "" && r.Code == "" {
		return fmt.Errorf("%w: token or code is required", ErrInvalidRequest)
	}
	if len(r.Exclude) > MaxExcludedRepositories {
		return fmt.Errorf("%w: too many excluded repositories", ErrInvalidRequest)
	}
	for _, v := range []*float64{r.SizeWeight, r.CountWeight} {
		if v != nil && !IsWeightValid(*v) {
			return fmt.Errorf("%w: weight must be in [0, %d]", ErrInvalidRequest, MaxWeight)
		}
	}
	return nil
}

// PublishCredentialRequest ...
// swagger:model
type PublishCredentialRequest struct {
	Credential credential.SignedCredential `json:"credential"`
	// Encrypt claims before publishing.
	Encrypt bool `json:"encrypt,omitempty"`
	// Conditions gating decryption. Default conditions of the service are used when empty.
	Conditions policy.Conditions `json:"conditions,omitempty"`
}

// Validate ...
func (r PublishCredentialRequest) Validate() error {
	if !signer.IsAddressValid(r.Credential.Credential.UserAddress) {
		return fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}
	if !r.Encrypt && len(r.Conditions) > 0 {
		return fmt.Errorf("%w: conditions are given without encryption", ErrInvalidRequest)
	}
	if len(r.Conditions) > 0 {
		if err := r.Conditions.Validate(); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
		}
	}
	return nil
}

// IsURLValid returns true if s is http(s) URL.
func IsURLValid(s string) bool {
	return govalidator.IsURL(s) && govalidator.IsRequestURL(s)
}
