// Package oauth exchanges GitHub OAuth authorization codes for access tokens.
package oauth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

//go:generate mockgen -destination=./mock/oauth.go -package=mock -source=oauth.go

// Scopes are requested to read the contributions of the user.
var Scopes = []string{"read:user", "repo"} // nolint:gochecknoglobals

// ErrInvalidCode is returned when the provider rejects the authorization code.
var ErrInvalidCode = errors.New("invalid authorization code")

// ErrUpstream is returned when the provider is not available.
var ErrUpstream = errors.New("oauth provider failed")

// Exchanger ...
type Exchanger interface {
	// AuthCodeURL returns URL of the consent page.
	AuthCodeURL(state string) string
	// Exchange returns access token for code.
	Exchange(ctx context.Context, code string) (string, error)
}

type exchanger struct {
	c *oauth2.Config
}

// New returns new instance of Exchanger for GitHub.
func New(clientID, clientSecret, redirectURL string) Exchanger {
	return NewWithEndpoint(clientID, clientSecret, redirectURL, github.Endpoint)
}

// NewWithEndpoint returns new instance of Exchanger for custom endpoint.
func NewWithEndpoint(clientID, clientSecret, redirectURL string, endpoint oauth2.Endpoint) Exchanger {
	return &exchanger{
		c: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       Scopes,
		},
	}
}

// AuthCodeURL ...
func (e *exchanger) AuthCodeURL(state string) string {
	return e.c.AuthCodeURL(state)
}

// Exchange ...
func (e *exchanger) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: code is empty", ErrInvalidCode)
	}

	t, err := e.c.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && (re.ErrorCode != "" || re.Response.StatusCode < 500) {
			return "", fmt.Errorf("%w: %s", ErrInvalidCode, describe(re))
		}
		return "", fmt.Errorf("%w: %s", ErrUpstream, err.Error())
	}

	return t.AccessToken, nil
}

func describe(re *oauth2.RetrieveError) string {
	switch {
	case re.ErrorDescription != "":
		return re.ErrorDescription
	case re.ErrorCode != "":
		return re.ErrorCode
	default:
		return re.Response.Status
	}
}
