package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

//go:generate mockgen -destination=./client_mock.go -package=github -source=client.go

// DefaultURL is GitHub API base url.
const DefaultURL = "https://api.github.com"

const commitSearchMediaType = "application/vnd.github.cloak-preview"

var _ Client = &client{}

// Client is a GitHub API transport.
type Client interface {
	// Query executes GraphQL query and decodes its data into out.
	// Errors reported in response are classified.
	Query(ctx context.Context, query string, variables map[string]interface{}, token string, out interface{}) error
	// SearchCommits returns total count of commits matching search expression.
	SearchCommits(ctx context.Context, expr string, token string) (int, error)
	// Viewer returns the user owning token.
	Viewer(ctx context.Context, token string) (Viewer, error)
}

// Viewer is the authenticated user.
type Viewer struct {
	Login     string    `json:"login"`
	Followers int       `json:"followers"`
	CreatedAt time.Time `json:"created_at"`
}

type client struct {
	baseURL string
	c       *http.Client
}

// New returns GitHub client with 10 seconds timeout.
func New(baseURL string) Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

// NewWithHTTPClient returns GitHub client with provided http.Client.
func NewWithHTTPClient(baseURL string, c *http.Client) Client {
	return &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		c:       c,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Query ...
func (c *client) Query(ctx context.Context, query string, variables map[string]interface{}, token string, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")
	setToken(r, token)

	rr, err := c.c.Do(r)
	if err != nil {
		return fmt.Errorf("failed to post graphql request: %w", err)
	}
	defer rr.Body.Close() // nolint

	if rr.StatusCode == http.StatusUnauthorized {
		return newError(ErrBadCredentials, "Access token is invalid or expired.")
	}
	if rr.StatusCode < 200 || rr.StatusCode >= 300 {
		b, _ := ioutil.ReadAll(rr.Body)
		return errors.Wrapf(ErrUpstreamProtocol, "request failed with status %d: %s", rr.StatusCode, string(b))
	}

	var resp graphQLResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		return errors.Wrapf(ErrUpstreamProtocol, "failed to decode response: %s", err)
	}

	if len(resp.Errors) > 0 {
		log.WithField("errors", spew.Sdump(resp.Errors)).Debug("graphql query failed")
		return classify(resp.Errors)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return errors.Wrapf(ErrUpstreamProtocol, "failed to decode data: %s", err)
	}

	return nil
}

// SearchCommits ...
func (c *client) SearchCommits(ctx context.Context, expr string, token string) (int, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search/commits?q=%s", c.baseURL, url.QueryEscape(expr)), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", commitSearchMediaType)
	setToken(r, token)

	rr, err := c.c.Do(r)
	if err != nil {
		return 0, fmt.Errorf("failed to get commits: %w", err)
	}
	defer rr.Body.Close() // nolint

	if rr.StatusCode != http.StatusOK {
		b, _ := ioutil.ReadAll(rr.Body)
		log.WithField("body", string(b)).WithField("status", rr.StatusCode).Debug("commit search failed")
		return 0, newError(ErrUpstreamREST, "Could not fetch total commits.")
	}

	var resp struct {
		TotalCount *int `json:"total_count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil || resp.TotalCount == nil || *resp.TotalCount == 0 {
		return 0, newError(ErrUpstreamREST, "Could not fetch total commits.")
	}

	return *resp.TotalCount, nil
}

// Viewer ...
func (c *client) Viewer(ctx context.Context, token string) (Viewer, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return Viewer{}, fmt.Errorf("failed to create request: %w", err)
	}
	r.Header.Set("Accept", "application/json")
	setToken(r, token)

	rr, err := c.c.Do(r)
	if err != nil {
		return Viewer{}, fmt.Errorf("failed to get user: %w", err)
	}
	defer rr.Body.Close() // nolint

	switch rr.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return Viewer{}, newError(ErrBadCredentials, "Access token is invalid or expired.")
	case http.StatusNotFound:
		return Viewer{}, newError(ErrUserNotFound, "Could not fetch user.")
	default:
		return Viewer{}, errors.Wrapf(ErrUpstreamREST, "request failed with status %d", rr.StatusCode)
	}

	var v Viewer
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		return Viewer{}, errors.Wrapf(ErrUpstreamREST, "failed to decode user: %s", err)
	}

	return v, nil
}

func setToken(r *http.Request, token string) {
	if token != "" {
		r.Header.Set("Authorization", "bearer "+token)
	}
}
