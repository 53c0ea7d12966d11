package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Decentr-net/themis/internal/credential"
)

// DefaultTimeout is timeout of http.Client created by NewClient.
const DefaultTimeout = time.Minute

type client struct {
	host string

	c *http.Client
}

// NewClient returns client with default http.Client.
func NewClient(host string) Themis {
	return NewClientWithHTTPClient(host, &http.Client{Timeout: DefaultTimeout})
}

// NewClientWithHTTPClient returns client with provided http.Client.
func NewClientWithHTTPClient(host string, c *http.Client) Themis {
	return &client{
		host: strings.TrimSuffix(host, "/"),
		c:    c,
	}
}

// IssueCredential asks Themis to issue credential for GitHub account.
// IssueCredential can return ErrThrottled and ErrUpstream besides general api package's errors.
func (c *client) IssueCredential(ctx context.Context, r IssueCredentialRequest) (IssueCredentialResponse, error) {
	var resp IssueCredentialResponse
	if err := c.sendRequest(ctx, http.MethodPost, IssueCredentialEndpoint, r, &resp); err != nil {
		return IssueCredentialResponse{}, fmt.Errorf("failed to make IssueCredential request: %w", err)
	}

	return resp, nil
}

// VerifyCredential checks credential signatures.
func (c *client) VerifyCredential(ctx context.Context, sc credential.SignedCredential) (VerifyCredentialResponse, error) {
	var resp VerifyCredentialResponse
	if err := c.sendRequest(ctx, http.MethodPost, VerifyCredentialEndpoint, sc, &resp); err != nil {
		return VerifyCredentialResponse{}, fmt.Errorf("failed to make VerifyCredential request: %w", err)
	}

	return resp, nil
}

// PublishCredential puts credential into subject's profile.
// PublishCredential can return ErrConflict besides general api package's errors.
func (c *client) PublishCredential(ctx context.Context, r PublishCredentialRequest) (PublishCredentialResponse, error) {
	var resp PublishCredentialResponse
	endpoint := fmt.Sprintf(PublishCredentialEndpoint, r.Credential.Credential.UserAddress)
	if err := c.sendRequest(ctx, http.MethodPost, endpoint, r, &resp); err != nil {
		return PublishCredentialResponse{}, fmt.Errorf("failed to make PublishCredential request: %w", err)
	}

	return resp, nil
}

// GetProfile returns profile of subject.
// GetProfile can return ErrNotFound besides general api package's errors.
func (c *client) GetProfile(ctx context.Context, subject string) (ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.sendRequest(ctx, http.MethodGet, fmt.Sprintf(ProfileEndpoint, subject), nil, &resp); err != nil {
		return ProfileResponse{}, fmt.Errorf("failed to make GetProfile request: %w", err)
	}

	return resp, nil
}

// GetHistory returns previous versions of subject's profile, newest first.
func (c *client) GetHistory(ctx context.Context, subject string, limit uint16) (HistoryResponse, error) {
	endpoint := fmt.Sprintf(HistoryEndpoint, subject)
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}

	var resp HistoryResponse
	if err := c.sendRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return HistoryResponse{}, fmt.Errorf("failed to make GetHistory request: %w", err)
	}

	return resp, nil
}

// sendRequest is utility method which validates request, sends it to Themis and decodes response.
// Also converts http.StatusCode to package's errors.
func (c *client) sendRequest(ctx context.Context, method string, endpoint string, data interface{}, resp interface{}) error {
	if v, ok := data.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	var body []byte
	if data != nil {
		var err error
		if body, err = json.Marshal(data); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	r, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/%s", c.host, endpoint), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	rr, err := c.c.Do(r)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer rr.Body.Close()

	if rr.StatusCode < 200 || rr.StatusCode >= 300 {
		var e Error
		if err := json.NewDecoder(rr.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = http.StatusText(rr.StatusCode)
		}

		switch rr.StatusCode {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrInvalidRequest, e.Error)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, e.Error)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, e.Error)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrConflict, e.Error)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrThrottled, e.Error)
		case http.StatusBadGateway:
			return fmt.Errorf("%w: %s", ErrUpstream, e.Error)
		default:
			return errors.Errorf("request failed with status %d: %s", rr.StatusCode, e.Error)
		}
	}

	if err := json.NewDecoder(rr.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
