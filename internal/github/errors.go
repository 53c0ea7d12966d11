package github

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds.
var (
	// ErrMissingParameter is returned when required input is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrUserNotFound is returned when upstream reports no such account.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials is returned when upstream rejects the access token.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrUpstreamProtocol is returned on query-level upstream failure.
	ErrUpstreamProtocol = errors.New("graphql error")
	// ErrUpstreamREST is returned when REST fallback yields no usable count.
	ErrUpstreamREST = errors.New("github rest api error")
)

const tryAgainLater = "Please try again later"

var hints = map[error]string{
	ErrUserNotFound:     "Make sure the provided username is not an organization",
	ErrBadCredentials:   "Sign in with GitHub again",
	ErrUpstreamProtocol: tryAgainLater,
	ErrUpstreamREST:     tryAgainLater,
}

// Error is a classified upstream error with user-actionable hint.
type Error struct {
	Kind    error
	Message string
	Hint    string
}

func newError(kind error, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Hint:    hints[kind],
	}
}

func missingParameter(names ...string) *Error {
	quoted := make([]string, len(names))
	for i, v := range names {
		quoted[i] = fmt.Sprintf("%q", v)
	}

	return newError(ErrMissingParameter,
		fmt.Sprintf("Missing params %s make sure you pass the parameters in URL", strings.Join(quoted, ", ")),
	)
}

// Error ...
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// GraphQLError is one error reported in GraphQL response.
type GraphQLError struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// classify turns GraphQL errors into error kind decided by the first one.
func classify(errs []GraphQLError) error {
	if len(errs) == 0 {
		return nil
	}

	first := errs[0]
	switch {
	case first.Type == "NOT_FOUND":
		msg := first.Message
		if msg == "" {
			msg = "Could not fetch user."
		}
		return newError(ErrUserNotFound, msg)
	case first.Message != "":
		return newError(ErrUpstreamProtocol, first.Message)
	default:
		return newError(ErrUpstreamProtocol, "Something went wrong while trying to retrieve the data using the GraphQL API.")
	}
}
