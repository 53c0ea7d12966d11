package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestClient_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "bearer token", r.Header.Get("Authorization"))

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "query", req.Query)
		assert.Equal(t, "octocat", req.Variables["login"])

		w.Write([]byte(`{"data":{"user":{"login":"octocat"}}}`)) // nolint
	}))
	defer srv.Close()

	var out struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	}
	require.NoError(t, New(srv.URL).Query(ctx, "query", map[string]interface{}{"login": "octocat"}, "token", &out))
	assert.Equal(t, "octocat", out.User.Login)
}

func TestClient_Query_Errors(t *testing.T) {
	tt := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "not found", status: http.StatusOK, body: `{"data":{"user":null},"errors":[{"type":"NOT_FOUND","message":"no user"}]}`, kind: ErrUserNotFound},
		{name: "message", status: http.StatusOK, body: `{"errors":[{"message":"bad query"}]}`, kind: ErrUpstreamProtocol},
		{name: "status", status: http.StatusBadGateway, body: `oops`, kind: ErrUpstreamProtocol},
		{name: "bad credentials", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, kind: ErrBadCredentials},
		{name: "malformed", status: http.StatusOK, body: `{`, kind: ErrUpstreamProtocol},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) // nolint
			}))
			defer srv.Close()

			var out interface{}
			err := New(srv.URL).Query(ctx, "query", nil, "", &out)
			assert.True(t, errors.Is(err, tc.kind), err)
		})
	}
}

func TestClient_SearchCommits(t *testing.T) {
	tt := []struct {
		name   string
		status int
		body   string
		total  int
		err    error
	}{
		{name: "ok", status: http.StatusOK, body: `{"total_count":1234,"items":[]}`, total: 1234},
		{name: "zero", status: http.StatusOK, body: `{"total_count":0}`, err: ErrUpstreamREST},
		{name: "missing", status: http.StatusOK, body: `{"items":[]}`, err: ErrUpstreamREST},
		{name: "not a number", status: http.StatusOK, body: `{"total_count":"many"}`, err: ErrUpstreamREST},
		{name: "status", status: http.StatusForbidden, body: `{"message":"rate limited"}`, err: ErrUpstreamREST},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search/commits", r.URL.Path)
				assert.Equal(t, "author:octocat", r.URL.Query().Get("q"))
				assert.Equal(t, commitSearchMediaType, r.Header.Get("Accept"))
				assert.Equal(t, "bearer token", r.Header.Get("Authorization"))

				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) // nolint
			}))
			defer srv.Close()

			total, err := New(srv.URL).SearchCommits(ctx, "author:octocat", "token")
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.total, total)
		})
	}
}

func TestClient_Viewer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		if r.Header.Get("Authorization") != "bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Write([]byte(`{"login":"octocat","followers":257,"created_at":"2021-07-15T10:00:00Z"}`)) // nolint
	}))
	defer srv.Close()

	v, err := New(srv.URL + "/").Viewer(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, Viewer{
		Login:     "octocat",
		Followers: 257,
		CreatedAt: time.Date(2021, 7, 15, 10, 0, 0, 0, time.UTC),
	}, v)

	_, err = New(srv.URL).Viewer(ctx, "wrong")
	assert.True(t, errors.Is(err, ErrBadCredentials))

	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "Sign in with GitHub again", ge.Hint)
}
