package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apitest "github.com/Decentr-net/go-api/test"

	"github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/oauth"
	oauthmock "github.com/Decentr-net/themis/internal/oauth/mock"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/profile"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/service/mock"
	"github.com/Decentr-net/themis/internal/storage"
)

func Test_writeServiceError(t *testing.T) {
	tt := []struct {
		name  string
		err   error
		rcode int
		rdata string
		rlog  string
	}{
		{
			name:  "invalid request",
			err:   fmt.Errorf("%w: subject is not a valid address", service.ErrInvalidRequest),
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid request: subject is not a valid address"}`,
		},
		{
			name:  "invalid policy",
			err:   fmt.Errorf("%w: unknown chain", policy.ErrInvalidPolicy),
			rcode: http.StatusBadRequest,
		},
		{
			name:  "invalid code",
			err:   fmt.Errorf("failed to exchange code: %w", oauth.ErrInvalidCode),
			rcode: http.StatusBadRequest,
		},
		{
			name: "missing parameter",
			err: &github.Error{
				Kind:    github.ErrMissingParameter,
				Message: `Missing params "username" make sure you pass the parameters in URL`,
			},
			rcode: http.StatusBadRequest,
			rdata: `{"error":"missing parameter: Missing params \"username\" make sure you pass the parameters in URL"}`,
		},
		{
			name:  "bad credentials",
			err:   fmt.Errorf("failed to get viewer: %w", &github.Error{Kind: github.ErrBadCredentials, Message: "Access token is invalid or expired.", Hint: "Sign in with GitHub again"}),
			rcode: http.StatusUnauthorized,
			rdata: `{"error":"bad credentials: Access token is invalid or expired.","hint":"Sign in with GitHub again"}`,
		},
		{
			name:  "not found",
			err:   service.ErrNotFound,
			rcode: http.StatusNotFound,
			rdata: `{"error":"not found"}`,
		},
		{
			name:  "conflict",
			err:   storage.ErrConflict,
			rcode: http.StatusConflict,
			rdata: `{"error":"conflict","hint":"Profile was changed concurrently, publish again"}`,
		},
		{
			name:  "throttled",
			err:   service.ErrThrottled,
			rcode: http.StatusTooManyRequests,
			rdata: `{"error":"too many requests"}`,
		},
		{
			name:  "oauth upstream",
			err:   fmt.Errorf("failed to exchange code: %w", oauth.ErrUpstream),
			rcode: http.StatusBadGateway,
		},
		{
			name:  "github rest",
			err:   fmt.Errorf("failed to aggregate stats: %w", github.ErrUpstreamREST),
			rcode: http.StatusBadGateway,
		},
		{
			name:  "encryption",
			err:   fmt.Errorf("failed to seal: %w", crypto.ErrEncryption),
			rcode: http.StatusBadGateway,
		},
		{
			name:  "internal",
			err:   errors.New("disk is full"),
			rcode: http.StatusInternalServerError,
			rdata: `{"error":"internal error"}`,
			rlog:  "disk is full",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			b, w, r := apitest.NewAPITestParameters(http.MethodGet, "", nil)

			writeServiceError(r.Context(), w, tc.err)

			assert.Equal(t, tc.rcode, w.Code)
			if tc.rdata != "" {
				assert.Equal(t, tc.rdata, w.Body.String())
			}
			if tc.rlog != "" {
				assert.Contains(t, b.String(), tc.rlog)
			} else {
				assert.Empty(t, b.String())
			}
		})
	}
}

func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockService(ctrl)
	srv.EXPECT().GetProfile(gomock.Any(), testSubject).Return(profile.Document{Subject: testSubject}, storage.Pointer{CID: "bafy"}, nil)

	router := chi.NewRouter()
	SetupRouter(srv, router, Options{MaxBodySize: 16, RequestTimeout: time.Second})

	t.Run("trailing slash", func(t *testing.T) {
		w := httptest.NewRecorder()
		r, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://localhost/v1/profiles/%s/", testSubject), nil)
		require.NoError(t, err)

		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("body limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		r, err := http.NewRequest(http.MethodPost, "http://localhost/v1/credentials", strings.NewReader(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23"}`))
		require.NoError(t, err)

		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `{"error":"failed to read body"}`, w.Body.String())
	})

	t.Run("oauth is disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		r, err := http.NewRequest(http.MethodGet, "http://localhost/v1/oauth/github", nil)
		require.NoError(t, err)

		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSetupRouter_OAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ex := oauthmock.NewMockExchanger(ctrl)
	ex.EXPECT().AuthCodeURL("").Return("https://github.com/login/oauth/authorize")

	router := chi.NewRouter()
	SetupRouter(mock.NewMockService(ctrl), router, Options{MaxBodySize: 1024, RequestTimeout: time.Second, Exchanger: ex})

	w := httptest.NewRecorder()
	r, err := http.NewRequest(http.MethodGet, "http://localhost/v1/oauth/github", nil)
	require.NoError(t, err)

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://github.com/login/oauth/authorize", w.Header().Get("Location"))
}
