package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apitest "github.com/Decentr-net/go-api/test"
	logging "github.com/Decentr-net/logrus/context"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/languages"
	oauthmock "github.com/Decentr-net/themis/internal/oauth/mock"
	"github.com/Decentr-net/themis/internal/profile"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/service/mock"
	"github.com/Decentr-net/themis/internal/signer"
	"github.com/Decentr-net/themis/internal/storage"
	themis "github.com/Decentr-net/themis/pkg/api"
)

const (
	testKey     = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testSubject = "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"
)

var errSkip = errors.New("fictive error")

var timeFixture = time.Unix(1700000000, 0).UTC()

func newTestRouter(b *bytes.Buffer) chi.Router {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logrus.New()
			log.SetOutput(b)
			next.ServeHTTP(w, r.WithContext(logging.WithLogger(r.Context(), log)))
		})
	})
	return router
}

func newTestCredential(t *testing.T) credential.SignedCredential {
	s, err := signer.NewECDSA(testKey)
	require.NoError(t, err)

	sc, err := credential.NewAssembler(s).Assemble(context.Background(), testSubject, []credential.Claim{
		{ID: "c1", Platform: credential.Platform, Criteria: "followers", Condition: credential.ConditionGreaterEqual, Value: credential.IntValue(250)},
	})
	require.NoError(t, err)

	return sc
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestServer_IssueCredentialHandler(t *testing.T) {
	tt := []struct {
		name    string
		reqBody []byte
		token   string
		err     error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name:    "success",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23","options":{"multiPage":true},"exclude":["dotfiles"]}`),
			token:   "gho_token",
			rcode:   http.StatusCreated,
		},
		{
			name:    "invalid json",
			reqBody: []byte("some data"),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"request is invalid: invalid character 's' looking for beginning of value"}`,
		},
		{
			name:    "without token",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23"}`),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid request: token or code is required"}`,
		},
		{
			name:    "invalid weight",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23","token":"t","sizeWeight":11}`),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid request: weight must be in [0, 10]"}`,
		},
		{
			name:    "throttled",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23"}`),
			token:   "gho_token",
			err:     fmt.Errorf("%w: retry in 10s", service.ErrThrottled),
			rcode:   http.StatusTooManyRequests,
			rdata:   `{"error":"too many requests: retry in 10s"}`,
		},
		{
			name:    "user not found",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23"}`),
			token:   "gho_token",
			err: fmt.Errorf("failed to aggregate stats: %w", &github.Error{
				Kind:    github.ErrUserNotFound,
				Message: "Could not fetch user.",
				Hint:    "Make sure the provided username is not an organization",
			}),
			rcode: http.StatusNotFound,
			rdata: `{"error":"user not found: Could not fetch user.","hint":"Make sure the provided username is not an organization"}`,
		},
		{
			name:    "internal error",
			reqBody: []byte(`{"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23"}`),
			token:   "gho_token",
			err:     errors.New("test error"),
			rcode:   http.StatusInternalServerError,
			rdata:   `{"error":"internal error"}`,
			rlog:    "test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodPost, "v1/credentials", tc.reqBody)
			if tc.token != "" {
				r.Header.Set("Authorization", "Bearer "+tc.token)
			}

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req service.IssueRequest) (service.IssueResult, error) {
					assert.Equal(t, tc.token, req.Token)
					assert.Equal(t, "0x2c7536e3605d9c16a7a3d7b1898e529396a65c23", req.Subject)

					return service.IssueResult{
						Credential: credential.SignedCredential{ID: "sc"},
						Snapshot:   github.AccountSnapshot{Login: "octocat", TotalCommits: 42},
					}, tc.err
				})
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Post("/v1/credentials", s.issueCredentialHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			if tc.rdata != "" {
				assert.Equal(t, tc.rdata, w.Body.String())
			}
		})
	}
}

func TestServer_IssueCredentialHandler_Options(t *testing.T) {
	b, w, r := apitest.NewAPITestParameters(http.MethodPost, "v1/credentials", []byte(`{
		"subject":"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23",
		"code":"oauth-code",
		"options":{"multiPage":true,"includeDiscussions":true},
		"exclude":["dotfiles"],
		"countWeight":2
	}`))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockService(ctrl)
	srv.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req service.IssueRequest) (service.IssueResult, error) {
		assert.Empty(t, req.Token)
		assert.Equal(t, "oauth-code", req.Code)
		assert.Equal(t, github.Flags{MultiPage: true, IncludeDiscussions: true}, req.Flags)
		assert.Equal(t, []string{"dotfiles"}, req.Exclude)
		assert.Nil(t, req.SizeWeight)
		require.NotNil(t, req.CountWeight)
		assert.Equal(t, 2.0, *req.CountWeight)

		return service.IssueResult{
			Credential: credential.SignedCredential{ID: "sc"},
			Snapshot:   github.AccountSnapshot{Login: "octocat", TotalCommits: 42},
			Languages:  languages.Ranking{{Language: languages.Language{Name: "Go", Size: 10, Count: 1}, Score: 1}},
		}, nil
	})

	router := newTestRouter(b)
	s := server{s: srv}
	router.Post("/v1/credentials", s.issueCredentialHandler)

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp themis.IssueCredentialResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sc", resp.Credential.ID)
	assert.Equal(t, "octocat", resp.Stats.Login)
	assert.Equal(t, 42, resp.Stats.TotalCommits)
	require.Len(t, resp.Languages, 1)
	assert.Equal(t, "Go", resp.Languages[0].Name)
}

func TestServer_VerifyCredentialHandler(t *testing.T) {
	sc := newTestCredential(t)

	tampered := sc
	tampered.Credential = sc.Credential.WithClaims([]credential.Claim{
		{ID: "c1", Platform: credential.Platform, Criteria: "followers", Condition: credential.ConditionGreaterEqual, Value: credential.IntValue(10000)},
	})

	tt := []struct {
		name    string
		reqBody []byte

		rcode int
		valid bool
		rerr  string
	}{
		{
			name:    "valid",
			reqBody: mustMarshal(t, sc),
			rcode:   http.StatusOK,
			valid:   true,
		},
		{
			name:    "tampered claims",
			reqBody: mustMarshal(t, tampered),
			rcode:   http.StatusOK,
			valid:   false,
			rerr:    "failed to verify credential",
		},
		{
			name:    "invalid json",
			reqBody: []byte("{"),
			rcode:   http.StatusBadRequest,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodPost, "v1/credentials/verify", tc.reqBody)

			router := newTestRouter(b)
			s := server{}
			router.Post("/v1/credentials/verify", s.verifyCredentialHandler)

			router.ServeHTTP(w, r)

			require.Equal(t, tc.rcode, w.Code)
			if tc.rcode != http.StatusOK {
				return
			}

			var resp themis.VerifyCredentialResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.valid, resp.Valid)
			assert.Equal(t, sc.Issuer, resp.Issuer)
			assert.Contains(t, resp.Error, tc.rerr)
			assert.Equal(t, sc.Credential.Expires().Unix(), resp.Expires.Unix())
		})
	}
}

func TestServer_PublishCredentialHandler(t *testing.T) {
	sc := newTestCredential(t)

	tt := []struct {
		name    string
		address string
		reqBody []byte
		err     error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name:    "success",
			address: strings.ToLower(testSubject),
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			rcode:   http.StatusCreated,
		},
		{
			name:    "invalid address",
			address: "alice",
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid address"}`,
		},
		{
			name:    "another subject",
			address: "0x0000000000000000000000000000000000000001",
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"credential is issued to another subject"}`,
		},
		{
			name:    "conditions without encryption",
			address: testSubject,
			reqBody: []byte(fmt.Sprintf(`{"credential":%s,"conditions":[{"chain":"amoy"}]}`, mustMarshal(t, sc))),
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid request: conditions are given without encryption"}`,
		},
		{
			name:    "rejected",
			address: testSubject,
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			err:     fmt.Errorf("%w: credential is expired", service.ErrInvalidRequest),
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid request: credential is expired"}`,
		},
		{
			name:    "conflict",
			address: testSubject,
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			err:     fmt.Errorf("failed to update pointer: %w", storage.ErrConflict),
			rcode:   http.StatusConflict,
			rdata:   `{"error":"failed to update pointer: conflict","hint":"Profile was changed concurrently, publish again"}`,
		},
		{
			name:    "internal error",
			address: testSubject,
			reqBody: mustMarshal(t, themis.PublishCredentialRequest{Credential: sc}),
			err:     errors.New("test error"),
			rcode:   http.StatusInternalServerError,
			rdata:   `{"error":"internal error"}`,
			rlog:    "test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodPost, fmt.Sprintf("v1/profiles/%s/credentials", tc.address), tc.reqBody)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req service.PublishRequest) (service.PublishResult, error) {
					assert.Equal(t, sc.ID, req.Credential.ID)
					assert.False(t, req.Encrypt)

					return service.PublishResult{
						Credential: req.Credential,
						Pointer:    storage.Pointer{Subject: testSubject, CID: "bafyprofile", Version: 3},
					}, tc.err
				})
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Post("/v1/profiles/{address}/credentials", s.publishCredentialHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			require.Equal(t, tc.rcode, w.Code)
			if tc.rdata != "" {
				assert.Equal(t, tc.rdata, w.Body.String())
				return
			}

			var resp themis.PublishCredentialResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, sc.ID, resp.Credential.ID)
			assert.Equal(t, "bafyprofile", resp.CID)
			assert.Equal(t, uint64(3), resp.Version)
		})
	}
}

func TestServer_GetProfileHandler(t *testing.T) {
	tt := []struct {
		name    string
		address string
		doc     profile.Document
		err     error

		rcode int
		rdata string
		rlog  string
	}{
		{
			name:    "success",
			address: strings.ToLower(testSubject),
			doc:     profile.Document{Subject: testSubject},
			rcode:   http.StatusOK,
			rdata:   `{"profile":{"credentials":[],"subject":"0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"},"cid":"bafyprofile","version":2,"updated":"2023-11-14T22:13:20Z"}`,
		},
		{
			name:    "invalid address",
			address: "0x123",
			err:     errSkip,
			rcode:   http.StatusBadRequest,
			rdata:   `{"error":"invalid address"}`,
		},
		{
			name:    "not found",
			address: testSubject,
			err:     service.ErrNotFound,
			rcode:   http.StatusNotFound,
			rdata:   `{"error":"profile '0x2c7536E3605D9C16a7a3D7b1898e529396a65c23' not found"}`,
		},
		{
			name:    "internal error",
			address: testSubject,
			err:     errors.New("test error"),
			rcode:   http.StatusInternalServerError,
			rdata:   `{"error":"internal error"}`,
			rlog:    "test error",
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, fmt.Sprintf("v1/profiles/%s", tc.address), nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetProfile(gomock.Any(), testSubject).Return(
					tc.doc,
					storage.Pointer{Subject: testSubject, CID: "bafyprofile", Version: 2, Updated: timeFixture},
					tc.err,
				)
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Get("/v1/profiles/{address}", s.getProfileHandler)

			router.ServeHTTP(w, r)

			assert.True(t, strings.Contains(b.String(), tc.rlog))
			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_GetHistoryHandler(t *testing.T) {
	tt := []struct {
		name  string
		query string
		limit uint16
		list  []storage.Pointer
		err   error

		rcode int
		rdata string
	}{
		{
			name:  "success",
			limit: defaultHistoryLimit,
			list:  []storage.Pointer{{Subject: testSubject, CID: "bafy2", Version: 2, Updated: timeFixture}},
			rcode: http.StatusOK,
			rdata: `{"items":[{"cid":"bafy2","version":2,"updated":"2023-11-14T22:13:20Z"}]}`,
		},
		{
			name:  "empty",
			query: "?limit=100",
			limit: 100,
			rcode: http.StatusOK,
			rdata: `{"items":[]}`,
		},
		{
			name:  "zero limit",
			query: "?limit=0",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid limit"}`,
		},
		{
			name:  "limit too big",
			query: "?limit=101",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid limit"}`,
		},
		{
			name:  "malformed limit",
			query: "?limit=ten",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid limit"}`,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, fmt.Sprintf("v1/profiles/%s/history%s", testSubject, tc.query), nil)

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetHistory(gomock.Any(), testSubject, tc.limit).Return(tc.list, tc.err)
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Get("/v1/profiles/{address}/history", s.getHistoryHandler)

			router.ServeHTTP(w, r)

			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_GetStatsHandler(t *testing.T) {
	tt := []struct {
		name  string
		query string
		token string
		flags github.Flags
		err   error

		rcode int
		rdata string
	}{
		{
			name:  "success",
			query: "?multi_page=true&include_all_commits=1",
			token: "gho_token",
			flags: github.Flags{MultiPage: true, IncludeAllCommits: true},
			rcode: http.StatusOK,
		},
		{
			name:  "without token",
			err:   errSkip,
			rcode: http.StatusUnauthorized,
			rdata: `{"error":"authorization token is required"}`,
		},
		{
			name:  "malformed flag",
			query: "?multi_page=sure",
			token: "gho_token",
			err:   errSkip,
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid multi_page"}`,
		},
		{
			name:  "upstream error",
			token: "gho_token",
			err: &github.Error{
				Kind:    github.ErrUpstreamProtocol,
				Message: "Something went wrong while trying to retrieve the stats data using the GraphQL API.",
				Hint:    "Please try again later",
			},
			rcode: http.StatusBadGateway,
			rdata: `{"error":"graphql error: Something went wrong while trying to retrieve the stats data using the GraphQL API.","hint":"Please try again later"}`,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, "v1/github/stats"+tc.query, nil)
			if tc.token != "" {
				r.Header.Set("Authorization", "token "+tc.token)
			}

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.err != errSkip {
				srv.EXPECT().GetStats(gomock.Any(), tc.token, tc.flags).Return(github.AccountSnapshot{Login: "octocat", TotalStars: 7}, tc.err)
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Get("/v1/github/stats", s.getStatsHandler)

			router.ServeHTTP(w, r)

			require.Equal(t, tc.rcode, w.Code)
			if tc.rdata != "" {
				assert.Equal(t, tc.rdata, w.Body.String())
				return
			}

			var snapshot github.AccountSnapshot
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
			assert.Equal(t, github.AccountSnapshot{Login: "octocat", TotalStars: 7}, snapshot)
		})
	}
}

func TestServer_GetLanguagesHandler(t *testing.T) {
	tt := []struct {
		name    string
		query   string
		exclude []string
		sw, cw  float64

		rcode int
		rdata string
	}{
		{
			name:  "defaults",
			sw:    languages.DefaultSizeWeight,
			cw:    languages.DefaultCountWeight,
			rcode: http.StatusOK,
			rdata: `{"Go":{"name":"Go","color":"#00ADD8","size":100,"count":2,"score":1}}`,
		},
		{
			name:    "params",
			query:   "?exclude_repo=dotfiles,%20blog,,&size_weight=0.5&count_weight=2",
			exclude: []string{"dotfiles", "blog"},
			sw:      0.5,
			cw:      2,
			rcode:   http.StatusOK,
			rdata:   `{"Go":{"name":"Go","color":"#00ADD8","size":100,"count":2,"score":1}}`,
		},
		{
			name:  "max weight",
			query: "?size_weight=10",
			sw:    10,
			cw:    languages.DefaultCountWeight,
			rcode: http.StatusOK,
			rdata: `{"Go":{"name":"Go","color":"#00ADD8","size":100,"count":2,"score":1}}`,
		},
		{
			name:  "negative weight",
			query: "?count_weight=-1",
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid count_weight"}`,
		},
		{
			name:  "nan weight",
			query: "?size_weight=NaN",
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid size_weight"}`,
		},
		{
			name:  "infinite weight",
			query: "?size_weight=Inf",
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid size_weight"}`,
		},
		{
			name:  "too big weight",
			query: "?count_weight=1e300",
			rcode: http.StatusBadRequest,
			rdata: `{"error":"invalid count_weight"}`,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, w, r := apitest.NewAPITestParameters(http.MethodGet, "v1/github/languages"+tc.query, nil)
			r.Header.Set("Authorization", "Bearer gho_token")

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := mock.NewMockService(ctrl)

			if tc.rcode == http.StatusOK {
				srv.EXPECT().GetLanguages(gomock.Any(), "gho_token", tc.exclude, tc.sw, tc.cw).Return(languages.Ranking{
					{Language: languages.Language{Name: "Go", Color: "#00ADD8", Size: 100, Count: 2}, Score: 1},
				}, nil)
			}

			router := newTestRouter(b)
			s := server{s: srv}
			router.Get("/v1/github/languages", s.getLanguagesHandler)

			router.ServeHTTP(w, r)

			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
		})
	}
}

func TestServer_OAuthRedirectHandler(t *testing.T) {
	b, w, r := apitest.NewAPITestParameters(http.MethodGet, "v1/oauth/github?state=xyz", nil)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ex := oauthmock.NewMockExchanger(ctrl)
	ex.EXPECT().AuthCodeURL("xyz").Return("https://github.com/login/oauth/authorize?state=xyz")

	router := newTestRouter(b)
	s := server{ex: ex}
	router.Get("/v1/oauth/github", s.oauthRedirectHandler)

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://github.com/login/oauth/authorize?state=xyz", w.Header().Get("Location"))
}
