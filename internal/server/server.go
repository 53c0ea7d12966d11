// Package server Themis
//
// The Themis issues signed credentials attesting open-source activity on GitHub
// and publishes them into content-addressed profiles.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
//     SecurityDefinitions:
//     github_token:
//          type: apiKey
//          name: Authorization
//          in: header
//          description: |-
//            GitHub access token in form of `Bearer {token}`.<br>
//            It's used by /github endpoints and by /credentials when request has neither token nor code.
//
// swagger:meta
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/Decentr-net/go-api"

	"github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/oauth"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/storage"
	_ "github.com/Decentr-net/themis/pkg/api" // import models to be generated into swagger.json
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const (
	defaultHistoryLimit uint16 = 20
	maxHistoryLimit     uint16 = 100
)

// Options ...
type Options struct {
	MaxBodySize    int64
	RequestTimeout time.Duration
	AllowedOrigins []string
	// Exchanger enables /v1/oauth/github redirect when set.
	Exchanger oauth.Exchanger
}

type server struct {
	s  service.Service
	ex oauth.Exchanger
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, opts Options) {
	r.Use(
		api.FileServerMiddleware("/docs", "static"),
		api.LoggerMiddleware,
		api.RequestIDMiddleware,
		corsMiddleware(opts.AllowedOrigins),
		setHeadersMiddleware,
		middleware.StripSlashes,
		api.RecovererMiddleware,
		api.BodyLimiterMiddleware(opts.MaxBodySize),
		api.TimeoutMiddleware(opts.RequestTimeout),
	)

	srv := server{
		s:  s,
		ex: opts.Exchanger,
	}

	r.Post("/v1/credentials", srv.issueCredentialHandler)
	r.Post("/v1/credentials/verify", srv.verifyCredentialHandler)
	r.Get("/v1/profiles/{address}", srv.getProfileHandler)
	r.Post("/v1/profiles/{address}/credentials", srv.publishCredentialHandler)
	r.Get("/v1/profiles/{address}/history", srv.getHistoryHandler)
	r.Get("/v1/github/stats", srv.getStatsHandler)
	r.Get("/v1/github/languages", srv.getLanguagesHandler)

	if srv.ex != nil {
		r.Get("/v1/oauth/github", srv.oauthRedirectHandler)
	}
}

func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ge *github.Error
	if errors.As(err, &ge) {
		writeHintedError(w, githubErrorStatus(ge), ge.Error(), ge.Hint)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, policy.ErrInvalidPolicy),
		errors.Is(err, oauth.ErrInvalidCode):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, github.ErrBadCredentials):
		api.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, github.ErrUserNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict):
		writeHintedError(w, http.StatusConflict, err.Error(), "Profile was changed concurrently, publish again")
	case errors.Is(err, service.ErrThrottled):
		api.WriteError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, oauth.ErrUpstream),
		errors.Is(err, github.ErrUpstreamProtocol),
		errors.Is(err, github.ErrUpstreamREST),
		errors.Is(err, crypto.ErrEncryption):
		api.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		api.WriteInternalErrorf(ctx, w, "%s", err.Error())
	}
}

func githubErrorStatus(e *github.Error) int {
	switch {
	case errors.Is(e, github.ErrMissingParameter):
		return http.StatusBadRequest
	case errors.Is(e, github.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(e, github.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeHintedError(w http.ResponseWriter, status int, message, hint string) {
	api.WriteOK(w, status, struct {
		Error string `json:"error"`
		Hint  string `json:"hint,omitempty"`
	}{
		Error: message,
		Hint:  hint,
	})
}
