package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/Decentr-net/go-api"
	logging "github.com/Decentr-net/logrus/context"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/languages"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/signer"
	themis "github.com/Decentr-net/themis/pkg/api"
)

// issueCredentialHandler derives claims from GitHub account and signs credential.
func (s *server) issueCredentialHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /credentials Credentials IssueCredential
	//
	// Issues credential
	//
	// Aggregates GitHub activity of the account owning token (or code) and returns credential signed by issuer.
	//
	// ---
	// security:
	// - github_token: []
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/IssueCredentialRequest"
	// responses:
	//   '201':
	//     description: credential was issued
	//     schema:
	//       "$ref": "#/definitions/IssueCredentialResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: GitHub user not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '429':
	//     description: credential for the subject was issued recently
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '502':
	//     description: GitHub failed
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req themis.IssueCredentialRequest
	if !readRequest(w, r, &req) {
		return
	}

	if req.Token == "" && req.Code == "" {
		req.Token = bearerToken(r)
	}

	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.s.Issue(r.Context(), service.IssueRequest{
		Subject:     req.Subject,
		Token:       req.Token,
		Code:        req.Code,
		Flags:       toFlags(req.Options),
		Exclude:     req.Exclude,
		SizeWeight:  req.SizeWeight,
		CountWeight: req.CountWeight,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	api.WriteOK(w, http.StatusCreated, themis.IssueCredentialResponse{
		Credential: res.Credential,
		Stats:      res.Snapshot,
		Languages:  res.Languages,
	})
}

// verifyCredentialHandler checks credential signatures.
func (s *server) verifyCredentialHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /credentials/verify Credentials VerifyCredential
	//
	// Verifies credential
	//
	// Checks signature1 and, for plaintext claims, signature2 against the issuer address.
	//
	// ---
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/SignedCredential"
	// responses:
	//   '200':
	//     description: verification result
	//     schema:
	//       "$ref": "#/definitions/VerifyCredentialResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	var sc credential.SignedCredential
	if !readRequest(w, r, &sc) {
		return
	}

	resp := themis.VerifyCredentialResponse{
		Valid:   true,
		Issuer:  sc.Issuer,
		Expires: sc.Credential.Expires(),
	}
	if err := credential.Verify(sc); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	api.WriteOK(w, http.StatusOK, resp)
}

// publishCredentialHandler puts credential into subject's profile.
func (s *server) publishCredentialHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /profiles/{address}/credentials Profiles PublishCredential
	//
	// Publishes credential
	//
	// Replaces credential of the same author and platform in subject's profile, optionally encrypting claims.
	//
	// ---
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/PublishCredentialRequest"
	// responses:
	//   '201':
	//     description: profile was updated
	//     schema:
	//       "$ref": "#/definitions/PublishCredentialResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '409':
	//     description: profile was changed concurrently
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	address, ok := addressParam(w, r)
	if !ok {
		return
	}

	var req themis.PublishCredentialRequest
	if !readRequest(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if signer.NormalizeAddress(req.Credential.Credential.UserAddress) != address {
		api.WriteError(w, http.StatusBadRequest, "credential is issued to another subject")
		return
	}

	res, err := s.s.Publish(r.Context(), service.PublishRequest{
		Credential: req.Credential,
		Encrypt:    req.Encrypt,
		Conditions: req.Conditions,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	api.WriteOK(w, http.StatusCreated, themis.PublishCredentialResponse{
		Credential: res.Credential,
		CID:        res.Pointer.CID,
		Version:    res.Pointer.Version,
	})
}

// getProfileHandler returns current profile of subject.
func (s *server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profiles/{address} Profiles Profile
	//
	// Returns profile
	//
	// ---
	// responses:
	//   '200':
	//     description: profile
	//     schema:
	//       "$ref": "#/definitions/ProfileResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: profile doesn't exist
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	address, ok := addressParam(w, r)
	if !ok {
		return
	}

	doc, p, err := s.s.GetProfile(r.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			api.WriteErrorf(w, http.StatusNotFound, "profile '%s' not found", address)
			return
		}
		writeServiceError(r.Context(), w, err)
		return
	}

	api.WriteOK(w, http.StatusOK, themis.ProfileResponse{
		Profile: doc,
		CID:     p.CID,
		Version: p.Version,
		Updated: p.Updated,
	})
}

// getHistoryHandler returns previous profile pointers of subject.
func (s *server) getHistoryHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profiles/{address}/history Profiles History
	//
	// Returns profile history
	//
	// ---
	// parameters:
	// - name: limit
	//   in: query
	//   required: false
	//   type: integer
	//   minimum: 1
	//   maximum: 100
	//   default: 20
	// responses:
	//   '200':
	//     description: profile versions, newest first
	//     schema:
	//       "$ref": "#/definitions/HistoryResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	address, ok := addressParam(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.ParseUint(v, 10, 16)
		if err != nil || l == 0 || uint16(l) > maxHistoryLimit {
			api.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = uint16(l)
	}

	h, err := s.s.GetHistory(r.Context(), address, limit)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	resp := themis.HistoryResponse{Items: make([]themis.HistoryItem, len(h))}
	for i, v := range h {
		resp.Items[i] = themis.HistoryItem{CID: v.CID, Version: v.Version, Updated: v.Updated}
	}

	api.WriteOK(w, http.StatusOK, resp)
}

// getStatsHandler returns activity counters of the account owning token.
func (s *server) getStatsHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /github/stats GitHub Stats
	//
	// Returns GitHub activity counters
	//
	// ---
	// security:
	// - github_token: []
	// parameters:
	// - name: include_all_commits
	//   in: query
	//   type: boolean
	// - name: include_merged_pull_requests
	//   in: query
	//   type: boolean
	// - name: include_discussions
	//   in: query
	//   type: boolean
	// - name: include_discussions_answers
	//   in: query
	//   type: boolean
	// - name: multi_page
	//   in: query
	//   type: boolean
	// responses:
	//   '200':
	//     description: counters
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '502':
	//     description: GitHub failed
	//     schema:
	//       "$ref": "#/definitions/Error"

	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	var opts themis.IssueOptions
	for name, v := range map[string]*bool{
		"include_all_commits":          &opts.IncludeAllCommits,
		"include_merged_pull_requests": &opts.IncludeMergedPullRequests,
		"include_discussions":          &opts.IncludeDiscussions,
		"include_discussions_answers":  &opts.IncludeDiscussionsAnswers,
		"multi_page":                   &opts.MultiPage,
	} {
		q := r.URL.Query().Get(name)
		if q == "" {
			continue
		}
		b, err := strconv.ParseBool(q)
		if err != nil {
			api.WriteErrorf(w, http.StatusBadRequest, "invalid %s", name)
			return
		}
		*v = b
	}

	snapshot, err := s.s.GetStats(r.Context(), token, toFlags(opts))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	api.WriteOK(w, http.StatusOK, snapshot)
}

// getLanguagesHandler returns languages ranking of the account owning token.
func (s *server) getLanguagesHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /github/languages GitHub Languages
	//
	// Returns languages ranking
	//
	// ---
	// security:
	// - github_token: []
	// parameters:
	// - name: exclude_repo
	//   description: comma separated repository names
	//   in: query
	//   type: string
	// - name: size_weight
	//   in: query
	//   type: number
	//   minimum: 0
	//   maximum: 10
	//   default: 1
	// - name: count_weight
	//   in: query
	//   type: number
	//   minimum: 0
	//   maximum: 10
	//   default: 0
	// responses:
	//   '200':
	//     description: languages ordered by score
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	var exclude []string
	for _, v := range strings.Split(q.Get("exclude_repo"), ",") {
		if v = strings.TrimSpace(v); v != "" {
			exclude = append(exclude, v)
		}
	}

	weights := []float64{languages.DefaultSizeWeight, languages.DefaultCountWeight}
	for i, name := range []string{"size_weight", "count_weight"} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !themis.IsWeightValid(f) {
			api.WriteErrorf(w, http.StatusBadRequest, "invalid %s", name)
			return
		}
		weights[i] = f
	}

	ranking, err := s.s.GetLanguages(r.Context(), token, exclude, weights[0], weights[1])
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	api.WriteOK(w, http.StatusOK, ranking)
}

// oauthRedirectHandler redirects user to GitHub consent page.
func (s *server) oauthRedirectHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.ex.AuthCodeURL(r.URL.Query().Get("state")), http.StatusFound)
}

func readRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	data, err := ioutil.ReadAll(r.Body)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "failed to read body")
		return false
	}
	r.Body.Close() // nolint

	if err := json.Unmarshal(data, v); err != nil {
		api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("request is invalid: %s", err.Error()))
		return false
	}

	return true
}

func addressParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := chi.URLParam(r, "address")
	if !signer.IsAddressValid(address) {
		api.WriteError(w, http.StatusBadRequest, "invalid address")
		return "", false
	}

	return signer.NormalizeAddress(address), true
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	for _, prefix := range []string{"Bearer ", "bearer ", "token "} {
		if strings.HasPrefix(h, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(h, prefix))
		}
	}
	return ""
}

func requireToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := bearerToken(r)
	if token == "" {
		logging.GetLogger(r.Context()).Debug("request without token")
		api.WriteError(w, http.StatusUnauthorized, "authorization token is required")
		return "", false
	}
	return token, true
}

func toFlags(o themis.IssueOptions) github.Flags {
	return github.Flags{
		IncludeAllCommits:         o.IncludeAllCommits,
		IncludeMergedPullRequests: o.IncludeMergedPullRequests,
		IncludeDiscussions:        o.IncludeDiscussions,
		IncludeDiscussionsAnswers: o.IncludeDiscussionsAnswers,
		MultiPage:                 o.MultiPage,
	}
}
