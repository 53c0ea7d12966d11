// Package service contains business logic of credential issuance and publication.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/claims"
	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/languages"
	"github.com/Decentr-net/themis/internal/oauth"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/producer"
	"github.com/Decentr-net/themis/internal/profile"
	"github.com/Decentr-net/themis/internal/signer"
	"github.com/Decentr-net/themis/internal/storage"
	"github.com/Decentr-net/themis/internal/throttler"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var log = logrus.WithField("package", "service")

// ErrInvalidRequest means that request can't be processed as is.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound means that requested object is not found.
var ErrNotFound = errors.New("not found")

// ErrThrottled means that issuance for the subject was started recently.
var ErrThrottled = errors.New("too many requests")

// IssueRequest ...
type IssueRequest struct {
	// Subject is the address credential is issued to.
	Subject string
	// Token is GitHub access token. Code is exchanged for a token when Token is empty.
	Token string
	Code  string

	Flags github.Flags
	// Exclude lists repositories skipped by ranking.
	Exclude []string
	// SizeWeight and CountWeight override languages defaults when set.
	SizeWeight  *float64
	CountWeight *float64
}

// IssueResult ...
type IssueResult struct {
	Credential credential.SignedCredential
	Snapshot   github.AccountSnapshot
	Languages  languages.Ranking
}

// PublishRequest ...
type PublishRequest struct {
	Credential credential.SignedCredential
	// Encrypt replaces plaintext claims with bundle gated by Conditions (or default conditions when empty).
	Encrypt    bool
	Conditions policy.Conditions
}

// PublishResult ...
type PublishResult struct {
	Credential credential.SignedCredential
	Pointer    storage.Pointer
}

// Service interface provides service's logic's methods.
type Service interface {
	// Issue derives claims from the GitHub account and returns credential signed by issuer.
	Issue(ctx context.Context, req IssueRequest) (IssueResult, error)
	// Publish merges credential into subject's profile and moves profile pointer.
	Publish(ctx context.Context, req PublishRequest) (PublishResult, error)
	// GetProfile returns current profile document of subject.
	GetProfile(ctx context.Context, subject string) (profile.Document, storage.Pointer, error)
	// GetHistory returns previous profile pointers of subject.
	GetHistory(ctx context.Context, subject string, limit uint16) ([]storage.Pointer, error)
	// GetStats returns activity counters of the account owning token.
	GetStats(ctx context.Context, token string, flags github.Flags) (github.AccountSnapshot, error)
	// GetLanguages returns language ranking of the account owning token.
	GetLanguages(ctx context.Context, token string, exclude []string, sizeWeight, countWeight float64) (languages.Ranking, error)
}

// Dependencies ...
type Dependencies struct {
	Aggregator github.Aggregator
	Exchanger  oauth.Exchanger
	Assembler  credential.Assembler
	// Encryptor is optional; publishing with encryption fails without it.
	Encryptor crypto.Encryptor
	Content   storage.ContentStore
	Pointers  storage.PointerRegistry
	// Producer is optional.
	Producer  producer.Producer
	Throttler throttler.Throttler
	// Issuer is address of the issuer key. Only its credentials are published.
	Issuer string
	// DefaultConditions are used to encrypt when request has no conditions.
	DefaultConditions policy.Conditions
	// MultiPage allows requests to fetch every page of repositories.
	MultiPage bool
}

// service is Service interface implementation.
type service struct {
	d Dependencies

	now func() time.Time
}

// New returns new instance of service.
func New(d Dependencies) Service {
	return &service{
		d:   d,
		now: time.Now,
	}
}

// Issue ...
func (s *service) Issue(ctx context.Context, req IssueRequest) (IssueResult, error) {
	if !signer.IsAddressValid(req.Subject) {
		return IssueResult{}, fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}
	subject := signer.NormalizeAddress(req.Subject)

	if s.d.Throttler != nil {
		if !s.d.Throttler.Acquire(subject) {
			return IssueResult{}, fmt.Errorf("%w: retry in %s", ErrThrottled, s.d.Throttler.Remaining(subject).Round(time.Second))
		}
	}

	res, err := s.issue(ctx, subject, req)
	if err != nil && s.d.Throttler != nil {
		s.d.Throttler.Release(subject)
	}

	return res, err
}

func (s *service) issue(ctx context.Context, subject string, req IssueRequest) (IssueResult, error) {
	token, err := s.token(ctx, req.Token, req.Code)
	if err != nil {
		return IssueResult{}, err
	}

	viewer, err := s.d.Aggregator.Viewer(ctx, token)
	if err != nil {
		return IssueResult{}, fmt.Errorf("failed to get viewer: %w", err)
	}

	snapshot, err := s.d.Aggregator.Aggregate(ctx, viewer.Login, s.flags(req.Flags), token)
	if err != nil {
		return IssueResult{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = viewer.CreatedAt
	}
	if snapshot.Followers == 0 {
		snapshot.Followers = viewer.Followers
	}

	sizeWeight, countWeight := float64(languages.DefaultSizeWeight), float64(languages.DefaultCountWeight)
	if req.SizeWeight != nil {
		sizeWeight = *req.SizeWeight
	}
	if req.CountWeight != nil {
		countWeight = *req.CountWeight
	}

	repos, err := s.d.Aggregator.Languages(ctx, viewer.Login, token)
	if err != nil {
		return IssueResult{}, fmt.Errorf("failed to get languages: %w", err)
	}
	ranking := languages.Rank(repos, req.Exclude, sizeWeight, countWeight)

	sc, err := s.d.Assembler.Assemble(ctx, subject, claims.Derive(snapshot, ranking, snapshot.CreatedAt))
	if err != nil {
		return IssueResult{}, fmt.Errorf("failed to assemble credential: %w", err)
	}

	log.WithFields(logrus.Fields{
		"subject": subject,
		"login":   viewer.Login,
		"id":      sc.Credential.ID,
		"claims":  len(sc.Credential.Claims),
	}).Info("credential issued")

	return IssueResult{
		Credential: sc,
		Snapshot:   snapshot,
		Languages:  ranking,
	}, nil
}

func (s *service) flags(f github.Flags) github.Flags {
	f.MultiPage = f.MultiPage && s.d.MultiPage
	return f
}

func (s *service) token(ctx context.Context, token, code string) (string, error) {
	if token != "" {
		return token, nil
	}
	if code == "" {
		return "", fmt.Errorf("%w: token or code is required", ErrInvalidRequest)
	}
	if s.d.Exchanger == nil {
		return "", fmt.Errorf("%w: oauth is not configured", ErrInvalidRequest)
	}

	token, err := s.d.Exchanger.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// Publish ...
func (s *service) Publish(ctx context.Context, req PublishRequest) (PublishResult, error) {
	sc := req.Credential

	if err := s.check(sc); err != nil {
		return PublishResult{}, err
	}

	var err error
	if req.Encrypt {
		if sc, err = s.seal(ctx, sc, req.Conditions); err != nil {
			return PublishResult{}, err
		}
	} else {
		sc = profile.Revision(sc)
	}

	subject := signer.NormalizeAddress(sc.Credential.UserAddress)

	var (
		existing *profile.Document
		version  uint64
	)
	switch p, err := s.d.Pointers.Get(ctx, subject); {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return PublishResult{}, fmt.Errorf("failed to get profile pointer: %w", err)
	default:
		doc, err := s.document(ctx, p.CID)
		if err != nil {
			return PublishResult{}, err
		}
		existing, version = &doc, p.Version
	}

	data, err := profile.Merge(existing, sc).Serialize()
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to serialize profile: %w", err)
	}

	cid, err := s.d.Content.Put(ctx, data)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to put profile: %w", err)
	}

	p, err := s.d.Pointers.Update(ctx, subject, cid, version)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to update profile pointer: %w", err)
	}

	l := log.WithFields(logrus.Fields{
		"subject": subject,
		"cid":     cid,
		"version": p.Version,
	})
	l.Info("credential published")

	if s.d.Producer != nil {
		if err := s.d.Producer.Produce(ctx, &producer.PublishedMessage{
			Subject:      subject,
			CID:          cid,
			Version:      p.Version,
			CredentialID: sc.ID,
			Author:       sc.Credential.Author,
			Platform:     sc.Credential.Platform,
			Sealed:       sc.Credential.ClaimsEncrypted != nil,
			PublishedAt:  p.Updated,
		}); err != nil {
			l.WithError(err).Error("failed to produce published message")
		}
	}

	return PublishResult{
		Credential: sc,
		Pointer:    p,
	}, nil
}

func (s *service) check(sc credential.SignedCredential) error {
	if err := sc.Credential.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}
	if !signer.IsAddressValid(sc.Credential.UserAddress) {
		return fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}
	if signer.NormalizeAddress(sc.Issuer) != signer.NormalizeAddress(s.d.Issuer) {
		return fmt.Errorf("%w: credential is issued by another issuer", ErrInvalidRequest)
	}
	if err := credential.Verify(sc); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}
	if !s.now().Before(sc.Credential.Expires()) {
		return fmt.Errorf("%w: credential is expired", ErrInvalidRequest)
	}
	return nil
}

func (s *service) seal(ctx context.Context, sc credential.SignedCredential, conditions policy.Conditions) (credential.SignedCredential, error) {
	if sc.Credential.ClaimsEncrypted != nil {
		return sc, fmt.Errorf("%w: credential is already encrypted", ErrInvalidRequest)
	}
	if s.d.Encryptor == nil {
		return sc, fmt.Errorf("%w: encryption is not configured", ErrInvalidRequest)
	}

	if len(conditions) == 0 {
		conditions = s.d.DefaultConditions
	}
	if err := conditions.Validate(); err != nil {
		return sc, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	b, err := s.d.Encryptor.EncryptClaims(ctx, sc.Credential.Claims, conditions)
	if err != nil {
		return sc, fmt.Errorf("failed to encrypt claims: %w", err)
	}

	return profile.Sealed(sc, b), nil
}

func (s *service) document(ctx context.Context, cid string) (profile.Document, error) {
	data, err := s.d.Content.Get(ctx, cid)
	if err != nil {
		return profile.Document{}, fmt.Errorf("failed to get profile %s: %w", cid, err)
	}

	doc, err := profile.Parse(data)
	if err != nil {
		return profile.Document{}, fmt.Errorf("failed to parse profile %s: %w", cid, err)
	}

	return doc, nil
}

// GetProfile ...
func (s *service) GetProfile(ctx context.Context, subject string) (profile.Document, storage.Pointer, error) {
	if !signer.IsAddressValid(subject) {
		return profile.Document{}, storage.Pointer{}, fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}

	p, err := s.d.Pointers.Get(ctx, signer.NormalizeAddress(subject))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return profile.Document{}, storage.Pointer{}, ErrNotFound
		}
		return profile.Document{}, storage.Pointer{}, fmt.Errorf("failed to get profile pointer: %w", err)
	}

	doc, err := s.document(ctx, p.CID)
	if err != nil {
		return profile.Document{}, storage.Pointer{}, err
	}

	return doc, p, nil
}

// GetHistory ...
func (s *service) GetHistory(ctx context.Context, subject string, limit uint16) ([]storage.Pointer, error) {
	if !signer.IsAddressValid(subject) {
		return nil, fmt.Errorf("%w: subject is not a valid address", ErrInvalidRequest)
	}

	h, err := s.d.Pointers.History(ctx, signer.NormalizeAddress(subject), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return h, nil
}

// GetStats ...
func (s *service) GetStats(ctx context.Context, token string, flags github.Flags) (github.AccountSnapshot, error) {
	viewer, err := s.d.Aggregator.Viewer(ctx, token)
	if err != nil {
		return github.AccountSnapshot{}, fmt.Errorf("failed to get viewer: %w", err)
	}

	snapshot, err := s.d.Aggregator.Aggregate(ctx, viewer.Login, s.flags(flags), token)
	if err != nil {
		return github.AccountSnapshot{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = viewer.CreatedAt
	}

	return snapshot, nil
}

// GetLanguages ...
func (s *service) GetLanguages(ctx context.Context, token string, exclude []string, sizeWeight, countWeight float64) (languages.Ranking, error) {
	viewer, err := s.d.Aggregator.Viewer(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	repos, err := s.d.Aggregator.Languages(ctx, viewer.Login, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get languages: %w", err)
	}

	return languages.Rank(repos, exclude, sizeWeight, countWeight), nil
}
