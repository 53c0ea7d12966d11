package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/crypto/sio"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/profile"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/signer"
	"github.com/Decentr-net/themis/internal/throttler"
	"github.com/Decentr-net/themis/pkg/api"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Subject string   `long:"subject" env:"SUBJECT" required:"true" description:"address of credential subject"`
	Token   string   `long:"github.token" env:"GITHUB_TOKEN" required:"true" description:"GitHub access token"`
	Exclude []string `long:"exclude-repo" description:"repository skipped by languages ranking, can be repeated"`

	IncludeAllCommits         bool `long:"github.include-all-commits" description:"count commits of all time"`
	IncludeMergedPullRequests bool `long:"github.include-merged-pull-requests" description:"count merged pull requests"`
	IncludeDiscussions        bool `long:"github.include-discussions" description:"count started discussions"`
	IncludeDiscussionsAnswers bool `long:"github.include-discussions-answers" description:"count answered discussions"`
	MultiPage                 bool `long:"github.multi-page" description:"fetch all pages of repositories"`

	GitHubURL string `long:"github.url" env:"GITHUB_URL" default:"https://api.github.com" description:"GitHub API base url"`

	ThemisURL string `long:"themis.url" env:"THEMIS_URL" description:"Themis url, credential is issued remotely when issuer key is empty"`
	IssuerKey string `long:"issuer.key" env:"ISSUER_KEY" description:"issuer secp256k1 private key in hex, credential is issued locally when set"`

	Encrypt            bool   `long:"encrypt" description:"encrypt claims"`
	EncryptKey         string `long:"encrypt-key" env:"ENCRYPT_KEY" description:"32 bytes key in hex, claims are encrypted locally when set"`
	ConditionsContract string `long:"conditions.contract" env:"CONDITIONS_CONTRACT" description:"token contract of decryption conditions"`
	ConditionsChain    string `long:"conditions.chain" env:"CONDITIONS_CHAIN" default:"amoy" description:"chain of decryption conditions" choice:"amoy" choice:"polygon"`

	Publish bool `long:"publish" description:"publish credential into subject's profile, requires themis url"`

	Attempts uint          `long:"retry.attempts" env:"RETRY_ATTEMPTS" default:"3" description:"attempts of each remote call"`
	Delay    time.Duration `long:"retry.delay" env:"RETRY_DELAY" default:"2s" description:"initial delay between attempts"`

	LogLevel string `long:"log.level" env:"LOG_LEVEL" default:"warning" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "issue"
	parser.LongDescription = "Issues credential attesting GitHub activity and prints it to stdout"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		s := <-sigs
		logrus.Infof("terminating by %s signal", s)
		cancel()
	}()

	sc, err := run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to issue credential")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sc); err != nil {
		logrus.WithError(err).Fatal("failed to write credential")
	}
}

func run(ctx context.Context) (credential.SignedCredential, error) {
	if !signer.IsAddressValid(opts.Subject) {
		return credential.SignedCredential{}, fmt.Errorf("%w: subject is not a valid address", api.ErrInvalidRequest)
	}
	if opts.Publish && opts.ThemisURL == "" {
		return credential.SignedCredential{}, errors.New("themis url is required to publish") // nolint:goerr113
	}

	conditions, err := getConditions()
	if err != nil {
		return credential.SignedCredential{}, err
	}

	var sc credential.SignedCredential
	if opts.IssuerKey != "" {
		sc, err = issueLocally(ctx, conditions)
	} else {
		sc, err = issueRemotely(ctx)
	}
	if err != nil {
		return credential.SignedCredential{}, err
	}

	if !opts.Publish {
		return sc, nil
	}

	return publish(ctx, sc, conditions)
}

func issueLocally(ctx context.Context, conditions policy.Conditions) (credential.SignedCredential, error) {
	issuer, err := signer.NewECDSA(opts.IssuerKey)
	if err != nil {
		return credential.SignedCredential{}, fmt.Errorf("failed to create issuer: %w", err)
	}

	s := service.New(service.Dependencies{
		Aggregator: github.NewAggregator(github.New(opts.GitHubURL)),
		Assembler:  credential.NewAssembler(issuer),
		Throttler:  throttler.New(time.Minute),
		Issuer:     issuer.Address(),
		MultiPage:  opts.MultiPage,
	})

	var res service.IssueResult
	if err := withRetry(ctx, func() error {
		res, err = s.Issue(ctx, service.IssueRequest{
			Subject: opts.Subject,
			Token:   opts.Token,
			Flags:   getFlags(),
			Exclude: opts.Exclude,
		})
		return err
	}); err != nil {
		return credential.SignedCredential{}, err
	}

	logrus.WithField("login", res.Snapshot.Login).Info("credential is issued")

	if !opts.Encrypt || opts.EncryptKey == "" {
		return res.Credential, nil
	}

	return encryptLocally(ctx, issuer, res.Credential, conditions)
}

func encryptLocally(ctx context.Context, issuer signer.Signer, sc credential.SignedCredential, conditions policy.Conditions) (credential.SignedCredential, error) {
	key, err := hex.DecodeString(opts.EncryptKey)
	if err != nil || len(key) != 32 {
		return credential.SignedCredential{}, errors.New("encrypt key must be 32 bytes hex") // nolint:goerr113
	}
	if len(conditions) == 0 {
		return credential.SignedCredential{}, fmt.Errorf("%w: conditions contract is required for encryption", api.ErrInvalidRequest)
	}

	var k [32]byte
	copy(k[:], key)

	ts := sio.New(k)
	if err := ts.Connect(ctx); err != nil {
		return credential.SignedCredential{}, fmt.Errorf("failed to connect to threshold service: %w", err)
	}
	defer ts.Close() // nolint:errcheck

	b, err := crypto.NewEncryptor(ts, issuer).EncryptClaims(ctx, sc.Credential.Claims, conditions)
	if err != nil {
		return credential.SignedCredential{}, err
	}

	return profile.Sealed(sc, b), nil
}

func issueRemotely(ctx context.Context) (credential.SignedCredential, error) {
	if opts.ThemisURL == "" {
		return credential.SignedCredential{}, errors.New("either issuer key or themis url is required") // nolint:goerr113
	}

	c := api.NewClient(opts.ThemisURL)

	var resp api.IssueCredentialResponse
	err := withRetry(ctx, func() (err error) {
		resp, err = c.IssueCredential(ctx, api.IssueCredentialRequest{
			Subject: opts.Subject,
			Token:   opts.Token,
			Options: api.IssueOptions{
				IncludeAllCommits:         opts.IncludeAllCommits,
				IncludeMergedPullRequests: opts.IncludeMergedPullRequests,
				IncludeDiscussions:        opts.IncludeDiscussions,
				IncludeDiscussionsAnswers: opts.IncludeDiscussionsAnswers,
				MultiPage:                 opts.MultiPage,
			},
			Exclude: opts.Exclude,
		})
		return err
	})
	if err != nil {
		return credential.SignedCredential{}, err
	}

	logrus.WithField("login", resp.Stats.Login).Info("credential is issued")

	return resp.Credential, nil
}

func publish(ctx context.Context, sc credential.SignedCredential, conditions policy.Conditions) (credential.SignedCredential, error) {
	req := api.PublishCredentialRequest{Credential: sc}
	// claims sealed locally are published as is
	if opts.Encrypt && sc.Credential.ClaimsEncrypted == nil {
		req.Encrypt = true
		req.Conditions = conditions
	}

	c := api.NewClient(opts.ThemisURL)

	var resp api.PublishCredentialResponse
	if err := withRetry(ctx, func() (err error) {
		resp, err = c.PublishCredential(ctx, req)
		return err
	}); err != nil {
		return credential.SignedCredential{}, err
	}

	logrus.WithFields(logrus.Fields{
		"cid":     resp.CID,
		"version": resp.Version,
	}).Info("credential is published")

	return resp.Credential, nil
}

func withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			logrus.WithError(err).Warnf("attempt %d failed", n+1)
		}),
	)
}

func isTransient(err error) bool {
	for _, v := range []error{
		api.ErrConflict,
		api.ErrUpstream,
		github.ErrUpstreamProtocol,
		github.ErrUpstreamREST,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func getFlags() github.Flags {
	return github.Flags{
		IncludeAllCommits:         opts.IncludeAllCommits,
		IncludeMergedPullRequests: opts.IncludeMergedPullRequests,
		IncludeDiscussions:        opts.IncludeDiscussions,
		IncludeDiscussionsAnswers: opts.IncludeDiscussionsAnswers,
		MultiPage:                 opts.MultiPage,
	}
}

func getConditions() (policy.Conditions, error) {
	if opts.ConditionsContract == "" {
		return nil, nil
	}

	c := policy.HoldsToken(opts.ConditionsContract, opts.ConditionsChain)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
