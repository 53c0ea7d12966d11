package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/crypto"
	"github.com/Decentr-net/themis/internal/crypto/sio"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/health"
	"github.com/Decentr-net/themis/internal/oauth"
	"github.com/Decentr-net/themis/internal/policy"
	"github.com/Decentr-net/themis/internal/server"
	"github.com/Decentr-net/themis/internal/service"
	"github.com/Decentr-net/themis/internal/signer"
	"github.com/Decentr-net/themis/internal/throttler"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"localhost" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections, defaults to a random value"`
	MaxBodySize    int64         `long:"http.max-body-size" env:"HTTP_MAX_BODY_SIZE" default:"1000000" description:"max request's body size"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`
	AllowedOrigins []string      `long:"http.allowed-origin" env:"HTTP_ALLOWED_ORIGINS" env-delim:"," description:"CORS allowed origins, any origin is allowed when empty"`

	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`

	GitHubURL          string `long:"github.url" env:"GITHUB_URL" default:"https://api.github.com" description:"GitHub API base url"`
	GitHubClientID     string `long:"github.client-id" env:"GITHUB_CLIENT_ID" description:"GitHub OAuth app client id, enables code exchange"`
	GitHubClientSecret string `long:"github.client-secret" env:"GITHUB_CLIENT_SECRET" description:"GitHub OAuth app client secret"`
	GitHubRedirectURL  string `long:"github.redirect-url" env:"GITHUB_REDIRECT_URL" description:"GitHub OAuth app redirect url"`
	GitHubMultiPage    bool   `long:"github.multi-page" env:"GITHUB_MULTI_PAGE" description:"allow requests to fetch all pages of repositories"`

	IssuerKey      string        `long:"issuer.key" env:"ISSUER_KEY" required:"true" description:"issuer secp256k1 private key in hex"`
	ThrottlePeriod time.Duration `long:"issuer.throttle-period" env:"ISSUER_THROTTLE_PERIOD" default:"1m" description:"minimal period between issuances for one subject"`

	EncryptKey         string `long:"encrypt-key" env:"ENCRYPT_KEY" description:"32 bytes key in hex used for claims encryption, disables encryption when empty"`
	ConditionsContract string `long:"conditions.contract" env:"CONDITIONS_CONTRACT" description:"token contract of default decryption conditions"`
	ConditionsChain    string `long:"conditions.chain" env:"CONDITIONS_CHAIN" default:"amoy" description:"chain of default decryption conditions" choice:"amoy" choice:"polygon"`

	StorageOpts
	DBOpts
	SQSOpts

	LogLevel string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Themis"
	parser.LongDescription = "Themis issues credentials attesting GitHub activity and publishes them into profiles"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	issuer, err := signer.NewECDSA(opts.IssuerKey)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create issuer")
	}
	logrus.WithField("address", issuer.Address()).Info("issuer is loaded")

	content := mustGetContentStore()
	pointers := mustGetPointerRegistry()

	var ex oauth.Exchanger
	if opts.GitHubClientID != "" {
		ex = oauth.New(opts.GitHubClientID, opts.GitHubClientSecret, opts.GitHubRedirectURL)
	} else {
		logrus.Warn("github oauth app is not configured, code exchange is disabled")
	}

	var encryptor crypto.Encryptor
	if opts.EncryptKey != "" {
		ts := sio.New(mustExtractEncryptKey())
		if err := ts.Connect(context.Background()); err != nil {
			logrus.WithError(err).Fatal("failed to connect to threshold service")
		}
		defer ts.Close() // nolint:errcheck

		encryptor = crypto.NewEncryptor(ts, issuer)
	} else {
		logrus.Warn("empty encrypt key, encryption is disabled")
	}

	var conditions policy.Conditions
	if opts.ConditionsContract != "" {
		conditions = policy.HoldsToken(opts.ConditionsContract, opts.ConditionsChain)
		if err := conditions.Validate(); err != nil {
			logrus.WithError(err).Fatal("invalid default conditions")
		}
	}

	s := service.New(service.Dependencies{
		Aggregator:        github.NewAggregator(github.New(opts.GitHubURL)),
		Exchanger:         ex,
		Assembler:         credential.NewAssembler(issuer),
		Encryptor:         encryptor,
		Content:           content,
		Pointers:          pointers,
		Producer:          mustGetProducer(),
		Throttler:         throttler.New(opts.ThrottlePeriod),
		Issuer:            issuer.Address(),
		DefaultConditions: conditions,
		MultiPage:         opts.GitHubMultiPage,
	})

	r := chi.NewMux()

	server.SetupRouter(s, r, server.Options{
		MaxBodySize:    opts.MaxBodySize,
		RequestTimeout: opts.RequestTimeout,
		AllowedOrigins: opts.AllowedOrigins,
		Exchanger:      ex,
	})
	health.SetupRouter(r,
		health.Named("content", content),
		health.Named("postgres", pointers),
	)

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	gr, _ := errgroup.WithContext(context.Background())
	gr.Go(srv.ListenAndServe)

	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		if err := srv.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to gracefully shutdown server")
		}

		return errTerminated
	})

	logrus.WithField("addr", srv.Addr).Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustExtractEncryptKey() [32]byte {
	k, err := hex.DecodeString(opts.EncryptKey)
	if err != nil {
		logrus.WithError(err).Fatal("failed to decode encrypt key")
	}

	if len(k) != 32 {
		logrus.Fatal("encrypt key must be 32 bytes slice")
	}

	r := [32]byte{}
	copy(r[:], k)

	return r
}
