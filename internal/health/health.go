// Package health provides handler for health checks.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/go-api"
)

// Timeout limits the whole health check.
const Timeout = 5 * time.Second

// nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "unknown"
)

// GetVersion returns service's version and commit.
func GetVersion() string {
	return fmt.Sprintf("%s-%s", version, commit)
}

// VersionResponse ...
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Response is a body of /health.
type Response struct {
	VersionResponse
	Checks map[string]string `json:"checks,omitempty"`
}

// Pinger pings external service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc is wrapper for raw func.
type PingFunc func(ctx context.Context) error

// Ping ...
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Check is a named dependency of the service.
type Check struct {
	Name string
	Pinger
}

// Named returns Check with name.
func Named(name string, p Pinger) Check {
	return Check{Name: name, Pinger: p}
}

// Run pings all checks concurrently and returns status of every check. The returned error is the first failure.
func Run(ctx context.Context, checks ...Check) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		status = make(map[string]string, len(checks))
	)

	// a failed check does not cancel the others
	var gr errgroup.Group
	for i := range checks {
		c := checks[i]
		gr.Go(func() error {
			err := c.Ping(ctx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logrus.WithError(err).WithField("check", c.Name).Error("health check failed")
				status[c.Name] = err.Error()
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			status[c.Name] = "ok"
			return nil
		})
	}

	return status, gr.Wait()
}

// SetupRouter setups all checks to /health.
func SetupRouter(r chi.Router, checks ...Check) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, err := Run(r.Context(), checks...)

		resp := Response{
			VersionResponse: VersionResponse{Version: version, Commit: commit},
			Checks:          status,
		}

		if err != nil {
			data, _ := json.Marshal(struct {
				api.Error
				Response
			}{
				Error:    api.Error{Error: err.Error()},
				Response: resp,
			})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write(data) // nolint

			return
		}

		api.WriteOK(w, http.StatusOK, resp)
	})
}
