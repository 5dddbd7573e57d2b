// Package cmdutil provides child-process execution for platform introspection.
// Every OS query webpick performs goes through a Runner, which captures only
// standard output and maps any failure to an empty string so that discovery
// logic never has to care whether an optional tool is installed.
package cmdutil

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single external command invocation.
const DefaultTimeout = 30 * time.Second

// Runner executes external commands and probes tool availability.
// Implementations never return errors: a command that cannot be started,
// exits non-zero, or produces unreadable output yields "".
type Runner interface {
	// Output runs name with args (no shell involved) and returns captured
	// standard output. Callers must trim trailing newlines themselves.
	Output(ctx context.Context, name string, args ...string) string

	// LookPath returns the resolved path of an executable, or "" if the
	// tool is not on PATH.
	LookPath(name string) string
}

// ExecRunner is the production Runner backed by os/exec.
//
// Each distinct command name gets its own circuit breaker and rate limiter.
// The macOS discovery pass invokes mdls once per application bundle, so a
// host without the metadata tools would otherwise pay a fork/exec for every
// bundle on disk; the breaker trips after a few consecutive start failures
// and turns the remaining calls into no-ops.
type ExecRunner struct {
	timeout  time.Duration
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter

	log *slog.Logger
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithTimeout overrides the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *ExecRunner) { r.timeout = d }
}

// NewExecRunner creates a runner with per-tool breakers and limiters.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		timeout:  DefaultTimeout,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		limiters: make(map[string]*rate.Limiter),
		log:      slog.Default().With("component", "cmdutil"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) string {
	limiter := r.limiterFor(name)
	if err := limiter.Wait(ctx); err != nil {
		return ""
	}

	breaker := r.breakerFor(name)
	out, err := breaker.Execute(func() (interface{}, error) {
		return r.capture(ctx, name, args)
	})
	if err != nil {
		r.log.Debug("command unavailable", "command", name, "error", err)
		return ""
	}

	text, _ := out.(string)
	return text
}

// capture runs the command and captures stdout. A process that starts but
// exits non-zero is reported as success to the breaker (the tool exists),
// just with empty output.
func (r *ExecRunner) capture(ctx context.Context, name string, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.log.Debug("command exited non-zero",
				"command", name, "exitCode", exitErr.ExitCode())
			return "", nil
		}
		return "", err
	}

	return string(out), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}

// breakerFor returns the circuit breaker for a command name, creating it on
// first use.
func (r *ExecRunner) breakerFor(name string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if breaker, ok := r.breakers[name]; ok {
		return breaker
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	r.breakers[name] = breaker
	return breaker
}

// limiterFor returns the rate limiter for a command name, creating it on
// first use. The limit is generous; it only matters when a catalog override
// sends discovery into a degenerate loop.
func (r *ExecRunner) limiterFor(name string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limiter, ok := r.limiters[name]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(200), 200)
	r.limiters[name] = limiter
	return limiter
}
