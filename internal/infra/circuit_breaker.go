package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards the SMTP relay that delivers shift reports. While the relay keeps
// failing, report emails fail fast with ErrCircuitOpen and go back to the
// queue's retry path instead of holding a worker on a dead connection.
//
//   - closed:    deliveries pass through
//   - open:      deliveries fail immediately until OpenTimeout elapses
//   - half-open: a single trial delivery tests the relay

// CBState is the breaker position reported on /health.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the relay is considered down,
// including while another delivery is already testing it.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds tunable parameters.
type CircuitBreakerConfig struct {
	Name             string        // used in logs and health output
	FailureThreshold int           // consecutive failures that open the breaker
	SuccessThreshold int           // consecutive half-open successes that close it
	OpenTimeout      time.Duration // time spent open before a trial delivery
}

// DefaultCBConfig returns the settings of the SMTP breaker.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "smtp",
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

// BreakerStats is a point-in-time view of the breaker for health checks.
type BreakerStats struct {
	Name      string     `json:"name"`
	State     string     `json:"state"`
	Failures  int        `json:"consecutive_failures"`
	LastError string     `json:"last_error,omitempty"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
}

// CircuitBreaker is safe for concurrent use by the email workers.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu            sync.Mutex
	state         CBState
	failures      int
	successes     int
	trialInFlight bool
	openedAt      time.Time
	lastErr       error
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now, state: CBClosed}
}

// State returns the current position, moving open to half-open once the
// timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.expireOpen()
	return cb.state
}

// Stats returns the breaker's health snapshot.
func (cb *CircuitBreaker) Stats() BreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.expireOpen()
	s := BreakerStats{Name: cb.cfg.Name, State: cb.state.String(), Failures: cb.failures}
	if cb.lastErr != nil {
		s.LastError = cb.lastErr.Error()
	}
	if cb.state != CBClosed {
		at := cb.openedAt
		s.OpenedAt = &at
	}
	return s
}

// Execute runs fn unless the breaker is open or a half-open trial is already
// in flight.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.trialInFlight = false
	if err != nil {
		cb.onFailure(err)
		return err
	}
	cb.onSuccess()
	return nil
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.expireOpen()
	switch cb.state {
	case CBOpen:
		return ErrCircuitOpen
	case CBHalfOpen:
		if cb.trialInFlight {
			return ErrCircuitOpen
		}
		cb.trialInFlight = true
	}
	return nil
}

// The helpers below run under cb.mu.

func (cb *CircuitBreaker) expireOpen() {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.transition(CBHalfOpen)
	}
}

func (cb *CircuitBreaker) onFailure(err error) {
	cb.failures++
	cb.lastErr = err
	switch cb.state {
	case CBClosed:
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.transition(CBOpen)
		}
	case CBHalfOpen:
		cb.transition(CBOpen)
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failures = 0
	case CBHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.transition(CBClosed)
		}
	}
}

func (cb *CircuitBreaker) transition(to CBState) {
	from := cb.state
	cb.state = to
	cb.successes = 0
	switch to {
	case CBOpen:
		cb.openedAt = cb.now()
	case CBClosed:
		cb.failures = 0
		cb.lastErr = nil
	}

	ev := log.Warn()
	if to == CBClosed {
		ev = log.Info()
	}
	ev = ev.Str("breaker", cb.cfg.Name).
		Str("from", from.String()).
		Str("to", to.String()).
		Int("consecutive_failures", cb.failures)
	if cb.lastErr != nil {
		ev = ev.Err(cb.lastErr)
	}
	ev.Msg("circuit breaker state changed")
}
