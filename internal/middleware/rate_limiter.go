package middleware

import (
	"net/http"
	"sync"
	"time"

	"routevendor/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ──────────────────────────────────────────────────────

type windowEntry struct {
	count     int
	windowEnd time.Time
}

// WindowLimiter counts requests per client IP inside a fixed window.
type WindowLimiter struct {
	limit   int
	window  time.Duration
	message string
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*windowEntry
}

func NewWindowLimiter(limit int, window time.Duration, message string) *WindowLimiter {
	return &WindowLimiter{
		limit:   limit,
		window:  window,
		message: message,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

// allow records one hit for key and reports whether it is within the limit.
func (l *WindowLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// Purge drops expired windows and returns how many were removed.
func (l *WindowLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for k, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, k)
			purged++
		}
	}
	return purged
}

// Middleware returns the gin handler for this limiter.
func (l *WindowLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	l := NewWindowLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")
	registerForPurge(l)
	return l.Middleware()
}

// RateLimiter returns a general-purpose limiter for the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := NewWindowLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.")
	registerForPurge(l)
	return l.Middleware()
}

// ── Purge goroutine ───────────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

var (
	purgeMu      sync.Mutex
	purgeTargets []*WindowLimiter
	purgeOnce    sync.Once
)

func registerForPurge(l *WindowLimiter) {
	purgeMu.Lock()
	purgeTargets = append(purgeTargets, l)
	purgeMu.Unlock()
	purgeOnce.Do(func() { go purgeExpiredEntries() })
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purgeMu.Lock()
		targets := append([]*WindowLimiter(nil), purgeTargets...)
		purgeMu.Unlock()

		total := 0
		for _, l := range targets {
			total += l.Purge()
		}
		if total > 0 {
			log.Debug().Int("entries_purged", total).Msg("rate limiter entries purged")
		}
	}
}
