package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/foodspot/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket refilled at RequestsPerWindow per Window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// PerMinute is shorthand for a per-minute RateLimitConfig.
func PerMinute(requests, burst int) RateLimitConfig {
	return RateLimitConfig{RequestsPerWindow: requests, Window: time.Minute, Burst: burst}
}

// KeyExtractor groups requests into rate limit buckets. An empty key skips
// limiting for that request.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys by client address, honouring X-Forwarded-For and
// X-Real-IP set by a fronting proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// JSONFieldKeyExtractor keys by a top level string field of a JSON body,
// lower-cased. The body is restored so the handler can decode it again.
func JSONFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONBody))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return ""
		}

		var body map[string]any
		if json.Unmarshal(raw, &body) != nil {
			return ""
		}
		v, _ := body[field].(string)
		return strings.ToLower(strings.TrimSpace(v))
	}
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

type limiterSet struct {
	limit rate.Limit
	burst int

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idle buckets are full; dropping them loses nothing.
	if time.Since(s.lastCleanup) > 5*time.Minute {
		for k, l := range s.limiters {
			if l.Tokens() >= float64(s.burst) {
				delete(s.limiters, k)
			}
		}
		s.lastCleanup = time.Now()
	}

	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = l
	}
	return l
}

// RateLimit rejects requests beyond cfg with 429 and a Retry-After header.
func RateLimit(cfg RateLimitConfig, keyFn KeyExtractor) Middleware {
	set := &limiterSet{
		limit:       rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			limiter := set.get(key)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests, try again later")
		})
	}
}
