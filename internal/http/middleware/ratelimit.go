package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/tradequote/quoting-api/internal/auth"
	"github.com/tradequote/quoting-api/internal/config"
	"go.uber.org/zap"
)

// RateLimiter applies two request budgets: a per-IP budget on everything
// that reaches the server and a higher per-user budget inside the
// authenticated API group. Health endpoints and trusted IPs bypass both.
type RateLimiter struct {
	cfg    *config.RateLimitConfig
	logger *zap.Logger

	ipLimiter   func(http.Handler) http.Handler
	userLimiter func(http.Handler) http.Handler

	trustedIPs   map[string]struct{}
	exemptPaths  map[string]struct{}
	exemptPrefix []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:         cfg,
		logger:      logger,
		trustedIPs:  make(map[string]struct{}),
		exemptPaths: make(map[string]struct{}),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.trustedIPs[ip] = struct{}{}
	}
	for _, p := range cfg.WhitelistPaths {
		if strings.HasSuffix(p, "/*") {
			rl.exemptPrefix = append(rl.exemptPrefix, strings.TrimSuffix(p, "/*"))
			continue
		}
		rl.exemptPaths[p] = struct{}{}
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.limitExceeded),
	)
	rl.userLimiter = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(keyByUser),
		httprate.WithLimitHandler(rl.limitExceeded),
	)

	logger.Info("rate limiter configured",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
	)
	return rl
}

// LimitByIP is the outer limiter, applied before authentication.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

// LimitByUser is the inner limiter for authenticated routes, keyed by the
// user ID so one tenant cannot starve another behind a shared NAT.
func (rl *RateLimiter) LimitByUser(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		rl.userLimiter(next).ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if _, ok := rl.exemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range rl.exemptPrefix {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	_, trusted := rl.trustedIPs[clientIP(r)]
	return trusted
}

func keyByUser(r *http.Request) (string, error) {
	if user, ok := auth.FromContext(r.Context()); ok && user != nil {
		return "user:" + user.UserID.String(), nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP prefers proxy headers over RemoteAddr since the API runs behind
// a load balancer in staging and production.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) limitExceeded(w http.ResponseWriter, r *http.Request) {
	rl.logger.Warn("rate limit exceeded",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", clientIP(r)),
	)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded","message":"Too many requests. Please try again later."}`))
}
