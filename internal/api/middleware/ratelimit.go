package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const (
	defaultBurst   = 5
	msgRateLimited = "слишком много запросов"
)

// RateLimiter token bucket на каждого клиента
// Клиент определяется по X-User-ID, без него по адресу
type RateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{rps: rps, burst: burst}
}

// Middleware отвечает 429, когда токены клиента закончились
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.getLimiter(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

func clientKey(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
		return "user:" + userID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return "ip:" + host
	}
	return "unknown"
}
