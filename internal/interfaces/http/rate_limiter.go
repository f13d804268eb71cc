package http

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

// RateLimiterConfig límite por IP de cliente.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration // cada cuánto se purgan entradas inactivas
	EntryTTL          time.Duration // inactividad tras la cual se olvida una IP
}

// IPRateLimiter token bucket por IP. Es la única estructura mutable compartida entre peticiones.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter crea el limitador y arranca la limpieza periódica hasta que ctx termine.
func NewIPRateLimiter(ctx context.Context, cfg RateLimiterConfig) *IPRateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = 10 * time.Minute
	}
	rl := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		ttl:      cfg.EntryTTL,
		now:      time.Now,
	}
	go rl.cleanupLoop(ctx, cfg.CleanupInterval)
	return rl
}

func (rl *IPRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	e, ok := rl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastSeen = rl.now()
	return e.limiter
}

func (rl *IPRateLimiter) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *IPRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.ttl)
	for ip, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Size número de IPs con limitador activo.
func (rl *IPRateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware responde 429 RATE_LIMITED cuando la IP agota su cupo.
func (rl *IPRateLimiter) Middleware() fiber.Handler {
	limit := strconv.Itoa(rl.burst)
	return func(c *fiber.Ctx) error {
		lim := rl.limiter(c.IP())
		c.Set("X-RateLimit-Limit", limit)
		if !lim.Allow() {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente de nuevo en un momento",
			})
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(int(lim.Tokens())))
		return c.Next()
	}
}
