package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-field rate limiters: field_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(fieldID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[fieldID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[fieldID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(fieldID string, fieldRate rate.Limit, fieldBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[fieldID] = rate.NewLimiter(fieldRate, fieldBurst)
}
