package middleware

// RateLimiterPresets provides common rate limiting configurations

// StrictRateLimiter - For sensitive endpoints (login, register)
// Burst: 10 requests, Sustained: 1 request per second
func StrictRateLimiter() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   10,
		RefillRate: 1.0,
	}
}

// GenerousRateLimiter - For read-heavy endpoints
// Burst: 100 requests, Sustained: 50 requests per second
func GenerousRateLimiter() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   100,
		RefillRate: 50.0,
	}
}

// CustomRateLimiter - Create your own configuration
// Example: CustomRateLimiter(5, 2.0) = 5 burst, 2 req/sec
func CustomRateLimiter(capacity int, refillRate float64) *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   capacity,
		RefillRate: refillRate,
	}
}
