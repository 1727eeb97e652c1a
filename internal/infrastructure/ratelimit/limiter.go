package ratelimit

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"legalease.backend/pkg/logger"
)

// Policy is a request budget per window
type Policy struct {
	Name   string
	Max    int64
	Window time.Duration
}

var (
	PolicyContact       = Policy{Name: "contact", Max: 5, Window: 15 * time.Minute}
	PolicyPayment       = Policy{Name: "payment", Max: 10, Window: time.Minute}
	PolicyPaymentVerify = Policy{Name: "paymentVerify", Max: 20, Window: time.Minute}
	PolicyContract      = Policy{Name: "contract", Max: 30, Window: time.Minute}
	PolicyKYC           = Policy{Name: "kyc", Max: 50, Window: time.Minute}
	PolicyAuth          = Policy{Name: "auth", Max: 10, Window: 15 * time.Minute}
	PolicyHealth        = Policy{Name: "health", Max: 100, Window: time.Minute}
	PolicyDefault       = Policy{Name: "default", Max: 60, Window: time.Minute}
)

// Result is the outcome of one check
type Result struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds
func (r Result) RetryAfterSeconds() int64 {
	if r.RetryAfter <= 0 {
		return 0
	}
	return int64(math.Ceil(r.RetryAfter.Seconds()))
}

// Limiter applies policies over a Store
type Limiter struct {
	store Store
	now   func() time.Time
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Check counts one request for identifier under policy.
// A failing store lets the request through.
func (l *Limiter) Check(ctx context.Context, identifier string, policy Policy) Result {
	count, resetAt, err := l.store.Hit(ctx, identifier, policy.Window)
	if err != nil {
		logger.Warn(ctx, "Rate limit store unavailable, allowing request",
			zap.String("policy", policy.Name),
			zap.Error(err),
		)
		return Result{
			Allowed:   true,
			Limit:     policy.Max,
			Remaining: policy.Max,
			ResetAt:   l.now().Add(policy.Window),
		}
	}

	res := Result{
		Allowed: count <= policy.Max,
		Limit:   policy.Max,
		ResetAt: resetAt,
	}
	if remaining := policy.Max - count; remaining > 0 {
		res.Remaining = remaining
	}
	if !res.Allowed {
		res.RetryAfter = resetAt.Sub(l.now())
		if res.RetryAfter < 0 {
			res.RetryAfter = 0
		}
	}
	return res
}
