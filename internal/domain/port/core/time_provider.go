package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain. Period, health and
// dueness computations always take the reference instant explicitly; this
// port exists so orchestration code never reaches for the global clock.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
