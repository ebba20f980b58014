package security

import (
	"context"
	"time"
)

// Flow names the logic that produced a decision.
type Flow string

const (
	FlowSecurity Flow = "security"
	FlowCallback Flow = "callback"
	FlowLogout   Flow = "logout"
)

// Decision describes a finished logic run.
type Decision struct {
	Flow     Flow
	State    State
	Client   string
	Duration time.Duration
	// Err is a client or store failure that forced a denial.
	Err error
}

// Observer receives every decision. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	Observe(ctx context.Context, d Decision)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, d Decision)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, d Decision) {
	f(ctx, d)
}

type noopObserver struct{}

func (noopObserver) Observe(context.Context, Decision) {}
