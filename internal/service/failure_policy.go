package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"gstdesk/internal/port"
)

type noFailures struct{}

// NoFailures is the production FailurePolicy: nothing is failed on purpose.
func NoFailures() port.FailurePolicy { return noFailures{} }

func (noFailures) ShouldFail(context.Context, string) error { return nil }

type randomFailures struct {
	mu   sync.Mutex
	rate float64
	rnd  *rand.Rand
}

// NewRandomFailurePolicy fails each operation with probability rate. A rate of
// zero or less returns NoFailures.
func NewRandomFailurePolicy(rate float64, rnd *rand.Rand) port.FailurePolicy {
	if rate <= 0 {
		return NoFailures()
	}
	return &randomFailures{rate: rate, rnd: rnd}
}

func (p *randomFailures) ShouldFail(_ context.Context, operation string) error {
	p.mu.Lock()
	roll := p.rnd.Float64()
	p.mu.Unlock()
	if roll < p.rate {
		return fmt.Errorf("injected failure for %s", operation)
	}
	return nil
}
