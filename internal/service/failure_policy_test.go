package service_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstdesk/internal/service"
)

func TestNoFailures(t *testing.T) {
	assert.NoError(t, service.NoFailures().ShouldFail(context.Background(), "archive"))
}

func TestRandomFailurePolicy_ZeroRate(t *testing.T) {
	p := service.NewRandomFailurePolicy(0, rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		assert.NoError(t, p.ShouldFail(context.Background(), "email"))
	}
}

func TestRandomFailurePolicy_AlwaysFails(t *testing.T) {
	p := service.NewRandomFailurePolicy(1, rand.New(rand.NewSource(1)))
	err := p.ShouldFail(context.Background(), "archive")
	assert.ErrorContains(t, err, "archive")
}

func TestRandomFailurePolicy_Seeded(t *testing.T) {
	a := service.NewRandomFailurePolicy(0.5, rand.New(rand.NewSource(42)))
	b := service.NewRandomFailurePolicy(0.5, rand.New(rand.NewSource(42)))

	failures := 0
	for i := 0; i < 200; i++ {
		errA := a.ShouldFail(context.Background(), "email")
		errB := b.ShouldFail(context.Background(), "email")
		assert.Equal(t, errA == nil, errB == nil)
		if errA != nil {
			failures++
		}
	}
	assert.Greater(t, failures, 50)
	assert.Less(t, failures, 150)
}
