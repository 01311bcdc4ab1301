package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFailurePolicy is a mock implementation of port.FailurePolicy.
type MockFailurePolicy struct {
	mock.Mock
}

func (m *MockFailurePolicy) ShouldFail(ctx context.Context, operation string) error {
	args := m.Called(ctx, operation)
	return args.Error(0)
}
