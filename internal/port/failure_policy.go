package port

import "context"

// FailurePolicy decides whether a side-effecting operation should be failed on
// purpose. Production wiring never fails; tests and demos inject one that does.
type FailurePolicy interface {
	ShouldFail(ctx context.Context, operation string) error
}
