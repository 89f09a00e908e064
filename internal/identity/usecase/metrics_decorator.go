package usecase

import (
	"context"
	"time"

	"github.com/allisson/taskmanager/internal/identity/domain"
	"github.com/allisson/taskmanager/internal/metrics"
)

// identityUseCaseWithMetrics decorates IdentityUseCase with metrics instrumentation.
type identityUseCaseWithMetrics struct {
	next    IdentityUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityUseCaseWithMetrics wraps an IdentityUseCase with metrics recording.
func NewIdentityUseCaseWithMetrics(useCase IdentityUseCase, m metrics.BusinessMetrics) IdentityUseCase {
	return &identityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for registration operations.
func (i *identityUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterInput,
) (*AuthOutput, error) {
	start := time.Now()
	output, err := i.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "register", status)
	i.metrics.RecordDuration(ctx, "identity", "register", time.Since(start), status)

	return output, err
}

// Login records metrics for login operations.
func (i *identityUseCaseWithMetrics) Login(
	ctx context.Context,
	input LoginInput,
) (*AuthOutput, error) {
	start := time.Now()
	output, err := i.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "login", status)
	i.metrics.RecordDuration(ctx, "identity", "login", time.Since(start), status)

	return output, err
}

// UpdateSelf records metrics for self-service profile updates.
func (i *identityUseCaseWithMetrics) UpdateSelf(
	ctx context.Context,
	identityID int64,
	input UpdateSelfInput,
) (*domain.Identity, error) {
	start := time.Now()
	identity, err := i.next.UpdateSelf(ctx, identityID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identity", "update_self", status)
	i.metrics.RecordDuration(ctx, "identity", "update_self", time.Since(start), status)

	return identity, err
}
