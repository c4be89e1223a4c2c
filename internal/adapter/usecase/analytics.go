package usecase

import (
	"context"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var _ port.AnalyticsUseCase = (*AnalyticsUseCase)(nil)

// AnalyticsUseCase implements the gated analytics read. Samples are
// ingested elsewhere; this service only serves them.
type AnalyticsUseCase struct {
	repo port.LedgerRepository
}

// NewAnalyticsUseCase creates the analytics use case.
func NewAnalyticsUseCase(repo port.LedgerRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// List returns samples visible to the actor: everything for admins,
// samples of owned campaigns otherwise. Requires the entitlement gate.
func (u *AnalyticsUseCase) List(ctx context.Context, actor *domain.User) ([]domain.AnalyticsSample, error) {
	if !actor.Entitled() {
		return nil, port.ErrNotEntitled
	}
	if actor.IsAdmin() {
		return u.repo.ListAnalytics(ctx)
	}
	return u.repo.ListAnalyticsByOwner(ctx, actor.ID)
}
