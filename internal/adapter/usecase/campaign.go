package usecase

import (
	"context"
	"strings"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// CampaignUseCase implements the gated campaign operations.
type CampaignUseCase struct {
	repo port.LedgerRepository
}

// NewCampaignUseCase creates the campaign use case.
func NewCampaignUseCase(repo port.LedgerRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo}
}

// Create persists a campaign owned by the actor. The owner is forced
// to the actor's identity and the status always starts active; neither
// is taken from input.
func (u *CampaignUseCase) Create(ctx context.Context, actor *domain.User, in port.CreateCampaignInput) (*domain.Campaign, error) {
	if !actor.Entitled() {
		return nil, port.ErrNotEntitled
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, port.Validation("name", "must not be empty")
	}
	if in.Budget < 0 {
		return nil, port.Validation("budget", "must not be negative")
	}
	if strings.TrimSpace(in.Geo) == "" {
		return nil, port.Validation("geo", "must not be empty")
	}
	return u.repo.CreateCampaign(ctx, domain.Campaign{
		UserID: actor.ID,
		Name:   in.Name,
		Budget: in.Budget,
		Geo:    in.Geo,
		Status: domain.CampaignActive,
	})
}

// Get returns a campaign visible to the actor. An absent row and a row
// owned by another account both yield ErrNotFound so callers cannot
// probe for other users' campaigns.
func (u *CampaignUseCase) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Campaign, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || (!actor.IsAdmin() && c.UserID != actor.ID) {
		return nil, port.ErrNotFound
	}
	return c, nil
}

// List returns all campaigns for admins and owner-scoped rows for
// everyone else.
func (u *CampaignUseCase) List(ctx context.Context, actor *domain.User) ([]domain.Campaign, error) {
	if actor.IsAdmin() {
		return u.repo.ListCampaigns(ctx)
	}
	return u.repo.ListCampaignsByOwner(ctx, actor.ID)
}
