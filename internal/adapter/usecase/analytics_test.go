package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adpilot/internal/adapter/memory"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

func TestAnalyticsRequiresEntitlement(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewAnalyticsUseCase(repo)
	free := newTestUser(t, repo, "free")

	_, err := svc.List(context.Background(), free)
	require.ErrorIs(t, err, port.ErrNotEntitled)
}

func TestAnalyticsScopedToOwnedCampaigns(t *testing.T) {
	repo := memory.NewLedgerRepository()
	campaigns := NewCampaignUseCase(repo)
	svc := NewAnalyticsUseCase(repo)

	a := entitledUser(t, repo, "a")
	b := entitledUser(t, repo, "b")
	admin, err := repo.CreateUser(context.Background(), domain.User{
		Username: "root", PasswordHash: "x", Role: domain.RoleAdmin, Plan: domain.PlanFree,
	})
	require.NoError(t, err)

	mine, err := campaigns.Create(context.Background(), a, port.CreateCampaignInput{
		Name: "mine", Budget: 100, Geo: "Berlin",
	})
	require.NoError(t, err)
	theirs, err := campaigns.Create(context.Background(), b, port.CreateCampaignInput{
		Name: "theirs", Budget: 100, Geo: "Tokyo",
	})
	require.NoError(t, err)

	day := time.Now().Truncate(24 * time.Hour)
	repo.AddAnalyticsSample(domain.AnalyticsSample{CampaignID: mine.ID, Impressions: 100, Clicks: 5, Spend: 40, SampleDate: day})
	repo.AddAnalyticsSample(domain.AnalyticsSample{CampaignID: theirs.ID, Impressions: 900, Clicks: 70, Spend: 300, SampleDate: day})

	own, err := svc.List(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, mine.ID, own[0].CampaignID)

	all, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
