package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adpilot/internal/adapter/memory"
	"adpilot/internal/core/domain"
)

func newTestUser(t *testing.T, repo *memory.LedgerRepository, username string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), domain.User{
		Username:     username,
		PasswordHash: "x",
		Role:         domain.RoleUser,
		Plan:         domain.PlanFree,
	})
	require.NoError(t, err)
	return u
}

func TestCheckoutCompletedActivates(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	err := rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventCheckoutCompleted,
		AccountID:  u.ID,
		CustomerID: "cus_123",
	})
	require.NoError(t, err)

	got, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, got.Active)
	require.Equal(t, domain.PlanAgency, got.Plan)
	require.NotNil(t, got.BillingCustomerID)
	require.Equal(t, "cus_123", *got.BillingCustomerID)
	require.NotNil(t, got.PlanStartedAt)
}

func TestCheckoutCompletedIsIdempotent(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	ev := domain.BillingEvent{
		Kind:       domain.EventCheckoutCompleted,
		AccountID:  u.ID,
		CustomerID: "cus_123",
	}
	require.NoError(t, rec.Apply(context.Background(), ev))

	first, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)

	// provider redelivery of the same event
	require.NoError(t, rec.Apply(context.Background(), ev))

	second, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, first, second, "replay must not change state")
}

func TestCheckoutCompletedUnknownAccountIsAcknowledged(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)

	err := rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventCheckoutCompleted,
		AccountID:  9999,
		CustomerID: "cus_void",
	})
	require.NoError(t, err)
}

func TestInvoicePaidRenewsByCustomerRef(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventCheckoutCompleted,
		AccountID:  u.ID,
		CustomerID: "cus_123",
	}))

	periodEnd := time.Now().AddDate(0, 1, 0).UTC().Truncate(time.Second)
	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventInvoicePaid,
		CustomerID: "cus_123",
		PeriodEnd:  periodEnd,
	}))

	got, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, got.Active)
	require.NotNil(t, got.PlanRenewsAt)
	require.Equal(t, periodEnd, *got.PlanRenewsAt)
}

func TestInvoicePaidUnknownCustomerIsNoOp(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	// must not error: the webhook endpoint has to stay acknowledgeable
	err := rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventInvoicePaid,
		CustomerID: "cus_never_seen",
		PeriodEnd:  time.Now(),
	})
	require.NoError(t, err)

	got, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.Equal(t, domain.PlanFree, got.Plan)
}

func TestSubscriptionDeletedDowngradesAndKeepsCustomerRef(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventCheckoutCompleted,
		AccountID:  u.ID,
		CustomerID: "cus_123",
	}))
	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind:       domain.EventSubscriptionDeleted,
		CustomerID: "cus_123",
	}))

	got, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.Equal(t, domain.PlanFree, got.Plan)
	require.NotNil(t, got.PlanCanceledAt)
	require.NotNil(t, got.BillingCustomerID, "customer ref must survive cancellation")
	require.Equal(t, "cus_123", *got.BillingCustomerID)
}

func TestUnknownEventKindIsIgnored(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)

	err := rec.Apply(context.Background(), domain.BillingEvent{Kind: domain.EventUnknown})
	require.NoError(t, err)
}

// TestAgencyImpliesActive checks the at-rest invariant after every
// reconciliation step of a full lifecycle.
func TestAgencyImpliesActive(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	assertInvariant := func() {
		t.Helper()
		got, err := repo.GetUser(context.Background(), u.ID)
		require.NoError(t, err)
		if got.Plan == domain.PlanAgency {
			require.True(t, got.Active, "agency plan must imply active")
		}
	}

	events := []domain.BillingEvent{
		{Kind: domain.EventCheckoutCompleted, AccountID: u.ID, CustomerID: "cus_1"},
		{Kind: domain.EventInvoicePaid, CustomerID: "cus_1", PeriodEnd: time.Now().AddDate(0, 1, 0)},
		{Kind: domain.EventCheckoutCompleted, AccountID: u.ID, CustomerID: "cus_1"},
		{Kind: domain.EventSubscriptionDeleted, CustomerID: "cus_1"},
		{Kind: domain.EventCheckoutCompleted, AccountID: u.ID, CustomerID: "cus_1"},
	}
	for _, ev := range events {
		require.NoError(t, rec.Apply(context.Background(), ev))
		assertInvariant()
	}
}

// TestResubscriptionAfterCancel covers the retained-customer-ref path:
// a second checkout after cancellation reactivates the same account.
func TestResubscriptionAfterCancel(t *testing.T) {
	repo := memory.NewLedgerRepository()
	rec := NewReconciler(repo, slog.Default(), nil)
	u := newTestUser(t, repo, "alice")

	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind: domain.EventCheckoutCompleted, AccountID: u.ID, CustomerID: "cus_1",
	}))
	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind: domain.EventSubscriptionDeleted, CustomerID: "cus_1",
	}))
	require.NoError(t, rec.Apply(context.Background(), domain.BillingEvent{
		Kind: domain.EventInvoicePaid, CustomerID: "cus_1", PeriodEnd: time.Now().AddDate(0, 1, 0),
	}))

	got, err := repo.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, got.Active)
}
