package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"adpilot/internal/adapter/memory"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

func TestSpendDebitsExactlyOnce(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")
	other := newTestUser(t, repo, "bystander")

	created, err := svc.Create(context.Background(), owner, port.CreateTransactionInput{
		Amount: -500,
		Type:   domain.TxSpend,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TxCompleted, created.Status)

	gotOwner, err := repo.GetUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(-500), gotOwner.Balance)

	gotOther, err := repo.GetUser(context.Background(), other.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotOther.Balance, "no other account's balance may change")

	rows, err := repo.ListTransactionsByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1, "exactly one transaction row")
}

func TestDepositBelowMinimumRejected(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")

	_, err := svc.Create(context.Background(), owner, port.CreateTransactionInput{
		Amount: 50,
		Type:   domain.TxDeposit,
	})
	require.Error(t, err)
	require.True(t, port.IsValidation(err))

	got, err := repo.GetUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Balance, "rejected deposit must not move the balance")

	rows, err := repo.ListTransactionsByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestDepositAtMinimumAccepted(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")

	created, err := svc.Create(context.Background(), owner, port.CreateTransactionInput{
		Amount: 100,
		Type:   domain.TxDeposit,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TxCompleted, created.Status)

	got, err := repo.GetUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), got.Balance)
}

func TestUnknownTransactionTypeRejected(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")

	_, err := svc.Create(context.Background(), owner, port.CreateTransactionInput{
		Amount: 1000,
		Type:   "refund",
	})
	require.True(t, port.IsValidation(err))
}

// TestNoSignCorrectionByType pins the contract that the API records the
// caller's sign as-is: a positive "spend" credits the wallet. Changing
// this would be an observable behavior change, not a fix.
func TestNoSignCorrectionByType(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")

	_, err := svc.Create(context.Background(), owner, port.CreateTransactionInput{
		Amount: 300,
		Type:   domain.TxSpend,
	})
	require.NoError(t, err)

	got, err := repo.GetUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(300), got.Balance)
}

func TestListScopedByRole(t *testing.T) {
	repo := memory.NewLedgerRepository()
	svc := NewTransactionUseCase(repo)
	owner := newTestUser(t, repo, "owner")
	other := newTestUser(t, repo, "other")
	admin, err := repo.CreateUser(context.Background(), domain.User{
		Username: "root", PasswordHash: "x", Role: domain.RoleAdmin, Plan: domain.PlanFree,
	})
	require.NoError(t, err)

	for _, u := range []*domain.User{owner, other} {
		_, err := svc.Create(context.Background(), u, port.CreateTransactionInput{
			Amount: 1000, Type: domain.TxDeposit,
		})
		require.NoError(t, err)
	}

	own, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, owner.ID, own[0].UserID)

	all, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
