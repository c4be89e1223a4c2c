package usecase

import (
	"context"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// minDepositAmount is the smallest accepted deposit magnitude in
// integer currency units.
const minDepositAmount = 100

var _ port.TransactionUseCase = (*TransactionUseCase)(nil)

// TransactionUseCase implements wallet operations. Amounts keep the
// caller's sign: spends and payouts arrive negative. Status is forced
// to completed; there is no external capture step for deposits in this
// flow, which is independent of the provider-billed subscription path.
type TransactionUseCase struct {
	repo port.LedgerRepository
}

// NewTransactionUseCase creates the transaction use case.
func NewTransactionUseCase(repo port.LedgerRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// Create validates and persists a transaction owned by the actor. The
// balance mutation happens in the repository as one atomic unit with
// the row insert.
func (u *TransactionUseCase) Create(ctx context.Context, actor *domain.User, in port.CreateTransactionInput) (*domain.Transaction, error) {
	switch in.Type {
	case domain.TxDeposit, domain.TxPayout, domain.TxSpend:
	default:
		return nil, port.Validation("type", "must be one of deposit, payout, spend")
	}
	if in.Type == domain.TxDeposit && abs(in.Amount) < minDepositAmount {
		return nil, port.Validation("amount", "deposit must be at least 100")
	}
	return u.repo.CreateTransaction(ctx, domain.Transaction{
		UserID: actor.ID,
		Amount: in.Amount,
		Type:   in.Type,
		Status: domain.TxCompleted,
	})
}

// List returns all transactions for admins and owner-scoped rows for
// everyone else.
func (u *TransactionUseCase) List(ctx context.Context, actor *domain.User) ([]domain.Transaction, error) {
	if actor.IsAdmin() {
		return u.repo.ListTransactions(ctx)
	}
	return u.repo.ListTransactionsByOwner(ctx, actor.ID)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
