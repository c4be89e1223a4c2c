package domain

import "time"

// Transaction types. The amount carries the sign: deposits are
// positive, spends and payouts are submitted as negative amounts by the
// caller. The API does not sign-correct by type.
const (
	TxDeposit = "deposit"
	TxPayout  = "payout"
	TxSpend   = "spend"
)

// Transaction statuses.
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction is a wallet ledger entry owned by exactly one account.
// A completed transaction has been reflected in its owner's balance
// exactly once; insertion and balance mutation are one atomic unit.
type Transaction struct {
	ID        int64
	UserID    int64
	Amount    int64
	Type      string
	Status    string
	CreatedAt time.Time
}
