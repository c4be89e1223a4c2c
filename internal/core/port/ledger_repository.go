package port

import (
	"context"
	"time"

	"adpilot/internal/core/domain"
)

// EntitlementUpdate describes a partial update of an account's
// subscription state. Nil pointers leave the corresponding column
// untouched, which lets reconciliation events assert only the fields
// they actually carry.
type EntitlementUpdate struct {
	Plan              *string
	Active            *bool
	BillingCustomerID *string
	PlanStartedAt     *time.Time
	PlanRenewsAt      *time.Time
	PlanCanceledAt    *time.Time
}

// LedgerRepository defines the persistence layer for accounts,
// campaigns, transactions and analytics. It is an outbound port in
// hexagonal architecture. Implementations must be concurrency-safe and
// apply balance mutations atomically with transaction inserts.
type LedgerRepository interface {
	// CreateUser persists a new account and returns it with its
	// generated id. Returns ErrDuplicateUsername on a taken handle.
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	// GetUser returns an account by id, or nil when absent.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	// GetUserByUsername returns an account by handle, or nil when absent.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetUserByBillingRef returns the account holding the given
	// provider customer reference, or nil when absent.
	GetUserByBillingRef(ctx context.Context, customerID string) (*domain.User, error)
	// UpdateEntitlement applies a partial subscription-state update and
	// returns the updated account. Returns ErrAccountNotFound when the
	// account does not exist.
	UpdateEntitlement(ctx context.Context, userID int64, upd EntitlementUpdate) (*domain.User, error)

	// CreateCampaign persists a campaign and returns it with generated
	// id and timestamp.
	CreateCampaign(ctx context.Context, c domain.Campaign) (*domain.Campaign, error)
	// GetCampaign returns a campaign by id, or nil when absent.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns every campaign.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// ListCampaignsByOwner returns campaigns owned by the given account.
	ListCampaignsByOwner(ctx context.Context, userID int64) ([]domain.Campaign, error)

	// CreateTransaction persists a transaction row and, when its status
	// is completed, adjusts the owner's balance by the signed amount in
	// the same atomic unit. Either both writes are visible or neither.
	CreateTransaction(ctx context.Context, t domain.Transaction) (*domain.Transaction, error)
	// ListTransactions returns every transaction.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// ListTransactionsByOwner returns transactions owned by the account.
	ListTransactionsByOwner(ctx context.Context, userID int64) ([]domain.Transaction, error)

	// ListAnalytics returns every analytics sample.
	ListAnalytics(ctx context.Context) ([]domain.AnalyticsSample, error)
	// ListAnalyticsByOwner returns samples for campaigns the account owns.
	ListAnalyticsByOwner(ctx context.Context, userID int64) ([]domain.AnalyticsSample, error)
}
