package port

import (
	"context"

	"adpilot/internal/core/domain"
)

// CreateCampaignInput carries caller-settable campaign fields. Owner
// and status are never taken from input: the owner is forced to the
// caller's identity and new campaigns always start active.
type CreateCampaignInput struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
	Geo    string `json:"geo"`
}

// CreateTransactionInput carries caller-settable transaction fields.
// Amount is signed: spends and payouts must be submitted as negative
// amounts. Status is forced to completed by the use case.
type CreateTransactionInput struct {
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

// AccountUseCase covers registration and credential checks.
type AccountUseCase interface {
	// Register creates an account with a hashed credential, role user,
	// zero balance and the free plan. Returns ErrDuplicateUsername or a
	// ValidationError on bad input.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login returns the account matching the credentials, or
	// ErrUnauthenticated when they do not match. The two failure causes
	// (unknown handle, wrong password) are not distinguished.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// Get returns an account by id, or nil when absent. Used by the
	// session middleware to load a fresh entitlement snapshot per
	// request; nothing caches it longer than one request.
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// CampaignUseCase exposes the gated campaign operations. Every method
// takes the authenticated actor explicitly; there is no ambient
// request identity.
type CampaignUseCase interface {
	// Create persists a campaign owned by the actor. Requires the
	// entitlement gate to pass; returns ErrNotEntitled otherwise.
	Create(ctx context.Context, actor *domain.User, in CreateCampaignInput) (*domain.Campaign, error)
	// Get returns a campaign visible to the actor. Absent rows and rows
	// owned by someone else both yield ErrNotFound.
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Campaign, error)
	// List returns all campaigns for admins, own campaigns otherwise.
	List(ctx context.Context, actor *domain.User) ([]domain.Campaign, error)
}

// TransactionUseCase exposes wallet operations.
type TransactionUseCase interface {
	// Create validates and persists a transaction owned by the actor,
	// atomically mutating the wallet balance.
	Create(ctx context.Context, actor *domain.User, in CreateTransactionInput) (*domain.Transaction, error)
	// List returns all transactions for admins, own rows otherwise.
	List(ctx context.Context, actor *domain.User) ([]domain.Transaction, error)
}

// AnalyticsUseCase exposes the gated analytics read.
type AnalyticsUseCase interface {
	// List returns samples visible to the actor. Requires the
	// entitlement gate to pass; returns ErrNotEntitled otherwise.
	List(ctx context.Context, actor *domain.User) ([]domain.AnalyticsSample, error)
}

// Reconciler applies verified provider lifecycle events to local
// entitlement state. Applications are idempotent and safe to retry;
// events for the same account are applied last-writer-wins in arrival
// order.
type Reconciler interface {
	Apply(ctx context.Context, ev domain.BillingEvent) error
}

// PasswordHasher abstracts the credential hashing scheme. The concrete
// scheme is an external collaborator; use cases only ever see opaque
// hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
