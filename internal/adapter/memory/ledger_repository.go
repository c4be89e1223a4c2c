package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var _ port.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository is a mutex-guarded in-memory implementation of
// port.LedgerRepository. It backs the test suite and local demos; the
// Postgres adapter is the production store.
type LedgerRepository struct {
	mu sync.RWMutex

	users        map[int64]*domain.User
	campaigns    map[int64]*domain.Campaign
	transactions map[int64]*domain.Transaction
	analytics    map[int64]*domain.AnalyticsSample

	nextUserID        int64
	nextCampaignID    int64
	nextTransactionID int64
	nextAnalyticsID   int64
}

// NewLedgerRepository returns an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		users:        make(map[int64]*domain.User),
		campaigns:    make(map[int64]*domain.Campaign),
		transactions: make(map[int64]*domain.Transaction),
		analytics:    make(map[int64]*domain.AnalyticsSample),
	}
}

func (r *LedgerRepository) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, fmt.Errorf("%w: %s", port.ErrDuplicateUsername, u.Username)
		}
	}

	r.nextUserID++
	u.ID = r.nextUserID
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = &u

	out := u
	return &out, nil
}

func (r *LedgerRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *LedgerRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *LedgerRepository) GetUserByBillingRef(ctx context.Context, customerID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.BillingCustomerID != nil && *u.BillingCustomerID == customerID {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *LedgerRepository) UpdateEntitlement(ctx context.Context, userID int64, upd port.EntitlementUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", port.ErrAccountNotFound, userID)
	}
	if upd.Plan != nil {
		u.Plan = *upd.Plan
	}
	if upd.Active != nil {
		u.Active = *upd.Active
	}
	if upd.BillingCustomerID != nil {
		id := *upd.BillingCustomerID
		u.BillingCustomerID = &id
	}
	if upd.PlanStartedAt != nil {
		t := *upd.PlanStartedAt
		u.PlanStartedAt = &t
	}
	if upd.PlanRenewsAt != nil {
		t := *upd.PlanRenewsAt
		u.PlanRenewsAt = &t
	}
	if upd.PlanCanceledAt != nil {
		t := *upd.PlanCanceledAt
		u.PlanCanceledAt = &t
	}

	out := *u
	return &out, nil
}

func (r *LedgerRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextCampaignID++
	c.ID = r.nextCampaignID
	c.CreatedAt = time.Now().UTC()
	r.campaigns[c.ID] = &c

	out := c
	return &out, nil
}

func (r *LedgerRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *LedgerRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	sortByID(out, func(c domain.Campaign) int64 { return c.ID })
	return out, nil
}

func (r *LedgerRepository) ListCampaignsByOwner(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Campaign, 0)
	for _, c := range r.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sortByID(out, func(c domain.Campaign) int64 { return c.ID })
	return out, nil
}

// CreateTransaction inserts the row and applies the balance mutation
// under the same lock, mirroring the single atomic unit the Postgres
// adapter gets from a serializable transaction.
func (r *LedgerRepository) CreateTransaction(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.users[t.UserID]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", port.ErrAccountNotFound, t.UserID)
	}

	r.nextTransactionID++
	t.ID = r.nextTransactionID
	t.CreatedAt = time.Now().UTC()
	r.transactions[t.ID] = &t

	if t.Status == domain.TxCompleted {
		owner.Balance += t.Amount
	}

	out := t
	return &out, nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		out = append(out, *t)
	}
	sortByID(out, func(t domain.Transaction) int64 { return t.ID })
	return out, nil
}

func (r *LedgerRepository) ListTransactionsByOwner(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sortByID(out, func(t domain.Transaction) int64 { return t.ID })
	return out, nil
}

// AddAnalyticsSample seeds a sample row. Analytics are read-only for
// the API; this exists for tests and the demo seed.
func (r *LedgerRepository) AddAnalyticsSample(s domain.AnalyticsSample) domain.AnalyticsSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextAnalyticsID++
	s.ID = r.nextAnalyticsID
	r.analytics[s.ID] = &s
	return s
}

func (r *LedgerRepository) ListAnalytics(ctx context.Context) ([]domain.AnalyticsSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AnalyticsSample, 0, len(r.analytics))
	for _, s := range r.analytics {
		out = append(out, *s)
	}
	sortByID(out, func(s domain.AnalyticsSample) int64 { return s.ID })
	return out, nil
}

func (r *LedgerRepository) ListAnalyticsByOwner(ctx context.Context, userID int64) ([]domain.AnalyticsSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make(map[int64]bool)
	for _, c := range r.campaigns {
		if c.UserID == userID {
			owned[c.ID] = true
		}
	}
	out := make([]domain.AnalyticsSample, 0)
	for _, s := range r.analytics {
		if owned[s.CampaignID] {
			out = append(out, *s)
		}
	}
	sortByID(out, func(s domain.AnalyticsSample) int64 { return s.ID })
	return out, nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
