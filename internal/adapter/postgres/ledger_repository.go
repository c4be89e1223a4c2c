package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var _ port.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository implements port.LedgerRepository using pgxpool for
// PostgreSQL.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const userColumns = `id, username, password_hash, role, balance, plan, active,
    billing_customer_id, plan_started_at, plan_renews_at, plan_canceled_at, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Balance,
		&u.Plan, &u.Active, &u.BillingCustomerID,
		&u.PlanStartedAt, &u.PlanRenewsAt, &u.PlanCanceledAt, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account row.
func (r *LedgerRepository) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO users
        (username, password_hash, role, balance, plan, active, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,now()) RETURNING `+userColumns,
		u.Username, u.PasswordHash, u.Role, u.Balance, u.Plan, u.Active)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation, here only possible on username.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", port.ErrDuplicateUsername, u.Username)
		}
		return nil, err
	}
	return created, nil
}

// GetUser returns an account by id, or nil when absent.
func (r *LedgerRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetUserByUsername returns an account by handle, or nil when absent.
func (r *LedgerRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetUserByBillingRef returns the account holding the given provider
// customer reference, or nil when absent.
func (r *LedgerRepository) GetUserByBillingRef(ctx context.Context, customerID string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE billing_customer_id = $1`, customerID))
}

// UpdateEntitlement applies a partial subscription-state update. Only
// the columns with non-nil pointers are touched, so reconciliation
// events assert exactly the fields they carry.
func (r *LedgerRepository) UpdateEntitlement(ctx context.Context, userID int64, upd port.EntitlementUpdate) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `UPDATE users SET
        plan                = COALESCE($2, plan),
        active              = COALESCE($3, active),
        billing_customer_id = COALESCE($4, billing_customer_id),
        plan_started_at     = COALESCE($5, plan_started_at),
        plan_renews_at      = COALESCE($6, plan_renews_at),
        plan_canceled_at    = COALESCE($7, plan_canceled_at)
        WHERE id = $1 RETURNING `+userColumns,
		userID, upd.Plan, upd.Active, upd.BillingCustomerID,
		upd.PlanStartedAt, upd.PlanRenewsAt, upd.PlanCanceledAt)
	updated, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: user %d", port.ErrAccountNotFound, userID)
	}
	return updated, nil
}

const campaignColumns = `id, user_id, name, budget, geo, status, created_at`

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Budget, &c.Geo, &c.Status, &c.CreatedAt)
	return c, err
}

// CreateCampaign inserts a campaign row and returns it with generated
// id and timestamp.
func (r *LedgerRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	var created domain.Campaign
	err := r.pool.QueryRow(ctx, `INSERT INTO campaigns (user_id, name, budget, geo, status, created_at)
        VALUES ($1,$2,$3,$4,$5,now()) RETURNING `+campaignColumns,
		c.UserID, c.Name, c.Budget, c.Geo, c.Status).
		Scan(&created.ID, &created.UserID, &created.Name, &created.Budget, &created.Geo, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCampaign returns a campaign by id, or nil when absent.
func (r *LedgerRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Budget, &c.Geo, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns every campaign ordered by id.
func (r *LedgerRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// ListCampaignsByOwner returns campaigns owned by the given account.
func (r *LedgerRepository) ListCampaignsByOwner(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

const transactionColumns = `id, user_id, amount, type, status, created_at`

func scanTransaction(row pgx.CollectableRow) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Status, &t.CreatedAt)
	return t, err
}

// CreateTransaction inserts the transaction row and applies the balance
// mutation in one serializable database transaction. The owner row is
// locked first so concurrent wallet writes serialize; either both
// writes become visible or neither does.
func (r *LedgerRepository) CreateTransaction(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// lock owner
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, t.UserID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("%w: user %d", port.ErrAccountNotFound, t.UserID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	t.CreatedAt = time.Now().UTC()
	var created domain.Transaction
	err = tx.QueryRow(ctx, `INSERT INTO transactions (user_id, amount, type, status, created_at)
        VALUES ($1,$2,$3,$4,$5) RETURNING `+transactionColumns,
		t.UserID, t.Amount, t.Type, t.Status, t.CreatedAt).
		Scan(&created.ID, &created.UserID, &created.Amount, &created.Type, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	if t.Status == domain.TxCompleted {
		_, err = tx.Exec(ctx, `UPDATE users SET balance = balance + $1 WHERE id = $2`, t.Amount, t.UserID)
		if err != nil {
			return nil, err
		}
	}
	return &created, nil
}

// ListTransactions returns every transaction ordered by id.
func (r *LedgerRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanTransaction)
}

// ListTransactionsByOwner returns transactions owned by the account.
func (r *LedgerRepository) ListTransactionsByOwner(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanTransaction)
}

const analyticsColumns = `id, campaign_id, impressions, clicks, spend, sample_date`

func scanSample(row pgx.CollectableRow) (domain.AnalyticsSample, error) {
	var s domain.AnalyticsSample
	err := row.Scan(&s.ID, &s.CampaignID, &s.Impressions, &s.Clicks, &s.Spend, &s.SampleDate)
	return s, err
}

// ListAnalytics returns every analytics sample ordered by id.
func (r *LedgerRepository) ListAnalytics(ctx context.Context) ([]domain.AnalyticsSample, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+analyticsColumns+` FROM analytics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSample)
}

// ListAnalyticsByOwner returns samples for campaigns the account owns.
func (r *LedgerRepository) ListAnalyticsByOwner(ctx context.Context, userID int64) ([]domain.AnalyticsSample, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.id, a.campaign_id, a.impressions, a.clicks, a.spend, a.sample_date
        FROM analytics a JOIN campaigns c ON a.campaign_id = c.id
        WHERE c.user_id = $1 ORDER BY a.id`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSample)
}
