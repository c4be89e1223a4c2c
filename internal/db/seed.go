package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/auth"
)

// Seed inserts demo data: an admin, a demo agency account with an
// active plan, campaigns with analytics history and a few wallet
// transactions. Intended for local development; every insert is
// ON CONFLICT DO NOTHING so reruns are harmless.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	hasher := auth.BcryptHasher{}

	adminHash, err := hasher.Hash("admin-password")
	if err != nil {
		return err
	}
	demoHash, err := hasher.Hash("demo-password")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `INSERT INTO users (id, username, password_hash, role, balance, plan, active, created_at)
VALUES (1, 'admin', $1, 'admin', 0, 'free', false, now()) ON CONFLICT DO NOTHING`, adminHash)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO users
    (id, username, password_hash, role, balance, plan, active, billing_customer_id, plan_started_at, created_at)
VALUES (2, 'demo-agency', $1, 'user', 250000, 'agency', true, 'cus_demo_1', now(), now())
ON CONFLICT DO NOTHING`, demoHash)
	if err != nil {
		return err
	}

	geos := []string{"Berlin", "London", "New York", "Tokyo"}
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("Demo campaign %d", i)
		budget := int64(50000 * i) // 500.00 units per step
		_, err = db.Exec(ctx, `INSERT INTO campaigns (id, user_id, name, budget, geo, status, created_at)
VALUES ($1, 2, $2, $3, $4, 'active', now()) ON CONFLICT DO NOTHING`,
			i, name, budget, geos[(i-1)%len(geos)])
		if err != nil {
			return err
		}

		// two weeks of analytics history per campaign
		for d := 0; d < 14; d++ {
			impressions := int64(r.Intn(5000) + 500)
			clicks := impressions / int64(r.Intn(40)+10)
			spend := clicks * int64(r.Intn(80)+20)
			day := time.Now().AddDate(0, 0, -d)
			_, err = db.Exec(ctx, `INSERT INTO analytics (campaign_id, impressions, clicks, spend, sample_date)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
				i, impressions, clicks, spend, day)
			if err != nil {
				return err
			}
		}
	}

	// wallet history for the demo account; balance above already
	// reflects these rows
	deposits := []int64{100000, 200000}
	for _, amount := range deposits {
		_, err = db.Exec(ctx, `INSERT INTO transactions (user_id, amount, type, status, created_at)
VALUES (2, $1, 'deposit', 'completed', now()) ON CONFLICT DO NOTHING`, amount)
		if err != nil {
			return err
		}
	}
	_, err = db.Exec(ctx, `INSERT INTO transactions (user_id, amount, type, status, created_at)
VALUES (2, -50000, 'spend', 'completed', now()) ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	// explicit ids above do not advance the serial sequences
	for _, table := range []string{"users", "campaigns"} {
		_, err = db.Exec(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table))
		if err != nil {
			return err
		}
	}
	return nil
}
