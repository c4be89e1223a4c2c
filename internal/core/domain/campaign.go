package domain

import "time"

// Campaign statuses.
const (
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// Campaign represents an advertising campaign owned by exactly one
// account. Ownership is immutable after creation. Budgets are stored
// in integer units (e.g. cents).
type Campaign struct {
	ID        int64
	UserID    int64
	Name      string
	Budget    int64
	Geo       string
	Status    string
	CreatedAt time.Time
}
