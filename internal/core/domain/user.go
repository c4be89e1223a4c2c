package domain

import "time"

// Roles an account can hold. Admins bypass the entitlement check.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Plans. An account on the agency plan with Active set may use the
// gated features (campaign creation, analytics).
const (
	PlanFree   = "free"
	PlanAgency = "agency"
)

// User represents an account with its wallet balance and subscription
// state. Balance is stored in integer units (e.g. cents). The billing
// customer id is the reference the payment provider uses in webhook
// events; it is retained after cancellation so a resubscription can be
// reconciled back onto the same account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	Balance      int64

	Plan              string
	Active            bool
	BillingCustomerID *string
	PlanStartedAt     *time.Time
	PlanRenewsAt      *time.Time
	PlanCanceledAt    *time.Time

	CreatedAt time.Time
}

// Entitled reports whether the account may perform a gated action.
// Plan and Active are checked separately even though one implies the
// other at rest: a reconciliation event may land between read and use,
// so the gate does not trust the invariant blindly.
func (u *User) Entitled() bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Plan == PlanAgency && u.Active
}

// IsAdmin reports whether the account sees unscoped listings.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
