package domain

import (
	"github.com/shopspring/decimal"
)

// Role defines what a party is allowed to do with its balance.
type Role string

const (
	RoleAdmin    Role = "ADMIN"    // balance source, credits are minted
	RoleReseller Role = "RESELLER" // credits are zero-sum against its own balance
	RoleUser     Role = "USER"     // may only spend on campaigns
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReseller, RoleUser:
		return true
	}
	return false
}

// Account represents a party that can hold campaign points.
// This is the primary representation used by services.
// Accounts are provisioned outside the ledger; only the ledger service
// mutates Balance, and only inside a committed unit of work.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (opaque, unique)
	Name      string          `json:"name"`      // Display name
	Role      Role            `json:"role"`      // ADMIN, RESELLER or USER
	Balance   decimal.Decimal `json:"balance"`   // Never negative at any committed point
	AuditFields
}
