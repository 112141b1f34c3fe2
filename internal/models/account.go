package models

import (
	"github.com/shopspring/decimal"
)

// Role mirrors domain.Role at the storage layer.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleReseller Role = "RESELLER"
	RoleUser     Role = "USER"
)

// Account represents a balance-holding party as persisted.
type Account struct {
	AccountID   string          `db:"account_id"`
	Name        string          `db:"name"`
	Role        Role            `db:"role"`
	Balance     decimal.Decimal `db:"balance"` // CHECK (balance >= 0) at the store
	AuditFields                 // Embed common audit fields
}
