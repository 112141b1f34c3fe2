package services

import (
	"fmt"

	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/apperrors"
	"github.com/M0rs-Ruki/WhatsApp-Campaigner-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditDecision tells the ledger how to move the money for a permitted
// credit: a zero SenderDebit means the credit is minted (the sender acts as
// a balance source), a non-zero SenderDebit makes the transfer zero-sum
// between sender and receiver.
type CreditDecision struct {
	SenderDebit decimal.Decimal
}

// CreditPolicy decides who may move points and whether the transfer mints
// new balance or debits the sender. It is pure: it inspects the sender's
// role and the balance it is handed, never the store.
type CreditPolicy struct{}

// CanCredit reports whether the role is allowed to credit other accounts at
// all.
func (CreditPolicy) CanCredit(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleReseller:
		return true
	case domain.RoleUser:
		return false
	}
	return false
}

// AuthorizeCredit applies the transfer rules for the sender's role.
//
//   - ADMIN credits any account without limit; nothing is debited (mint).
//   - RESELLER credits only up to its own current balance and is debited by
//     the same amount (zero-sum transfer).
//   - USER may not credit other accounts.
//
// senderBalance must be the balance observed inside the unit of work, so the
// reseller cap is enforced against a locked value.
func (p CreditPolicy) AuthorizeCredit(senderRole domain.Role, amount, senderBalance decimal.Decimal) (CreditDecision, error) {
	switch senderRole {
	case domain.RoleAdmin:
		return CreditDecision{SenderDebit: decimal.Zero}, nil
	case domain.RoleReseller:
		if senderBalance.LessThan(amount) {
			return CreditDecision{}, fmt.Errorf("%w: sender balance %s is less than %s",
				apperrors.ErrInsufficientBalance, senderBalance.String(), amount.String())
		}
		return CreditDecision{SenderDebit: amount}, nil
	case domain.RoleUser:
		return CreditDecision{}, fmt.Errorf("%w: role %s may not credit accounts", apperrors.ErrForbidden, senderRole)
	}
	return CreditDecision{}, fmt.Errorf("%w: unknown role %q", apperrors.ErrForbidden, senderRole)
}
