package models

import "github.com/shopspring/decimal"

// Summary holds aggregate totals for one user's transactions.
// Each total is exactly zero when the user has no rows in that partition.
type Summary struct {
	Balance  decimal.Decimal `json:"balance" db:"balance"`   // Sum of all amounts
	Income   decimal.Decimal `json:"income" db:"income"`     // Sum of positive amounts
	Expenses decimal.Decimal `json:"expenses" db:"expenses"` // Sum of negative amounts
}
