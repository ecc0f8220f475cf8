package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of money source an account represents.
// The enumeration mirrors payment instruments common in Malaysia.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountMaybank2u  AccountType = "maybank2u"
	AccountCIMBClicks AccountType = "cimb_clicks"
	AccountBoost      AccountType = "boost"
	AccountGrabPay    AccountType = "grabpay"
	AccountTouchNGo   AccountType = "touch_n_go"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit_card"
	AccountOther      AccountType = "other"
)

// ValidAccountType reports whether t is one of the declared account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountBank, AccountMaybank2u, AccountCIMBClicks, AccountBoost,
		AccountGrabPay, AccountTouchNGo, AccountCash, AccountCreditCard, AccountOther:
		return true
	}
	return false
}

// Account represents a money source owned by a single user.
// Accounts are soft-deleted by clearing IsActive, never removed, so past
// transactions keep a valid reference.
type Account struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
