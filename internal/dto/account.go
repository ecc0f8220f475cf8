package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required,min=1,max=100"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=bank maybank2u cimb_clicks boost grabpay touch_n_go cash credit_card other"`
	Balance      *decimal.Decimal   `json:"balance"`      // Optional opening balance, defaults to zero
	CurrencyCode string             `json:"currencyCode"` // Optional, defaults to MYR
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	CurrencyCode  string             `json:"currencyCode"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		CurrencyCode:  acc.CurrencyCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
