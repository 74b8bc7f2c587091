package dto

import (
	"time"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	IsHeader        bool               `json:"isHeader"`        // Header accounts group children and reject postings
	CurrencyCode    string             `json:"currencyCode" binding:"required,len=3"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`     // Optional: New name
	IsActive *bool   `json:"isActive"` // Optional: New active status
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	IsHeader        bool               `json:"isHeader"`
	CurrencyCode    string             `json:"currencyCode"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.ChartOfAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.ChartOfAccount) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		IsHeader:        acc.IsHeader,
		CurrencyCode:    acc.CurrencyCode,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.ChartOfAccount to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.ChartOfAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// CreateAccountMappingRequest defines the data needed to map a business event
// category to its debit and credit accounts.
type CreateAccountMappingRequest struct {
	Category        string `json:"category" binding:"required"`
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`
	Description     string `json:"description"`
}

// UpdateAccountMappingRequest defines the data allowed for repointing a mapping.
type UpdateAccountMappingRequest struct {
	DebitAccountID  *string `json:"debitAccountID"`
	CreditAccountID *string `json:"creditAccountID"`
	Description     *string `json:"description"`
}

// AccountMappingResponse defines the data returned for an account mapping.
type AccountMappingResponse struct {
	MappingID       string    `json:"mappingID"`
	Category        string    `json:"category"`
	DebitAccountID  string    `json:"debitAccountID"`
	CreditAccountID string    `json:"creditAccountID"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy   string    `json:"lastUpdatedBy"`
}

// ToAccountMappingResponse converts a domain.AccountMapping to AccountMappingResponse DTO
func ToAccountMappingResponse(m *domain.AccountMapping) AccountMappingResponse {
	return AccountMappingResponse{
		MappingID:       m.MappingID,
		Category:        string(m.Category),
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		LastUpdatedAt:   m.LastUpdatedAt,
		LastUpdatedBy:   m.LastUpdatedBy,
	}
}

// ToAccountMappingResponses converts a slice of domain.AccountMapping to []AccountMappingResponse
func ToAccountMappingResponses(mappings []domain.AccountMapping) []AccountMappingResponse {
	responses := make([]AccountMappingResponse, len(mappings))
	for i, m := range mappings {
		responses[i] = ToAccountMappingResponse(&m)
	}
	return responses
}
