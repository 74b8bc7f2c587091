package domain

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ChartOfAccount is one node in the hierarchical chart of accounts.
// Header accounts group leaves; only active leaf accounts are valid
// posting targets.
type ChartOfAccount struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Account code, unique (e.g. "1-1100")
	Name            string      `json:"name"`            // Display name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> chart_of_accounts.account_id
	IsHeader        bool        `json:"isHeader"`        // Header rows are grouping-only
	CurrencyCode    string      `json:"currencyCode"`    // ISO 4217
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// Postable reports whether the account may appear on a journal line.
func (a ChartOfAccount) Postable() bool {
	return a.IsActive && !a.IsHeader
}
