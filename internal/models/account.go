package models

// AccountType mirrors domain.AccountType for persistence.
type AccountType string

// ChartOfAccount is the chart_of_accounts table row.
type ChartOfAccount struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	IsHeader        bool        `db:"is_header"`
	CurrencyCode    string      `db:"currency_code"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}

// AccountMapping is the account_mappings table row.
type AccountMapping struct {
	MappingID       string `db:"mapping_id"`
	Category        string `db:"category"`
	DebitAccountID  string `db:"debit_account_id"`
	CreditAccountID string `db:"credit_account_id"`
	Description     string `db:"description"`
	AuditFields
}
