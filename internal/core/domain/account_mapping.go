package domain

// EventCategory tags a business event with the ledger treatment it gets.
// Every category must have a row in the account mapping table before the
// first posting for it; there is no fallback pair.
type EventCategory string

const (
	CategorySalesHotel           EventCategory = "sales_hotel"
	CategorySalesFlight          EventCategory = "sales_flight"
	CategorySalesTour            EventCategory = "sales_tour"
	CategoryCashReceipt          EventCategory = "cash_receipt"
	CategoryPayroll              EventCategory = "payroll"
	CategoryOverpaymentTransfer  EventCategory = "overpayment_transfer"
	CategoryOverpaymentReceived  EventCategory = "overpayment_received"
	CategoryOverpaymentRefund    EventCategory = "overpayment_refund"
)

// AccountMapping resolves an event category to the (debit, credit) leaf
// account pair used for the default two-line posting. Read-only at posting
// time; administered through its own endpoints.
type AccountMapping struct {
	MappingID       string        `json:"mappingID"` // Primary Key (UUID)
	Category        EventCategory `json:"category"`  // Unique
	DebitAccountID  string        `json:"debitAccountID"`
	CreditAccountID string        `json:"creditAccountID"`
	Description     string        `json:"description"`
	AuditFields
}
