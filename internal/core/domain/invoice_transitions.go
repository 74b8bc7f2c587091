package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceEvent is a lifecycle trigger. The transition table below is the
// single authority on which (status, event) combinations are legal; callers
// never flip the status field directly.
type InvoiceEvent string

const (
	EventIssue               InvoiceEvent = "ISSUE"
	EventPaymentVerified     InvoiceEvent = "PAYMENT_VERIFIED"
	EventStartProcessing     InvoiceEvent = "START_PROCESSING"
	EventComplete            InvoiceEvent = "COMPLETE"
	EventOverdue             InvoiceEvent = "OVERDUE"
	EventUnblock             InvoiceEvent = "UNBLOCK"
	EventCancel              InvoiceEvent = "CANCEL"
	EventOverpaymentDetected InvoiceEvent = "OVERPAYMENT_DETECTED"
	EventResolveTransferred  InvoiceEvent = "RESOLVE_TRANSFERRED"
	EventResolveReceived     InvoiceEvent = "RESOLVE_RECEIVED"
	EventRefundRequested     InvoiceEvent = "REFUND_REQUESTED"
	EventRefundConfirmed     InvoiceEvent = "REFUND_CONFIRMED"
	EventRefundCanceled      InvoiceEvent = "REFUND_CANCELED"
	EventOrderUpdated        InvoiceEvent = "ORDER_UPDATED"
)

// derivedFromAmounts marks the PAYMENT_VERIFIED target as computed from the
// paid/total amounts rather than read from the table.
const derivedFromAmounts = InvoiceStatus("__DERIVED__")

// transitionTable enumerates every legal transition. Anything absent here is
// an ErrInvalidTransition; there are no scattered status ifs anywhere else.
var transitionTable = map[InvoiceStatus]map[InvoiceEvent]InvoiceStatus{
	StatusDraft: {
		EventIssue:        StatusTentative,
		EventOrderUpdated: StatusOrderUpdated,
	},
	StatusTentative: {
		EventPaymentVerified:     derivedFromAmounts,
		EventOverdue:             StatusOverdue,
		EventOverpaymentDetected: StatusOverpaid,
		EventOrderUpdated:        StatusOrderUpdated,
	},
	StatusPartialPaid: {
		EventPaymentVerified:     derivedFromAmounts,
		EventOverdue:             StatusOverdue,
		EventOverpaymentDetected: StatusOverpaid,
		EventOrderUpdated:        StatusOrderUpdated,
	},
	StatusPaid: {
		EventStartProcessing:     StatusProcessing,
		EventOverpaymentDetected: StatusOverpaid,
		EventOrderUpdated:        StatusOrderUpdated,
	},
	StatusProcessing: {
		EventComplete:     StatusCompleted,
		EventOrderUpdated: StatusOrderUpdated,
	},
	StatusOverdue: {
		EventUnblock:      StatusTentative,
		EventCancel:       StatusCanceled,
		EventOrderUpdated: StatusOrderUpdated,
	},
	StatusOverpaid: {
		EventResolveTransferred: StatusOverpaidTransferred,
		EventResolveReceived:    StatusOverpaidReceived,
		EventRefundRequested:    StatusOverpaidRefundPending,
		EventOrderUpdated:       StatusOrderUpdated,
	},
	StatusOverpaidRefundPending: {
		EventRefundConfirmed: StatusRefunded,
		EventRefundCanceled:  StatusRefundCanceled,
		EventOrderUpdated:    StatusOrderUpdated,
	},
	StatusOrderUpdated: {
		EventIssue: StatusTentative, // Re-billing re-issues the invoice
	},
}

// TransitionInput carries the context a transition may need besides the
// event itself: the acting user and the clock for audit stamps.
type TransitionInput struct {
	Event   InvoiceEvent
	ActorID string
	Now     time.Time
}

// Transition applies one lifecycle event to a copy of the invoice and
// returns the result. It is a pure function of (current status, event,
// amounts); on an illegal combination it returns ErrInvalidTransition via
// the sentinel and the input invoice is left untouched.
func Transition(inv Invoice, in TransitionInput) (Invoice, error) {
	events, ok := transitionTable[inv.Status]
	if !ok {
		return inv, newTransitionError(inv.Status, in.Event)
	}
	target, ok := events[in.Event]
	if !ok {
		return inv, newTransitionError(inv.Status, in.Event)
	}

	if target == derivedFromAmounts {
		target = deriveSettlementStatus(inv.PaidAmount, inv.TotalAmount, inv.Status)
	}

	next := inv
	next.Status = target
	next.RemainingAmount = remainingOf(next.TotalAmount, next.PaidAmount)

	switch target {
	case StatusPartialPaid, StatusPaid:
		// First verified money clears any block or overdue flag.
		next.IsBlocked = false
		next.IsOverdue = false
	case StatusOverdue:
		next.IsBlocked = true
		next.IsOverdue = true
		next.OverdueActivatedBy = in.ActorID
		at := in.Now
		next.OverdueActivatedAt = &at
	case StatusTentative:
		if in.Event == EventUnblock {
			next.IsBlocked = false
			next.IsOverdue = false
			next.OverdueActivatedBy = ""
			next.OverdueActivatedAt = nil
		}
	case StatusOverpaid:
		next.OverpaidExcess = next.Excess()
	}

	next.LastUpdatedAt = in.Now
	next.LastUpdatedBy = in.ActorID
	return next, nil
}

// deriveSettlementStatus maps the paid/total relation to the settlement
// state: zero paid stays where it was, a partial payment is PARTIAL_PAID,
// exact settlement is PAID. Overpayment is routed through
// EventOverpaymentDetected by the verification service, not here.
func deriveSettlementStatus(paid, total decimal.Decimal, current InvoiceStatus) InvoiceStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return current
	case paid.LessThan(total):
		return StatusPartialPaid
	default:
		return StatusPaid
	}
}

// remainingOf floors total-paid at zero so overpayment never produces a
// negative remaining amount.
func remainingOf(total, paid decimal.Decimal) decimal.Decimal {
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
