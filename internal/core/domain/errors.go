package domain

import (
	"fmt"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
)

// newTransitionError wraps the invalid-transition sentinel with the exact
// (status, event) pair so operators can see what was attempted.
func newTransitionError(status InvoiceStatus, event InvoiceEvent) error {
	return fmt.Errorf("%w: event %s is not legal from status %s", apperrors.ErrInvalidTransition, event, status)
}
