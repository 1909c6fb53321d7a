// Package payment defines payment records and the pre-payment check.
package payment

import (
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

// Payment is money received against a specific invoice. Payments are
// append-only; they are removed only when their invoice is deleted.
type Payment struct {
	types.Entity
	ID        id.PaymentID `json:"id"`
	InvoiceID id.InvoiceID `json:"invoice_id"`
	Amount    types.Money  `json:"amount"`
	Date      types.Date   `json:"date"`
}

// Check is the verdict of a would-this-overpay inquiry. It carries enough
// context for a caller to render a confirmation prompt.
type Check struct {
	InvoiceID          id.InvoiceID
	Outstanding        types.Money
	Amount             types.Money
	ExceedsOutstanding bool
}
