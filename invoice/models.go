// Package invoice defines the invoice record, its frozen line items, and
// the draft form an invoice is created from.
package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

// Draft validation errors. The root package re-exports these so callers
// can match them without importing this package.
var (
	ErrNotFound      = errors.New("ledger: invoice not found")
	ErrEmptyInvoice  = errors.New("ledger: invoice requires at least one line")
	ErrInvalidAmount = errors.New("ledger: invalid amount")
	ErrInvalidInput  = errors.New("ledger: invalid input")
)

// Invoice is a finalized sale. The customer snapshot, the lines, and the
// total are frozen at creation time; later edits to the customer or to
// inventory prices do not flow back into an existing invoice.
type Invoice struct {
	types.Entity
	ID       id.InvoiceID      `json:"id"`
	Date     types.Date        `json:"date"`
	Customer customer.Customer `json:"customer"`
	Items    []Line            `json:"items"`
	Delivery types.Money       `json:"delivery"`
	Total    types.Money       `json:"total"`
}

// Line is one immutable item line inside a saved invoice.
type Line struct {
	Name     string      `json:"name"`
	Qty      int64       `json:"qty"`
	Price    types.Money `json:"price"`
	Subtotal types.Money `json:"subtotal"`
}

// Draft is the mutable input form an invoice is created from. It names the
// customer rather than referencing one so that unknown customers can be
// minted during creation.
type Draft struct {
	CustomerName  string
	CustomerPhone string
	Date          types.Date
	Lines         []DraftLine
	Delivery      types.Money
}

// DraftLine is one pending line in a draft.
type DraftLine struct {
	Name  string
	Qty   int64
	Price types.Money
}

// Validate checks the draft before any state is touched. All rejections
// happen here, so creation never leaves a partial invoice behind.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.CustomerName) == "" {
		return fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}
	if len(d.Lines) == 0 {
		return ErrEmptyInvoice
	}
	if d.Delivery.IsNegative() {
		return fmt.Errorf("%w: delivery %s", ErrInvalidAmount, d.Delivery.FormatMajor())
	}
	for i, line := range d.Lines {
		if strings.TrimSpace(line.Name) == "" {
			return fmt.Errorf("%w: line %d has no name", ErrInvalidInput, i+1)
		}
		if line.Qty <= 0 {
			return fmt.Errorf("%w: line %d qty %d", ErrInvalidAmount, i+1, line.Qty)
		}
		if line.Price.IsNegative() {
			return fmt.Errorf("%w: line %d price %s", ErrInvalidAmount, i+1, line.Price.FormatMajor())
		}
	}
	return nil
}

// BuildLines materializes the draft lines with their subtotals.
func (d Draft) BuildLines() []Line {
	lines := make([]Line, 0, len(d.Lines))
	for _, dl := range d.Lines {
		lines = append(lines, Line{
			Name:     dl.Name,
			Qty:      dl.Qty,
			Price:    dl.Price,
			Subtotal: dl.Price.MultiplyQty(dl.Qty),
		})
	}
	return lines
}

// ComputeTotal returns sum(qty * price) over all lines plus delivery.
// This runs exactly once, at creation; the result is frozen on the invoice.
func (d Draft) ComputeTotal() types.Money {
	total := d.Delivery
	for _, dl := range d.Lines {
		total = total.Add(dl.Price.MultiplyQty(dl.Qty))
	}
	return total
}
