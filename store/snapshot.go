package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
)

// ErrInvalidSnapshot rejects a snapshot whose required collections are
// missing. The root package re-exports it.
var ErrInvalidSnapshot = errors.New("ledger: invalid snapshot")

var validate = validator.New()

// Snapshot is the entire ledger state as one document. This is also the
// persisted JSON layout: four named collections under one root object.
// Customers and invoices must be present; inventory and payments may be
// absent and default to empty.
type Snapshot struct {
	Customers []customer.Customer `json:"customers" validate:"required"`
	Inventory []inventory.Item    `json:"inventory"`
	Invoices  []invoice.Invoice   `json:"invoices" validate:"required"`
	Payments  []payment.Payment   `json:"payments"`
}

// Empty returns a snapshot with all four collections present but empty.
func Empty() *Snapshot {
	return &Snapshot{
		Customers: []customer.Customer{},
		Inventory: []inventory.Item{},
		Invoices:  []invoice.Invoice{},
		Payments:  []payment.Payment{},
	}
}

// Validate checks the structural contract of an externally supplied
// snapshot. A nil customers or invoices collection fails; empty ones are
// fine. Restore and import reject with this before touching any state.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return nil
}

// Normalize fills in what an older or hand-edited document may omit:
// nil optional collections become empty, and records without an ID get
// a freshly minted one.
func (s *Snapshot) Normalize() {
	if s.Customers == nil {
		s.Customers = []customer.Customer{}
	}
	if s.Inventory == nil {
		s.Inventory = []inventory.Item{}
	}
	if s.Invoices == nil {
		s.Invoices = []invoice.Invoice{}
	}
	if s.Payments == nil {
		s.Payments = []payment.Payment{}
	}

	for i := range s.Customers {
		if s.Customers[i].ID.IsNil() {
			s.Customers[i].ID = id.NewCustomerID()
		}
	}
	for i := range s.Inventory {
		if s.Inventory[i].ID.IsNil() {
			s.Inventory[i].ID = id.NewItemID()
		}
	}
	for i := range s.Invoices {
		if s.Invoices[i].ID.IsNil() {
			s.Invoices[i].ID = id.NewInvoiceID()
		}
	}
	for i := range s.Payments {
		if s.Payments[i].ID.IsNil() {
			s.Payments[i].ID = id.NewPaymentID()
		}
	}
}

// Clone returns a deep copy. Invoice line slices are copied too, so a
// mutation on the clone can never show through to readers of the
// original.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		Customers: append([]customer.Customer{}, s.Customers...),
		Inventory: append([]inventory.Item{}, s.Inventory...),
		Invoices:  append([]invoice.Invoice{}, s.Invoices...),
		Payments:  append([]payment.Payment{}, s.Payments...),
	}
	for i := range out.Invoices {
		out.Invoices[i].Items = append([]invoice.Line{}, s.Invoices[i].Items...)
	}
	return out
}
