// Package hook lets collaborators observe committed ledger changes.
// A hook runs after the mutation has been persisted and swapped in; it
// cannot veto or mutate anything.
package hook

import (
	"context"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called once when the ledger starts, after the persisted
// snapshot has been loaded.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, snap *store.Snapshot) error
}

// OnShutdown is called when the ledger is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Record hooks
// ──────────────────────────────────────────────────

// OnCustomerAdded fires for explicit adds and for customers minted
// implicitly during invoice creation.
type OnCustomerAdded interface {
	Hook
	OnCustomerAdded(ctx context.Context, c customer.Customer) error
}

// OnItemAdded fires for explicit adds and for items minted implicitly
// during invoice creation.
type OnItemAdded interface {
	Hook
	OnItemAdded(ctx context.Context, item inventory.Item) error
}

// OnInvoiceCreated fires after an invoice is committed.
type OnInvoiceCreated interface {
	Hook
	OnInvoiceCreated(ctx context.Context, inv invoice.Invoice) error
}

// OnInvoiceDeleted fires after an invoice and its cascaded payments are
// removed together.
type OnInvoiceDeleted interface {
	Hook
	OnInvoiceDeleted(ctx context.Context, invoiceID id.InvoiceID, cascaded []payment.Payment) error
}

// OnPaymentRecorded fires after a payment is committed.
type OnPaymentRecorded interface {
	Hook
	OnPaymentRecorded(ctx context.Context, p payment.Payment) error
}

// ──────────────────────────────────────────────────
// Whole-state hooks
// ──────────────────────────────────────────────────

// OnRestored fires after a snapshot restore replaced all state.
type OnRestored interface {
	Hook
	OnRestored(ctx context.Context, snap *store.Snapshot) error
}

// OnReset fires after the ledger was cleared back to empty.
type OnReset interface {
	Hook
	OnReset(ctx context.Context) error
}
