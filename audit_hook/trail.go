// Package audithook bridges committed ledger changes to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on
// any concrete trail storage. Callers inject a RecorderFunc adapter that
// bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/hook"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
)

// Compile-time interface checks.
var (
	_ hook.Hook              = (*Trail)(nil)
	_ hook.OnCustomerAdded   = (*Trail)(nil)
	_ hook.OnItemAdded       = (*Trail)(nil)
	_ hook.OnInvoiceCreated  = (*Trail)(nil)
	_ hook.OnInvoiceDeleted  = (*Trail)(nil)
	_ hook.OnPaymentRecorded = (*Trail)(nil)
	_ hook.OnRestored        = (*Trail)(nil)
	_ hook.OnReset           = (*Trail)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is one entry in the audit trail.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Trail emits an audit event for every committed ledger change.
type Trail struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates a Trail that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Trail {
	t := &Trail{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements hook.Hook.
func (t *Trail) Name() string { return "audit-trail" }

// ──────────────────────────────────────────────────
// Record hooks
// ──────────────────────────────────────────────────

// OnCustomerAdded implements hook.OnCustomerAdded.
func (t *Trail) OnCustomerAdded(ctx context.Context, c customer.Customer) error {
	return t.record(ctx, ActionCustomerAdded, SeverityInfo,
		ResourceCustomer, c.ID.String(), CategoryRecords,
		"name", c.Name,
	)
}

// OnItemAdded implements hook.OnItemAdded.
func (t *Trail) OnItemAdded(ctx context.Context, item inventory.Item) error {
	return t.record(ctx, ActionItemAdded, SeverityInfo,
		ResourceItem, item.ID.String(), CategoryRecords,
		"name", item.Name,
		"price_cents", item.Price.Cents(),
	)
}

// OnInvoiceCreated implements hook.OnInvoiceCreated.
func (t *Trail) OnInvoiceCreated(ctx context.Context, inv invoice.Invoice) error {
	return t.record(ctx, ActionInvoiceCreated, SeverityInfo,
		ResourceInvoice, inv.ID.String(), CategoryRecords,
		"customer", inv.Customer.Name,
		"date", inv.Date.String(),
		"lines", len(inv.Items),
		"total_cents", inv.Total.Cents(),
	)
}

// OnInvoiceDeleted implements hook.OnInvoiceDeleted.
func (t *Trail) OnInvoiceDeleted(ctx context.Context, invoiceID id.InvoiceID, cascaded []payment.Payment) error {
	return t.record(ctx, ActionInvoiceDeleted, SeverityWarning,
		ResourceInvoice, invoiceID.String(), CategoryRecords,
		"cascaded_payments", len(cascaded),
	)
}

// OnPaymentRecorded implements hook.OnPaymentRecorded.
func (t *Trail) OnPaymentRecorded(ctx context.Context, p payment.Payment) error {
	return t.record(ctx, ActionPaymentRecorded, SeverityInfo,
		ResourcePayment, p.ID.String(), CategoryPayment,
		"invoice_id", p.InvoiceID.String(),
		"amount_cents", p.Amount.Cents(),
		"date", p.Date.String(),
	)
}

// ──────────────────────────────────────────────────
// Whole-state hooks
// ──────────────────────────────────────────────────

// OnRestored implements hook.OnRestored.
func (t *Trail) OnRestored(ctx context.Context, snap *store.Snapshot) error {
	return t.record(ctx, ActionBooksRestored, SeverityWarning,
		ResourceBooks, "", CategorySystem,
		"customers", len(snap.Customers),
		"invoices", len(snap.Invoices),
		"payments", len(snap.Payments),
	)
}

// OnReset implements hook.OnReset.
func (t *Trail) OnReset(ctx context.Context) error {
	return t.record(ctx, ActionBooksReset, SeverityCritical,
		ResourceBooks, "", CategorySystem,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (t *Trail) record(
	ctx context.Context,
	action, severity string,
	resource, resourceID, category string,
	kvPairs ...any,
) error {
	if t.enabled != nil && !t.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    OutcomeSuccess,
		Severity:   severity,
	}

	if recErr := t.recorder.Record(ctx, evt); recErr != nil {
		t.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
