package audithook_test

import (
	"context"
	"errors"
	"testing"

	audithook "github.com/brewbooks/ledger/audit_hook"
	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/types"
)

type captureRecorder struct {
	events []*audithook.AuditEvent
	err    error
}

func (r *captureRecorder) Record(_ context.Context, event *audithook.AuditEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func TestTrailRecordsCommittedChanges(t *testing.T) {
	rec := &captureRecorder{}
	trail := audithook.New(rec)
	ctx := context.Background()

	c := customer.Customer{ID: id.NewCustomerID(), Name: "John Doe"}
	if err := trail.OnCustomerAdded(ctx, c); err != nil {
		t.Fatalf("OnCustomerAdded: %v", err)
	}

	inv := invoice.Invoice{
		ID:       id.NewInvoiceID(),
		Customer: c,
		Items:    []invoice.Line{{Name: "Latte", Qty: 2, Price: types.Cents(550), Subtotal: types.Cents(1100)}},
		Total:    types.Cents(1100),
	}
	if err := trail.OnInvoiceCreated(ctx, inv); err != nil {
		t.Fatalf("OnInvoiceCreated: %v", err)
	}

	p := payment.Payment{ID: id.NewPaymentID(), InvoiceID: inv.ID, Amount: types.Cents(500)}
	if err := trail.OnPaymentRecorded(ctx, p); err != nil {
		t.Fatalf("OnPaymentRecorded: %v", err)
	}

	if len(rec.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(rec.events))
	}

	first := rec.events[0]
	if first.Action != audithook.ActionCustomerAdded {
		t.Errorf("action = %q, want %q", first.Action, audithook.ActionCustomerAdded)
	}
	if first.ResourceID != c.ID.String() {
		t.Errorf("resource id = %q, want %q", first.ResourceID, c.ID)
	}
	if first.Metadata["name"] != "John Doe" {
		t.Errorf("metadata name = %v, want John Doe", first.Metadata["name"])
	}

	second := rec.events[1]
	if second.Metadata["total_cents"] != int64(1100) {
		t.Errorf("metadata total_cents = %v, want 1100", second.Metadata["total_cents"])
	}

	third := rec.events[2]
	if third.Category != audithook.CategoryPayment {
		t.Errorf("category = %q, want %q", third.Category, audithook.CategoryPayment)
	}
}

func TestTrailActionFiltering(t *testing.T) {
	rec := &captureRecorder{}
	trail := audithook.New(rec, audithook.WithEnabledActions(audithook.ActionPaymentRecorded))
	ctx := context.Background()

	c := customer.Customer{ID: id.NewCustomerID(), Name: "Jane"}
	if err := trail.OnCustomerAdded(ctx, c); err != nil {
		t.Fatalf("OnCustomerAdded: %v", err)
	}
	p := payment.Payment{ID: id.NewPaymentID(), InvoiceID: id.NewInvoiceID(), Amount: types.Cents(100)}
	if err := trail.OnPaymentRecorded(ctx, p); err != nil {
		t.Fatalf("OnPaymentRecorded: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	if rec.events[0].Action != audithook.ActionPaymentRecorded {
		t.Errorf("action = %q, want %q", rec.events[0].Action, audithook.ActionPaymentRecorded)
	}
}

func TestTrailDisabledActions(t *testing.T) {
	rec := &captureRecorder{}
	trail := audithook.New(rec, audithook.WithDisabledActions(audithook.ActionBooksReset))
	ctx := context.Background()

	if err := trail.OnReset(ctx); err != nil {
		t.Fatalf("OnReset: %v", err)
	}
	if err := trail.OnInvoiceDeleted(ctx, id.NewInvoiceID(), nil); err != nil {
		t.Fatalf("OnInvoiceDeleted: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	if rec.events[0].Action != audithook.ActionInvoiceDeleted {
		t.Errorf("action = %q, want %q", rec.events[0].Action, audithook.ActionInvoiceDeleted)
	}
}

func TestTrailSwallowsRecorderErrors(t *testing.T) {
	rec := &captureRecorder{err: errors.New("backend down")}
	trail := audithook.New(rec)

	p := payment.Payment{ID: id.NewPaymentID(), InvoiceID: id.NewInvoiceID(), Amount: types.Cents(100)}
	if err := trail.OnPaymentRecorded(context.Background(), p); err != nil {
		t.Fatalf("recorder failure must not propagate, got %v", err)
	}
}
