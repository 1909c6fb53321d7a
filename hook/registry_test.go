package hook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/hook"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/types"
)

// recorder implements every hook interface and records what it saw.
type recorder struct {
	name      string
	fail      error
	initSnaps []*store.Snapshot
	customers []customer.Customer
	payments  []payment.Payment
	deleted   []id.InvoiceID
	cascaded  [][]payment.Payment
	resets    int
	shutdowns int
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) OnInit(_ context.Context, snap *store.Snapshot) error {
	r.initSnaps = append(r.initSnaps, snap)
	return r.fail
}

func (r *recorder) OnShutdown(_ context.Context) error {
	r.shutdowns++
	return r.fail
}

func (r *recorder) OnCustomerAdded(_ context.Context, c customer.Customer) error {
	r.customers = append(r.customers, c)
	return r.fail
}

func (r *recorder) OnPaymentRecorded(_ context.Context, p payment.Payment) error {
	r.payments = append(r.payments, p)
	return r.fail
}

func (r *recorder) OnInvoiceDeleted(_ context.Context, invID id.InvoiceID, cascaded []payment.Payment) error {
	r.deleted = append(r.deleted, invID)
	r.cascaded = append(r.cascaded, cascaded)
	return r.fail
}

func (r *recorder) OnReset(_ context.Context) error {
	r.resets++
	return r.fail
}

func TestRegisterAndDispatch(t *testing.T) {
	reg := hook.NewRegistry()
	rec := &recorder{name: "recorder"}

	if err := reg.Register(rec); err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Count() != 1 {
		t.Fatalf("expected 1 hook, got %d", reg.Count())
	}
	if reg.Get("recorder") == nil {
		t.Error("Get should find the registered hook")
	}
	if reg.Get("missing") != nil {
		t.Error("Get should return nil for unknown names")
	}

	ctx := context.Background()
	reg.EmitInit(ctx, store.Empty())
	reg.EmitCustomerAdded(ctx, customer.Customer{ID: id.NewCustomerID(), Name: "John Doe"})

	invID := id.NewInvoiceID()
	cascaded := []payment.Payment{{ID: id.NewPaymentID(), InvoiceID: invID, Amount: types.Cents(800)}}
	reg.EmitInvoiceDeleted(ctx, invID, cascaded)
	reg.EmitPaymentRecorded(ctx, payment.Payment{ID: id.NewPaymentID(), Amount: types.Cents(400)})
	reg.EmitReset(ctx)
	reg.EmitShutdown(ctx)

	if len(rec.initSnaps) != 1 {
		t.Errorf("expected 1 init, got %d", len(rec.initSnaps))
	}
	if len(rec.customers) != 1 || rec.customers[0].Name != "John Doe" {
		t.Errorf("customer payload wrong: %+v", rec.customers)
	}
	if len(rec.deleted) != 1 || rec.deleted[0].String() != invID.String() {
		t.Errorf("deleted invoice ID wrong: %+v", rec.deleted)
	}
	if len(rec.cascaded) != 1 || len(rec.cascaded[0]) != 1 {
		t.Errorf("cascaded payments wrong: %+v", rec.cascaded)
	}
	if len(rec.payments) != 1 {
		t.Errorf("expected 1 payment, got %d", len(rec.payments))
	}
	if rec.resets != 1 || rec.shutdowns != 1 {
		t.Errorf("resets=%d shutdowns=%d, want 1 and 1", rec.resets, rec.shutdowns)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	reg := hook.NewRegistry()
	if err := reg.Register(&recorder{name: "dup"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&recorder{name: "dup"}); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestFailingHookDoesNotStopDispatch(t *testing.T) {
	reg := hook.NewRegistry()
	bad := &recorder{name: "bad", fail: errors.New("boom")}
	good := &recorder{name: "good"}

	if err := reg.Register(bad); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(good); err != nil {
		t.Fatal(err)
	}

	reg.EmitCustomerAdded(context.Background(), customer.Customer{Name: "Jane"})

	if len(bad.customers) != 1 || len(good.customers) != 1 {
		t.Errorf("both hooks should see the event: bad=%d good=%d",
			len(bad.customers), len(good.customers))
	}
}

// narrow implements only one interface.
type narrow struct{ seen int }

func (n *narrow) Name() string { return "narrow" }

func (n *narrow) OnReset(_ context.Context) error {
	n.seen++
	return nil
}

func TestPartialInterfaceHook(t *testing.T) {
	reg := hook.NewRegistry()
	n := &narrow{}
	if err := reg.Register(n); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	reg.EmitCustomerAdded(ctx, customer.Customer{Name: "ignored"})
	reg.EmitReset(ctx)

	if n.seen != 1 {
		t.Errorf("expected exactly the reset event, got %d", n.seen)
	}
}
