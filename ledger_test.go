package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brewbooks/ledger"
	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/store/memory"
	"github.com/brewbooks/ledger/types"
)

func newLedger(t *testing.T) (*ledger.Ledger, *memory.Store) {
	t.Helper()

	s := memory.New()
	fixed := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	l := ledger.New(s, ledger.WithClock(func() time.Time { return fixed }))
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return l, s
}

func latteDraft(customerName string) invoice.Draft {
	return invoice.Draft{
		CustomerName: customerName,
		Lines: []invoice.DraftLine{
			{Name: "Latte", Qty: 2, Price: types.Cents(550)},
		},
		Delivery: types.Cents(100),
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	if _, err := l.AddCustomer(ctx, "John Doe", "555-0101", ""); err != nil {
		t.Fatal(err)
	}

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if inv.Total != types.Cents(1200) {
		t.Fatalf("total: got %v, want %v", inv.Total, types.Cents(1200))
	}
	if inv.Customer.Phone != "555-0101" {
		t.Errorf("customer snapshot lost the phone: %+v", inv.Customer)
	}

	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(800), types.Date{}, false); err != nil {
		t.Fatal(err)
	}
	due, err := l.OutstandingForInvoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if due != types.Cents(400) {
		t.Errorf("after 8.00: got %v, want %v", due, types.Cents(400))
	}

	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(400), types.Date{}, false); err != nil {
		t.Fatal(err)
	}
	due, err = l.OutstandingForInvoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if due != types.Cents(0) {
		t.Errorf("after 4.00 more: got %v, want zero", due)
	}
}

func TestOverpaymentFlow(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}

	check, err := l.CheckPayment(inv.ID, types.Cents(1700))
	if err != nil {
		t.Fatal(err)
	}
	if !check.ExceedsOutstanding {
		t.Error("17.00 against a 12.00 invoice should exceed")
	}
	if check.Outstanding != types.Cents(1200) {
		t.Errorf("outstanding in check: got %v, want %v", check.Outstanding, types.Cents(1200))
	}

	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(1700), types.Date{}, false); !errors.Is(err, ledger.ErrExceedsOutstanding) {
		t.Fatalf("got %v, want ErrExceedsOutstanding", err)
	}
	if len(l.Payments()) != 0 {
		t.Fatal("rejected payment must not be recorded")
	}

	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(1700), types.Date{}, true); err != nil {
		t.Fatal(err)
	}

	due, err := l.OutstandingForInvoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if due != types.Cents(-500) {
		t.Errorf("overpaid invoice: got %v, want %v", due, types.Cents(-500))
	}

	// The customer aggregate clamps the overpaid invoice at zero.
	if owed := l.OutstandingForCustomer("John Doe"); owed != types.Cents(0) {
		t.Errorf("customer aggregate: got %v, want zero", owed)
	}
}

func TestImplicitCreationExactlyOnce(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	if _, err := l.CreateInvoice(ctx, latteDraft("Walk In")); err != nil {
		t.Fatal(err)
	}

	if c, err := l.CustomerByName("walk in"); err != nil || c.Name != "Walk In" {
		t.Fatalf("implicit customer not created: %v %+v", err, c)
	}
	if item, err := l.ItemByName("latte"); err != nil || item.Price != types.Cents(550) {
		t.Fatalf("implicit item not created: %v %+v", err, item)
	}

	// Same names again must reuse the existing records.
	if _, err := l.CreateInvoice(ctx, latteDraft("walk in")); err != nil {
		t.Fatal(err)
	}
	if n := len(l.Customers()); n != 1 {
		t.Errorf("expected 1 customer, got %d", n)
	}
	if n := len(l.Items()); n != 1 {
		t.Errorf("expected 1 item, got %d", n)
	}
}

func TestDuplicateNamesRejectedCaseInsensitively(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	if _, err := l.AddCustomer(ctx, "John Doe", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddCustomer(ctx, "john doe", "", ""); !errors.Is(err, ledger.ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}

	if _, err := l.AddItem(ctx, "Latte", types.Cents(550)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddItem(ctx, "LATTE", types.Cents(600)); !errors.Is(err, ledger.ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}

	// Renaming onto another record's name is rejected too.
	jane, err := l.AddCustomer(ctx, "Jane Roe", "", "")
	if err != nil {
		t.Fatal(err)
	}
	newName := "JOHN DOE"
	if _, err := l.UpdateCustomer(ctx, jane.ID, customer.Update{Name: &newName}); !errors.Is(err, ledger.ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}
}

func TestDeleteInvoiceCascadesPayments(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(800), types.Date{}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(200), types.Date{}, false); err != nil {
		t.Fatal(err)
	}

	if err := l.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatal(err)
	}
	if n := len(l.Invoices()); n != 0 {
		t.Errorf("expected 0 invoices, got %d", n)
	}
	if n := len(l.Payments()); n != 0 {
		t.Errorf("payments must be cascaded, got %d left", n)
	}

	err = l.DeleteInvoice(ctx, inv.ID)
	if !errors.Is(err, ledger.ErrInvoiceNotFound) {
		t.Errorf("second delete: got %v, want ErrInvoiceNotFound", err)
	}
	if !ledger.IsNotFound(err) {
		t.Error("IsNotFound should match")
	}
}

func TestInvoiceTotalFrozenAcrossPriceEdits(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	item, err := l.AddItem(ctx, "Latte", types.Cents(550))
	if err != nil {
		t.Fatal(err)
	}
	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}

	newPrice := types.Cents(700)
	if _, err := l.UpdateItem(ctx, item.ID, inventory.Update{Price: &newPrice}); err != nil {
		t.Fatal(err)
	}

	got, err := l.Invoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != types.Cents(1200) {
		t.Errorf("total changed after price edit: got %v, want %v", got.Total, types.Cents(1200))
	}
	if got.Items[0].Price != types.Cents(550) {
		t.Errorf("line price changed after price edit: got %v", got.Items[0].Price)
	}
}

func TestEmptyDraftRejected(t *testing.T) {
	l, _ := newLedger(t)

	_, err := l.CreateInvoice(context.Background(), invoice.Draft{CustomerName: "John Doe"})
	if !errors.Is(err, ledger.ErrEmptyInvoice) {
		t.Errorf("got %v, want ErrEmptyInvoice", err)
	}
	if n := len(l.Customers()); n != 0 {
		t.Errorf("rejected draft must not mint a customer, got %d", n)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(800), types.Date{}, false); err != nil {
		t.Fatal(err)
	}

	saved := l.Snapshot()

	if err := l.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(l.Invoices()); n != 0 {
		t.Fatalf("reset should clear invoices, got %d", n)
	}

	if err := l.Restore(ctx, saved); err != nil {
		t.Fatal(err)
	}
	due, err := l.OutstandingForInvoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if due != types.Cents(400) {
		t.Errorf("after restore: got %v, want %v", due, types.Cents(400))
	}
}

func TestInvalidRestoreLeavesStateUntouched(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	if _, err := l.AddCustomer(ctx, "John Doe", "", ""); err != nil {
		t.Fatal(err)
	}

	bad := &store.Snapshot{Invoices: []invoice.Invoice{}}
	if err := l.Restore(ctx, bad); !errors.Is(err, ledger.ErrInvalidSnapshot) {
		t.Fatalf("got %v, want ErrInvalidSnapshot", err)
	}

	if n := len(l.Customers()); n != 1 {
		t.Errorf("state must be untouched after invalid restore, got %d customers", n)
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	l, s := newLedger(t)
	ctx := context.Background()

	if _, err := l.AddCustomer(ctx, "John Doe", "", ""); err != nil {
		t.Fatal(err)
	}

	s.FailSave = errors.New("disk full")
	if _, err := l.AddCustomer(ctx, "Jane Roe", "", ""); err == nil {
		t.Fatal("expected persistence error to surface")
	}
	if n := len(l.Customers()); n != 1 {
		t.Errorf("in-memory state must not advance past a failed save, got %d customers", n)
	}

	// Once the store recovers, the same mutation goes through.
	s.FailSave = nil
	if _, err := l.AddCustomer(ctx, "Jane Roe", "", ""); err != nil {
		t.Fatal(err)
	}
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	l, s := newLedger(t)
	ctx := context.Background()

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(800), types.Date{}, false); err != nil {
		t.Fatal(err)
	}

	l2 := ledger.New(s)
	if err := l2.Start(ctx); err != nil {
		t.Fatal(err)
	}
	due, err := l2.OutstandingForInvoice(inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if due != types.Cents(400) {
		t.Errorf("restarted ledger: got %v, want %v", due, types.Cents(400))
	}
}

func TestClockDrivesDates(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if inv.Date.String() != "2026-09-01" {
		t.Errorf("invoice date: got %s, want 2026-09-01", inv.Date)
	}

	p, err := l.RecordPayment(ctx, inv.ID, types.Cents(100), types.Date{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Date.String() != "2026-09-01" {
		t.Errorf("payment date: got %s, want 2026-09-01", p.Date)
	}
}

func TestOperationsBeforeStart(t *testing.T) {
	l := ledger.New(memory.New())

	if _, err := l.AddCustomer(context.Background(), "John Doe", "", ""); !errors.Is(err, ledger.ErrStoreClosed) {
		t.Errorf("got %v, want ErrStoreClosed", err)
	}
}

// paymentHook counts committed payments it was told about.
type paymentHook struct {
	seen []payment.Payment
}

func (h *paymentHook) Name() string { return "payment-counter" }

func (h *paymentHook) OnPaymentRecorded(_ context.Context, p payment.Payment) error {
	h.seen = append(h.seen, p)
	return nil
}

func TestHooksObserveCommittedPayments(t *testing.T) {
	h := &paymentHook{}
	s := memory.New()
	l := ledger.New(s, ledger.WithHook(h))
	ctx := context.Background()
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}

	inv, err := l.CreateInvoice(ctx, latteDraft("John Doe"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(500), types.Date{}, false); err != nil {
		t.Fatal(err)
	}

	// A rejected payment never reaches hooks.
	if _, err := l.RecordPayment(ctx, inv.ID, types.Cents(5000), types.Date{}, false); err == nil {
		t.Fatal("expected rejection")
	}

	if len(h.seen) != 1 || h.seen[0].Amount != types.Cents(500) {
		t.Errorf("hook should see exactly the committed payment, saw %+v", h.seen)
	}
}
