package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/hook"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/report"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/types"
)

// Ledger is the bookkeeping engine. All state lives in one snapshot;
// every mutation builds the next snapshot, persists it, and only then
// swaps it in. A failed save therefore never changes what readers see.
type Ledger struct {
	store  store.Store
	hooks  *hook.Registry
	logger *slog.Logger
	clock  func() time.Time

	mu      sync.RWMutex
	snap    *store.Snapshot
	running bool
}

// New creates a Ledger on the given store. Call Start before use.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  s,
		hooks:  hook.NewRegistry(),
		logger: slog.Default(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.hooks.WithLogger(logger)
	}
}

// WithHook registers a hook.
func WithHook(h hook.Hook) Option {
	return func(l *Ledger) {
		_ = l.hooks.Register(h)
	}
}

// WithClock sets the time source used for dates on new invoices and
// payments. Tests pin it to get deterministic records.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// Start loads the persisted snapshot and brings the ledger online. An
// empty store yields an empty ledger.
func (l *Ledger) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("ledger: load snapshot: %w", err)
	}
	if snap == nil {
		snap = store.Empty()
	}
	snap.Normalize()

	l.snap = snap
	l.running = true

	l.hooks.EmitInit(ctx, snap.Clone())

	l.logger.Info("ledger started",
		"customers", len(snap.Customers),
		"items", len(snap.Inventory),
		"invoices", len(snap.Invoices),
		"payments", len(snap.Payments),
	)
	return nil
}

// Stop shuts the ledger down and closes the store.
func (l *Ledger) Stop() error {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()

	l.hooks.EmitShutdown(context.Background())
	return l.store.Close()
}

// commit persists next and swaps it in. Caller holds l.mu. On error the
// current snapshot stays in place; the caller must not apply anything.
func (l *Ledger) commit(ctx context.Context, next *store.Snapshot) error {
	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("ledger: persist: %w", err)
	}
	l.snap = next
	return nil
}

// ensureRunning guards operations. Caller holds l.mu (either mode).
func (l *Ledger) ensureRunning() error {
	if !l.running {
		return ErrStoreClosed
	}
	return nil
}

// ──────────────────────────────────────────────────
// Customers
// ──────────────────────────────────────────────────

// AddCustomer creates a customer. Names are unique case-insensitively.
func (l *Ledger) AddCustomer(ctx context.Context, name, phone, email string) (customer.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return customer.Customer{}, fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return customer.Customer{}, err
	}

	if findCustomerByName(l.snap, name) != nil {
		return customer.Customer{}, fmt.Errorf("%w: customer %q", ErrDuplicateName, name)
	}

	c := customer.Customer{
		Entity: types.NewEntity(),
		ID:     id.NewCustomerID(),
		Name:   name,
		Phone:  phone,
		Email:  email,
	}

	next := l.snap.Clone()
	next.Customers = append(next.Customers, c)
	if err := l.commit(ctx, next); err != nil {
		return customer.Customer{}, err
	}

	l.hooks.EmitCustomerAdded(ctx, c)
	return c, nil
}

// UpdateCustomer applies the non-nil fields of upd. A name change is
// checked against the rest of the collection case-insensitively.
func (l *Ledger) UpdateCustomer(ctx context.Context, customerID id.CustomerID, upd customer.Update) (customer.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return customer.Customer{}, err
	}

	idx := findCustomerIndex(l.snap, customerID)
	if idx < 0 {
		return customer.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return customer.Customer{}, fmt.Errorf("%w: customer name required", ErrInvalidInput)
		}
		if other := findCustomerByName(l.snap, trimmed); other != nil && other.ID.String() != customerID.String() {
			return customer.Customer{}, fmt.Errorf("%w: customer %q", ErrDuplicateName, trimmed)
		}
		upd.Name = &trimmed
	}

	next := l.snap.Clone()
	next.Customers[idx].Apply(upd)
	if err := l.commit(ctx, next); err != nil {
		return customer.Customer{}, err
	}
	return next.Customers[idx], nil
}

// DeleteCustomer removes a customer record. Invoices keep their frozen
// customer snapshot, so history is unaffected.
func (l *Ledger) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return err
	}

	idx := findCustomerIndex(l.snap, customerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	next := l.snap.Clone()
	next.Customers = append(next.Customers[:idx], next.Customers[idx+1:]...)
	return l.commit(ctx, next)
}

// Customers returns all customer records.
func (l *Ledger) Customers() []customer.Customer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return append([]customer.Customer{}, l.snap.Customers...)
}

// CustomerByName finds a customer by name, case-insensitively.
func (l *Ledger) CustomerByName(name string) (customer.Customer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.ensureRunning(); err != nil {
		return customer.Customer{}, err
	}

	if c := findCustomerByName(l.snap, name); c != nil {
		return *c, nil
	}
	return customer.Customer{}, fmt.Errorf("%w: %q", ErrCustomerNotFound, name)
}

// ──────────────────────────────────────────────────
// Inventory
// ──────────────────────────────────────────────────

// AddItem creates an inventory item. Names are unique
// case-insensitively; the price may be zero but not negative.
func (l *Ledger) AddItem(ctx context.Context, name string, price types.Money) (inventory.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return inventory.Item{}, fmt.Errorf("%w: item name required", ErrInvalidInput)
	}
	if price.IsNegative() {
		return inventory.Item{}, fmt.Errorf("%w: price %s", ErrInvalidAmount, price.FormatMajor())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return inventory.Item{}, err
	}

	if findItemByName(l.snap, name) != nil {
		return inventory.Item{}, fmt.Errorf("%w: item %q", ErrDuplicateName, name)
	}

	item := inventory.Item{
		Entity: types.NewEntity(),
		ID:     id.NewItemID(),
		Name:   name,
		Price:  price,
	}

	next := l.snap.Clone()
	next.Inventory = append(next.Inventory, item)
	if err := l.commit(ctx, next); err != nil {
		return inventory.Item{}, err
	}

	l.hooks.EmitItemAdded(ctx, item)
	return item, nil
}

// UpdateItem applies the non-nil fields of upd. A price change affects
// future invoices only; existing totals are frozen.
func (l *Ledger) UpdateItem(ctx context.Context, itemID id.ItemID, upd inventory.Update) (inventory.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return inventory.Item{}, err
	}

	idx := findItemIndex(l.snap, itemID)
	if idx < 0 {
		return inventory.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return inventory.Item{}, fmt.Errorf("%w: item name required", ErrInvalidInput)
		}
		if other := findItemByName(l.snap, trimmed); other != nil && other.ID.String() != itemID.String() {
			return inventory.Item{}, fmt.Errorf("%w: item %q", ErrDuplicateName, trimmed)
		}
		upd.Name = &trimmed
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		return inventory.Item{}, fmt.Errorf("%w: price %s", ErrInvalidAmount, upd.Price.FormatMajor())
	}

	next := l.snap.Clone()
	next.Inventory[idx].Apply(upd)
	if err := l.commit(ctx, next); err != nil {
		return inventory.Item{}, err
	}
	return next.Inventory[idx], nil
}

// DeleteItem removes an item from the catalog. Invoice lines naming it
// are frozen facts and stay put.
func (l *Ledger) DeleteItem(ctx context.Context, itemID id.ItemID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return err
	}

	idx := findItemIndex(l.snap, itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	next := l.snap.Clone()
	next.Inventory = append(next.Inventory[:idx], next.Inventory[idx+1:]...)
	return l.commit(ctx, next)
}

// Items returns the whole catalog.
func (l *Ledger) Items() []inventory.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return append([]inventory.Item{}, l.snap.Inventory...)
}

// ItemByName finds an item by name, case-insensitively.
func (l *Ledger) ItemByName(name string) (inventory.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.ensureRunning(); err != nil {
		return inventory.Item{}, err
	}

	if item := findItemByName(l.snap, name); item != nil {
		return *item, nil
	}
	return inventory.Item{}, fmt.Errorf("%w: %q", ErrItemNotFound, name)
}

// ──────────────────────────────────────────────────
// Invoices
// ──────────────────────────────────────────────────

// CreateInvoice finalizes a draft into an invoice. An unknown customer
// name mints a customer record first; unknown item names mint inventory
// items at the line's price. The invoice, the minted records, and the
// frozen total all commit together or not at all.
func (l *Ledger) CreateInvoice(ctx context.Context, draft invoice.Draft) (invoice.Invoice, error) {
	if err := draft.Validate(); err != nil {
		return invoice.Invoice{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return invoice.Invoice{}, err
	}

	next := l.snap.Clone()

	var mintedCustomer *customer.Customer
	cust := findCustomerByName(next, draft.CustomerName)
	if cust == nil {
		c := customer.Customer{
			Entity: types.NewEntity(),
			ID:     id.NewCustomerID(),
			Name:   strings.TrimSpace(draft.CustomerName),
			Phone:  draft.CustomerPhone,
		}
		next.Customers = append(next.Customers, c)
		cust = &next.Customers[len(next.Customers)-1]
		mintedCustomer = cust
	}

	var mintedItems []inventory.Item
	for _, line := range draft.Lines {
		if findItemByName(next, line.Name) != nil {
			continue
		}
		item := inventory.Item{
			Entity: types.NewEntity(),
			ID:     id.NewItemID(),
			Name:   strings.TrimSpace(line.Name),
			Price:  line.Price,
		}
		next.Inventory = append(next.Inventory, item)
		mintedItems = append(mintedItems, item)
	}

	date := draft.Date
	if date.IsZero() {
		date = types.DateOf(l.clock())
	}

	inv := invoice.Invoice{
		Entity:   types.NewEntity(),
		ID:       nextInvoiceID(next),
		Date:     date,
		Customer: *cust,
		Items:    draft.BuildLines(),
		Delivery: draft.Delivery,
		Total:    draft.ComputeTotal(),
	}
	next.Invoices = append(next.Invoices, inv)

	if err := l.commit(ctx, next); err != nil {
		return invoice.Invoice{}, err
	}

	if mintedCustomer != nil {
		l.hooks.EmitCustomerAdded(ctx, *mintedCustomer)
	}
	for _, item := range mintedItems {
		l.hooks.EmitItemAdded(ctx, item)
	}
	l.hooks.EmitInvoiceCreated(ctx, inv)

	return inv, nil
}

// DeleteInvoice removes an invoice and every payment referencing it in
// one step. A payment must never outlive its invoice.
func (l *Ledger) DeleteInvoice(ctx context.Context, invoiceID id.InvoiceID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return err
	}

	idx := findInvoiceIndex(l.snap, invoiceID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	next := l.snap.Clone()
	next.Invoices = append(next.Invoices[:idx], next.Invoices[idx+1:]...)

	var cascaded []payment.Payment
	kept := next.Payments[:0]
	for _, p := range next.Payments {
		if p.InvoiceID.String() == invoiceID.String() {
			cascaded = append(cascaded, p)
			continue
		}
		kept = append(kept, p)
	}
	next.Payments = kept

	if err := l.commit(ctx, next); err != nil {
		return err
	}

	l.hooks.EmitInvoiceDeleted(ctx, invoiceID, cascaded)
	return nil
}

// Invoices returns all invoices.
func (l *Ledger) Invoices() []invoice.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return l.snap.Clone().Invoices
}

// Invoice returns one invoice by ID.
func (l *Ledger) Invoice(invoiceID id.InvoiceID) (invoice.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.ensureRunning(); err != nil {
		return invoice.Invoice{}, err
	}

	idx := findInvoiceIndex(l.snap, invoiceID)
	if idx < 0 {
		return invoice.Invoice{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}
	inv := l.snap.Invoices[idx]
	inv.Items = append([]invoice.Line{}, inv.Items...)
	return inv, nil
}

// ──────────────────────────────────────────────────
// Payments
// ──────────────────────────────────────────────────

// CheckPayment reports whether the amount would exceed the invoice's
// outstanding balance. Nothing is recorded; callers use the verdict to
// drive a confirmation step.
func (l *Ledger) CheckPayment(invoiceID id.InvoiceID, amount types.Money) (payment.Check, error) {
	if !amount.IsPositive() {
		return payment.Check{}, fmt.Errorf("%w: payment %s", ErrInvalidAmount, amount.FormatMajor())
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.ensureRunning(); err != nil {
		return payment.Check{}, err
	}

	idx := findInvoiceIndex(l.snap, invoiceID)
	if idx < 0 {
		return payment.Check{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	outstanding := l.snap.Invoices[idx].Total.Subtract(report.PaidForInvoice(l.snap, invoiceID))
	return payment.Check{
		InvoiceID:          invoiceID,
		Outstanding:        outstanding,
		Amount:             amount,
		ExceedsOutstanding: amount.GreaterThan(outstanding),
	}, nil
}

// RecordPayment records money received against an invoice. Unless
// allowOverpayment is set, an amount above the outstanding balance is
// rejected with ErrExceedsOutstanding; with it, the overpayment is
// recorded as given.
func (l *Ledger) RecordPayment(ctx context.Context, invoiceID id.InvoiceID, amount types.Money, date types.Date, allowOverpayment bool) (payment.Payment, error) {
	if !amount.IsPositive() {
		return payment.Payment{}, fmt.Errorf("%w: payment %s", ErrInvalidAmount, amount.FormatMajor())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return payment.Payment{}, err
	}

	idx := findInvoiceIndex(l.snap, invoiceID)
	if idx < 0 {
		return payment.Payment{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
	}

	outstanding := l.snap.Invoices[idx].Total.Subtract(report.PaidForInvoice(l.snap, invoiceID))
	if amount.GreaterThan(outstanding) && !allowOverpayment {
		return payment.Payment{}, fmt.Errorf("%w: %s due, %s offered",
			ErrExceedsOutstanding, outstanding.FormatMajor(), amount.FormatMajor())
	}

	if date.IsZero() {
		date = types.DateOf(l.clock())
	}

	p := payment.Payment{
		Entity:    types.NewEntity(),
		ID:        id.NewPaymentID(),
		InvoiceID: invoiceID,
		Amount:    amount,
		Date:      date,
	}

	next := l.snap.Clone()
	next.Payments = append(next.Payments, p)
	if err := l.commit(ctx, next); err != nil {
		return payment.Payment{}, err
	}

	l.hooks.EmitPaymentRecorded(ctx, p)
	return p, nil
}

// Payments returns all payment records.
func (l *Ledger) Payments() []payment.Payment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return append([]payment.Payment{}, l.snap.Payments...)
}

// ──────────────────────────────────────────────────
// Derived figures
// ──────────────────────────────────────────────────

// PaidForInvoice sums payments against the invoice.
func (l *Ledger) PaidForInvoice(invoiceID id.InvoiceID) types.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return 0
	}
	return report.PaidForInvoice(l.snap, invoiceID)
}

// OutstandingForInvoice returns total minus paid; negative when
// overpaid.
func (l *Ledger) OutstandingForInvoice(invoiceID id.InvoiceID) (types.Money, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.ensureRunning(); err != nil {
		return 0, err
	}
	return report.OutstandingForInvoice(l.snap, invoiceID)
}

// OutstandingForCustomer sums what the named customer still owes, with
// each invoice clamped at zero.
func (l *Ledger) OutstandingForCustomer(name string) types.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return 0
	}
	return report.OutstandingForCustomer(l.snap, name)
}

// Totals returns the ledger-wide money position.
func (l *Ledger) Totals() report.Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return report.Totals{}
	}
	return report.ComputeTotals(l.snap)
}

// DailySales returns per-day invoice volume over [from, to].
func (l *Ledger) DailySales(from, to types.Date) []report.DaySales {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return report.DailySales(l.snap, from, to)
}

// LastNDays returns the trailing n-day sales window ending today.
func (l *Ledger) LastNDays(n int) []report.DaySales {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snap == nil {
		return nil
	}
	return report.LastNDays(l.snap, types.DateOf(l.clock()), n)
}

// ──────────────────────────────────────────────────
// Whole-state operations
// ──────────────────────────────────────────────────

// Snapshot returns a deep copy of the current state, suitable for
// export or inspection.
func (l *Ledger) Snapshot() *store.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap.Clone()
}

// Restore replaces all ledger state with the given snapshot. The
// snapshot is validated first; on any failure the current state is
// untouched.
func (l *Ledger) Restore(ctx context.Context, snap *store.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return err
	}

	next := snap.Clone()
	next.Normalize()
	if err := l.commit(ctx, next); err != nil {
		return err
	}

	l.hooks.EmitRestored(ctx, next.Clone())
	l.logger.Info("ledger restored",
		"customers", len(next.Customers),
		"invoices", len(next.Invoices),
	)
	return nil
}

// Reset clears the ledger back to empty.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ensureRunning(); err != nil {
		return err
	}

	if err := l.commit(ctx, store.Empty()); err != nil {
		return err
	}

	l.hooks.EmitReset(ctx)
	l.logger.Info("ledger reset")
	return nil
}

// ──────────────────────────────────────────────────
// Lookups
// ──────────────────────────────────────────────────

func findCustomerByName(snap *store.Snapshot, name string) *customer.Customer {
	name = strings.TrimSpace(name)
	for i := range snap.Customers {
		if strings.EqualFold(snap.Customers[i].Name, name) {
			return &snap.Customers[i]
		}
	}
	return nil
}

func findCustomerIndex(snap *store.Snapshot, customerID id.CustomerID) int {
	for i := range snap.Customers {
		if snap.Customers[i].ID.String() == customerID.String() {
			return i
		}
	}
	return -1
}

func findItemByName(snap *store.Snapshot, name string) *inventory.Item {
	name = strings.TrimSpace(name)
	for i := range snap.Inventory {
		if strings.EqualFold(snap.Inventory[i].Name, name) {
			return &snap.Inventory[i]
		}
	}
	return nil
}

func findItemIndex(snap *store.Snapshot, itemID id.ItemID) int {
	for i := range snap.Inventory {
		if snap.Inventory[i].ID.String() == itemID.String() {
			return i
		}
	}
	return -1
}

func findInvoiceIndex(snap *store.Snapshot, invoiceID id.InvoiceID) int {
	for i := range snap.Invoices {
		if snap.Invoices[i].ID.String() == invoiceID.String() {
			return i
		}
	}
	return -1
}

// nextInvoiceID mints an invoice ID and re-rolls on the off chance it
// collides with an existing one.
func nextInvoiceID(snap *store.Snapshot) id.InvoiceID {
	for {
		candidate := id.NewInvoiceID()
		if findInvoiceIndex(snap, candidate) < 0 {
			return candidate
		}
	}
}
