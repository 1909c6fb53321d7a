package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
)

// callTimeout bounds every hook invocation. A slow collaborator must
// never stall a mutation's return path.
const callTimeout = 5 * time.Second

// Registry manages registered hooks and dispatches events to them.
// Hooks are cached per interface at registration time, so emission is a
// plain slice walk.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	onInit            []OnInit
	onShutdown        []OnShutdown
	onCustomerAdded   []OnCustomerAdded
	onItemAdded       []OnItemAdded
	onInvoiceCreated  []OnInvoiceCreated
	onInvoiceDeleted  []OnInvoiceDeleted
	onPaymentRecorded []OnPaymentRecorded
	onRestored        []OnRestored
	onReset           []OnReset
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook and caches its interfaces. Hook names must be
// unique.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnCustomerAdded); ok {
		r.onCustomerAdded = append(r.onCustomerAdded, v)
	}
	if v, ok := h.(OnItemAdded); ok {
		r.onItemAdded = append(r.onItemAdded, v)
	}
	if v, ok := h.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := h.(OnInvoiceDeleted); ok {
		r.onInvoiceDeleted = append(r.onInvoiceDeleted, v)
	}
	if v, ok := h.(OnPaymentRecorded); ok {
		r.onPaymentRecorded = append(r.onPaymentRecorded, v)
	}
	if v, ok := h.(OnRestored); ok {
		r.onRestored = append(r.onRestored, v)
	}
	if v, ok := h.(OnReset); ok {
		r.onReset = append(r.onReset, v)
	}

	r.logger.Info("hook registered", "name", h.Name())
	return nil
}

// Get returns a hook by name, or nil.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// EmitInit notifies hooks that the ledger has started.
func (r *Registry) EmitInit(ctx context.Context, snap *store.Snapshot) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInit(ctx, snap)
		}); err != nil {
			r.logger.Warn("hook OnInit failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitShutdown notifies hooks that the ledger is stopping.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("hook OnShutdown failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitCustomerAdded emits a committed customer record.
func (r *Registry) EmitCustomerAdded(ctx context.Context, c customer.Customer) {
	r.mu.RLock()
	hooks := r.onCustomerAdded
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnCustomerAdded(ctx, c)
		}); err != nil {
			r.logger.Warn("hook OnCustomerAdded failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitItemAdded emits a committed inventory item.
func (r *Registry) EmitItemAdded(ctx context.Context, item inventory.Item) {
	r.mu.RLock()
	hooks := r.onItemAdded
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnItemAdded(ctx, item)
		}); err != nil {
			r.logger.Warn("hook OnItemAdded failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitInvoiceCreated emits a committed invoice.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv invoice.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInvoiceCreated(ctx, inv)
		}); err != nil {
			r.logger.Warn("hook OnInvoiceCreated failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitInvoiceDeleted emits a deleted invoice ID together with the
// payments that were removed in the same cascade.
func (r *Registry) EmitInvoiceDeleted(ctx context.Context, invoiceID id.InvoiceID, cascaded []payment.Payment) {
	r.mu.RLock()
	hooks := r.onInvoiceDeleted
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInvoiceDeleted(ctx, invoiceID, cascaded)
		}); err != nil {
			r.logger.Warn("hook OnInvoiceDeleted failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitPaymentRecorded emits a committed payment.
func (r *Registry) EmitPaymentRecorded(ctx context.Context, p payment.Payment) {
	r.mu.RLock()
	hooks := r.onPaymentRecorded
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnPaymentRecorded(ctx, p)
		}); err != nil {
			r.logger.Warn("hook OnPaymentRecorded failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitRestored emits the snapshot that replaced all state.
func (r *Registry) EmitRestored(ctx context.Context, snap *store.Snapshot) {
	r.mu.RLock()
	hooks := r.onRestored
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnRestored(ctx, snap)
		}); err != nil {
			r.logger.Warn("hook OnRestored failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitReset notifies hooks that the ledger was cleared.
func (r *Registry) EmitReset(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onReset
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnReset(ctx)
		}); err != nil {
			r.logger.Warn("hook OnReset failed", "hook", h.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a hook function with a timeout. Hooks must never
// block the mutation path.
func (r *Registry) callWithTimeout(ctx context.Context, hookName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(callTimeout):
		return fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
