package audithook

import "log/slog"

// Option configures a Trail.
type Option func(*Trail)

// WithLogger sets the logger used for recorder failures.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Trail) {
		t.logger = logger
	}
}

// WithEnabledActions sets which actions to audit.
// If not called, all actions are audited.
func WithEnabledActions(actions ...string) Option {
	return func(t *Trail) {
		t.enabled = make(map[string]bool)
		for _, action := range actions {
			t.enabled[action] = true
		}
	}
}

// WithDisabledActions sets which actions to skip.
func WithDisabledActions(actions ...string) Option {
	return func(t *Trail) {
		if t.enabled == nil {
			t.enabled = make(map[string]bool)
			for _, action := range allActions() {
				t.enabled[action] = true
			}
		}
		for _, action := range actions {
			delete(t.enabled, action)
		}
	}
}

// allActions returns all known audit actions.
func allActions() []string {
	return []string{
		ActionCustomerAdded,
		ActionItemAdded,
		ActionInvoiceCreated,
		ActionInvoiceDeleted,
		ActionPaymentRecorded,
		ActionBooksRestored,
		ActionBooksReset,
	}
}
