package ledger

import (
	"errors"

	"github.com/brewbooks/ledger/backup"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/store"
)

// Sentinel errors for common failure scenarios. A few originate in
// subpackages and are re-exported here so callers only need errors.Is
// against this package.
var (
	// General errors
	ErrNotFound     = errors.New("ledger: not found")
	ErrInvalidInput = invoice.ErrInvalidInput

	// Record errors
	ErrCustomerNotFound = errors.New("ledger: customer not found")
	ErrItemNotFound     = errors.New("ledger: item not found")
	ErrInvoiceNotFound  = invoice.ErrNotFound
	ErrDuplicateName    = errors.New("ledger: duplicate name")

	// Amount and invoice errors
	ErrInvalidAmount = invoice.ErrInvalidAmount
	ErrEmptyInvoice  = invoice.ErrEmptyInvoice

	// Payment errors
	ErrExceedsOutstanding = errors.New("ledger: payment exceeds outstanding balance")

	// Snapshot and sync errors
	ErrInvalidSnapshot = store.ErrInvalidSnapshot
	ErrRemoteSync      = backup.ErrRemoteSync

	// Store errors
	ErrStoreClosed = errors.New("ledger: store is closed")
)

// IsNotFound returns true if the error is any not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInvoiceNotFound)
}

// IsValidation returns true when the caller's input was rejected before
// any state changed. Everything else is an infrastructure failure: the
// input was fine, the operation could not be carried out.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyInvoice) ||
		errors.Is(err, ErrExceedsOutstanding) ||
		errors.Is(err, ErrInvalidSnapshot)
}
