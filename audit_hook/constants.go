package audithook

// Action constants for audit events.
const (
	// Record actions
	ActionCustomerAdded   = "customer.added"
	ActionItemAdded       = "item.added"
	ActionInvoiceCreated  = "invoice.created"
	ActionInvoiceDeleted  = "invoice.deleted"
	ActionPaymentRecorded = "payment.recorded"

	// Whole-state actions
	ActionBooksRestored = "books.restored"
	ActionBooksReset    = "books.reset"
)

// Resource constants for audit events.
const (
	ResourceCustomer = "customer"
	ResourceItem     = "item"
	ResourceInvoice  = "invoice"
	ResourcePayment  = "payment"
	ResourceBooks    = "books"
)

// Category constants for audit events.
const (
	CategoryRecords = "records"
	CategoryPayment = "payment"
	CategorySystem  = "system"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
