package ledger

import (
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

// Re-export common types for convenience so users don't have to import
// the types and id packages for everyday use.

// Money is re-exported from the types package.
type Money = types.Money

// Date is re-exported from the types package.
type Date = types.Date

// Entity is re-exported from the types package.
type Entity = types.Entity

// ID is the primary identifier type for all ledger entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix

// Re-export common constructors.
var (
	Cents         = types.Cents
	ParseMajor    = types.ParseMajor
	SumMoney      = types.SumMoney
	ParseDate     = types.ParseDate
	Today         = types.Today
	NewEntity     = types.NewEntity
	NewCustomerID = id.NewCustomerID
	NewItemID     = id.NewItemID
	NewInvoiceID  = id.NewInvoiceID
	NewPaymentID  = id.NewPaymentID
)
