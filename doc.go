// Package ledger provides an embeddable invoicing and bookkeeping engine
// for a small shop.
//
// Ledger is designed as a library, not a service. Import it directly into
// your Go application. It provides:
//
//   - Customer and inventory records with case-insensitive name uniqueness
//   - Invoices with totals frozen at creation time
//   - Payments with an explicit overpayment confirmation step
//   - Pure derivations: balances, aggregate totals, daily sales series
//   - Whole-snapshot persistence: JSON file, SQLite, MongoDB, or in-memory
//   - Local backup files and a revision-checked cloud copy
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/brewbooks/ledger"
//	    "github.com/brewbooks/ledger/store/jsonfile"
//	)
//
//	l := ledger.New(jsonfile.New("ledger.json"))
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Invoices are created from drafts. Unknown customers and items are
// minted on the fly, in the same commit as the invoice itself:
//
//	inv, err := l.CreateInvoice(ctx, invoice.Draft{
//	    CustomerName: "John Doe",
//	    Lines: []invoice.DraftLine{
//	        {Name: "Latte", Qty: 2, Price: types.Cents(550)},
//	    },
//	    Delivery: types.Cents(100),
//	})
//
// An invoice's total is computed once, at creation, and never changes,
// even if the inventory prices it was built from do.
//
// Payments go through a two-step flow when the amount is suspicious:
//
//	check, err := l.CheckPayment(inv.ID, amount)
//	if check.ExceedsOutstanding {
//	    // ask the operator, then:
//	    p, err := l.RecordPayment(ctx, inv.ID, amount, date, true)
//	}
//
// # Consistency
//
// Every mutation builds the next snapshot, persists it through the
// store, and only then swaps it in. Readers always see a complete
// committed state, a failed save changes nothing, and deleting an
// invoice removes its payments in the same commit.
//
// All monetary calculations use integer arithmetic to avoid
// floating-point precision issues. The Money type represents amounts in
// cents.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	cust_01h2xcejqtf2nbrexx3vqjhp41  // Customer ID
//	inv_01h455vb4pex5vsknk084sn02q   // Invoice ID
//	pay_01h455vb4pex5vsknk084sn02q   // Payment ID
//
// TypeIDs are K-sortable, providing natural time-ordering of records.
package ledger
