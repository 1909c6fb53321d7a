// Package report derives financial figures from a ledger snapshot.
// Every function is pure: it reads the snapshot and computes, nothing
// here caches or mutates.
package report

import (
	"fmt"
	"strings"

	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/types"
)

// PaidForInvoice sums all payments recorded against the invoice.
// An unknown invoice simply has no payments and sums to zero.
func PaidForInvoice(snap *store.Snapshot, invID id.InvoiceID) types.Money {
	var paid types.Money
	for _, p := range snap.Payments {
		if p.InvoiceID.String() == invID.String() {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// OutstandingForInvoice returns total minus paid for one invoice. The
// result goes negative when the invoice was knowingly overpaid; that is
// a fact worth showing, not an error.
func OutstandingForInvoice(snap *store.Snapshot, invID id.InvoiceID) (types.Money, error) {
	inv := findInvoice(snap, invID)
	if inv == nil {
		return 0, fmt.Errorf("%w: %s", invoice.ErrNotFound, invID)
	}
	return inv.Total.Subtract(PaidForInvoice(snap, invID)), nil
}

// OutstandingForCustomer sums the outstanding balance across all of the
// customer's invoices, matched by name case-insensitively. Each invoice
// contributes at least zero: one overpaid invoice never hides debt on
// another.
func OutstandingForCustomer(snap *store.Snapshot, customerName string) types.Money {
	var total types.Money
	for i := range snap.Invoices {
		inv := &snap.Invoices[i]
		if !strings.EqualFold(inv.Customer.Name, customerName) {
			continue
		}
		due := inv.Total.Subtract(PaidForInvoice(snap, inv.ID))
		total = total.Add(due.ClampZero())
	}
	return total
}

// Totals is the aggregate money position of the whole ledger.
type Totals struct {
	TotalSales  types.Money
	TotalPaid   types.Money
	TotalCredit types.Money
}

// ComputeTotals sums every invoice and every payment. TotalCredit is
// sales minus paid, floored at zero: overpayments do not turn the shop's
// receivables negative.
func ComputeTotals(snap *store.Snapshot) Totals {
	var t Totals
	for _, inv := range snap.Invoices {
		t.TotalSales = t.TotalSales.Add(inv.Total)
	}
	for _, p := range snap.Payments {
		t.TotalPaid = t.TotalPaid.Add(p.Amount)
	}
	t.TotalCredit = t.TotalSales.Subtract(t.TotalPaid).ClampZero()
	return t
}

// DaySales is one calendar day's invoice volume.
type DaySales struct {
	Date  types.Date
	Total types.Money
}

// DailySales returns invoice totals per day over the inclusive range
// [from, to], in chronological order. Days without invoices appear with
// a zero total, so the series is gap-free for charting.
func DailySales(snap *store.Snapshot, from, to types.Date) []DaySales {
	if to.Before(from) {
		return nil
	}

	byDay := make(map[types.Date]types.Money)
	for _, inv := range snap.Invoices {
		byDay[inv.Date] = byDay[inv.Date].Add(inv.Total)
	}

	days := from.DaysUntil(to) + 1
	out := make([]DaySales, 0, days)
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, DaySales{Date: d, Total: byDay[d]})
	}
	return out
}

// LastNDays returns the n-day window ending at end, inclusive. The
// dashboard uses the 7-day form.
func LastNDays(snap *store.Snapshot, end types.Date, n int) []DaySales {
	if n <= 0 {
		return nil
	}
	return DailySales(snap, end.AddDays(-(n-1)), end)
}

func findInvoice(snap *store.Snapshot, invID id.InvoiceID) *invoice.Invoice {
	for i := range snap.Invoices {
		if snap.Invoices[i].ID.String() == invID.String() {
			return &snap.Invoices[i]
		}
	}
	return nil
}
