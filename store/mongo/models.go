package mongo

import (
	"fmt"
	"time"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/store"
	"github.com/brewbooks/ledger/types"
)

// Document models. IDs and dates are stored as strings so the document
// stays readable in a shell; amounts are integer cents.

type snapshotDoc struct {
	Key       string        `bson:"_id"`
	Customers []customerDoc `bson:"customers"`
	Inventory []itemDoc     `bson:"inventory"`
	Invoices  []invoiceDoc  `bson:"invoices"`
	Payments  []paymentDoc  `bson:"payments"`
	SavedAt   time.Time     `bson:"saved_at"`
}

type customerDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone,omitempty"`
	Email     string    `bson:"email,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type itemDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	PriceCents int64     `bson:"price_cents"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

type lineDoc struct {
	Name          string `bson:"name"`
	Qty           int64  `bson:"qty"`
	PriceCents    int64  `bson:"price_cents"`
	SubtotalCents int64  `bson:"subtotal_cents"`
}

type invoiceDoc struct {
	ID            string      `bson:"_id"`
	Date          string      `bson:"date"`
	Customer      customerDoc `bson:"customer"`
	Items         []lineDoc   `bson:"items"`
	DeliveryCents int64       `bson:"delivery_cents"`
	TotalCents    int64       `bson:"total_cents"`
	CreatedAt     time.Time   `bson:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at"`
}

type paymentDoc struct {
	ID          string    `bson:"_id"`
	InvoiceID   string    `bson:"invoice_id"`
	AmountCents int64     `bson:"amount_cents"`
	Date        string    `bson:"date"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toCustomerDoc(c customer.Customer) customerDoc {
	return customerDoc{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d customerDoc) toCustomer() (customer.Customer, error) {
	cid, err := id.ParseCustomerID(d.ID)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("mongo: customer %q: %w", d.ID, err)
	}
	return customer.Customer{
		Entity: types.Entity{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ID:     cid,
		Name:   d.Name,
		Phone:  d.Phone,
		Email:  d.Email,
	}, nil
}

func toSnapshotDoc(snap *store.Snapshot) (snapshotDoc, error) {
	doc := snapshotDoc{
		Key:       snapshotKey,
		Customers: make([]customerDoc, 0, len(snap.Customers)),
		Inventory: make([]itemDoc, 0, len(snap.Inventory)),
		Invoices:  make([]invoiceDoc, 0, len(snap.Invoices)),
		Payments:  make([]paymentDoc, 0, len(snap.Payments)),
		SavedAt:   time.Now().UTC(),
	}

	for _, c := range snap.Customers {
		doc.Customers = append(doc.Customers, toCustomerDoc(c))
	}
	for _, it := range snap.Inventory {
		doc.Inventory = append(doc.Inventory, itemDoc{
			ID:         it.ID.String(),
			Name:       it.Name,
			PriceCents: it.Price.Cents(),
			CreatedAt:  it.CreatedAt,
			UpdatedAt:  it.UpdatedAt,
		})
	}
	for _, inv := range snap.Invoices {
		lines := make([]lineDoc, 0, len(inv.Items))
		for _, l := range inv.Items {
			lines = append(lines, lineDoc{
				Name:          l.Name,
				Qty:           l.Qty,
				PriceCents:    l.Price.Cents(),
				SubtotalCents: l.Subtotal.Cents(),
			})
		}
		doc.Invoices = append(doc.Invoices, invoiceDoc{
			ID:            inv.ID.String(),
			Date:          inv.Date.String(),
			Customer:      toCustomerDoc(inv.Customer),
			Items:         lines,
			DeliveryCents: inv.Delivery.Cents(),
			TotalCents:    inv.Total.Cents(),
			CreatedAt:     inv.CreatedAt,
			UpdatedAt:     inv.UpdatedAt,
		})
	}
	for _, p := range snap.Payments {
		doc.Payments = append(doc.Payments, paymentDoc{
			ID:          p.ID.String(),
			InvoiceID:   p.InvoiceID.String(),
			AmountCents: p.Amount.Cents(),
			Date:        p.Date.String(),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return doc, nil
}

func (d snapshotDoc) toSnapshot() (*store.Snapshot, error) {
	snap := store.Empty()

	for _, cd := range d.Customers {
		c, err := cd.toCustomer()
		if err != nil {
			return nil, err
		}
		snap.Customers = append(snap.Customers, c)
	}
	for _, itd := range d.Inventory {
		iid, err := id.ParseItemID(itd.ID)
		if err != nil {
			return nil, fmt.Errorf("mongo: item %q: %w", itd.ID, err)
		}
		snap.Inventory = append(snap.Inventory, inventory.Item{
			Entity: types.Entity{CreatedAt: itd.CreatedAt, UpdatedAt: itd.UpdatedAt},
			ID:     iid,
			Name:   itd.Name,
			Price:  types.Cents(itd.PriceCents),
		})
	}
	for _, ivd := range d.Invoices {
		iid, err := id.ParseInvoiceID(ivd.ID)
		if err != nil {
			return nil, fmt.Errorf("mongo: invoice %q: %w", ivd.ID, err)
		}
		date, err := types.ParseDate(ivd.Date)
		if err != nil {
			return nil, fmt.Errorf("mongo: invoice %q: %w", ivd.ID, err)
		}
		cust, err := ivd.Customer.toCustomer()
		if err != nil {
			return nil, fmt.Errorf("mongo: invoice %q: %w", ivd.ID, err)
		}
		lines := make([]invoice.Line, 0, len(ivd.Items))
		for _, l := range ivd.Items {
			lines = append(lines, invoice.Line{
				Name:     l.Name,
				Qty:      l.Qty,
				Price:    types.Cents(l.PriceCents),
				Subtotal: types.Cents(l.SubtotalCents),
			})
		}
		snap.Invoices = append(snap.Invoices, invoice.Invoice{
			Entity:   types.Entity{CreatedAt: ivd.CreatedAt, UpdatedAt: ivd.UpdatedAt},
			ID:       iid,
			Date:     date,
			Customer: cust,
			Items:    lines,
			Delivery: types.Cents(ivd.DeliveryCents),
			Total:    types.Cents(ivd.TotalCents),
		})
	}
	for _, pd := range d.Payments {
		pid, err := id.ParsePaymentID(pd.ID)
		if err != nil {
			return nil, fmt.Errorf("mongo: payment %q: %w", pd.ID, err)
		}
		invID, err := id.ParseInvoiceID(pd.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("mongo: payment %q: %w", pd.ID, err)
		}
		date, err := types.ParseDate(pd.Date)
		if err != nil {
			return nil, fmt.Errorf("mongo: payment %q: %w", pd.ID, err)
		}
		snap.Payments = append(snap.Payments, payment.Payment{
			Entity:    types.Entity{CreatedAt: pd.CreatedAt, UpdatedAt: pd.UpdatedAt},
			ID:        pid,
			InvoiceID: invID,
			Amount:    types.Cents(pd.AmountCents),
			Date:      date,
		})
	}
	return snap, nil
}
