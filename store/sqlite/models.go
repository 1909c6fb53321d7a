package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/inventory"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/payment"
	"github.com/brewbooks/ledger/types"
)

// Row models. Frozen structures (invoice lines, the customer snapshot on
// an invoice) are stored as JSON text columns rather than normalized
// tables; they are immutable facts and are only ever read back whole.

type customerRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (customerRow) TableName() string { return "customers" }

type itemRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string `gorm:"index"`
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (itemRow) TableName() string { return "inventory" }

type invoiceRow struct {
	ID            string `gorm:"primaryKey"`
	Date          string `gorm:"index"`
	CustomerJSON  string
	ItemsJSON     string
	DeliveryCents int64
	TotalCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (invoiceRow) TableName() string { return "invoices" }

type paymentRow struct {
	ID          string `gorm:"primaryKey"`
	InvoiceID   string `gorm:"index"`
	AmountCents int64
	Date        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (paymentRow) TableName() string { return "payments" }

func toCustomerRow(c customer.Customer) customerRow {
	return customerRow{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerRow(r customerRow) (customer.Customer, error) {
	cid, err := id.ParseCustomerID(r.ID)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("sqlite: customer row %q: %w", r.ID, err)
	}
	return customer.Customer{
		Entity: types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ID:     cid,
		Name:   r.Name,
		Phone:  r.Phone,
		Email:  r.Email,
	}, nil
}

func toItemRow(it inventory.Item) itemRow {
	return itemRow{
		ID:         it.ID.String(),
		Name:       it.Name,
		PriceCents: it.Price.Cents(),
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

func fromItemRow(r itemRow) (inventory.Item, error) {
	iid, err := id.ParseItemID(r.ID)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("sqlite: item row %q: %w", r.ID, err)
	}
	return inventory.Item{
		Entity: types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ID:     iid,
		Name:   r.Name,
		Price:  types.Cents(r.PriceCents),
	}, nil
}

func toInvoiceRow(inv invoice.Invoice) (invoiceRow, error) {
	custJSON, err := json.Marshal(inv.Customer)
	if err != nil {
		return invoiceRow{}, fmt.Errorf("sqlite: encode invoice customer: %w", err)
	}
	itemsJSON, err := json.Marshal(inv.Items)
	if err != nil {
		return invoiceRow{}, fmt.Errorf("sqlite: encode invoice lines: %w", err)
	}
	return invoiceRow{
		ID:            inv.ID.String(),
		Date:          inv.Date.String(),
		CustomerJSON:  string(custJSON),
		ItemsJSON:     string(itemsJSON),
		DeliveryCents: inv.Delivery.Cents(),
		TotalCents:    inv.Total.Cents(),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}, nil
}

func fromInvoiceRow(r invoiceRow) (invoice.Invoice, error) {
	iid, err := id.ParseInvoiceID(r.ID)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("sqlite: invoice row %q: %w", r.ID, err)
	}
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("sqlite: invoice row %q: %w", r.ID, err)
	}
	var cust customer.Customer
	if err := json.Unmarshal([]byte(r.CustomerJSON), &cust); err != nil {
		return invoice.Invoice{}, fmt.Errorf("sqlite: decode invoice customer %q: %w", r.ID, err)
	}
	var lines []invoice.Line
	if err := json.Unmarshal([]byte(r.ItemsJSON), &lines); err != nil {
		return invoice.Invoice{}, fmt.Errorf("sqlite: decode invoice lines %q: %w", r.ID, err)
	}
	return invoice.Invoice{
		Entity:   types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ID:       iid,
		Date:     date,
		Customer: cust,
		Items:    lines,
		Delivery: types.Cents(r.DeliveryCents),
		Total:    types.Cents(r.TotalCents),
	}, nil
}

func toPaymentRow(p payment.Payment) paymentRow {
	return paymentRow{
		ID:          p.ID.String(),
		InvoiceID:   p.InvoiceID.String(),
		AmountCents: p.Amount.Cents(),
		Date:        p.Date.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromPaymentRow(r paymentRow) (payment.Payment, error) {
	pid, err := id.ParsePaymentID(r.ID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("sqlite: payment row %q: %w", r.ID, err)
	}
	invID, err := id.ParseInvoiceID(r.InvoiceID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("sqlite: payment row %q: %w", r.ID, err)
	}
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("sqlite: payment row %q: %w", r.ID, err)
	}
	return payment.Payment{
		Entity:    types.Entity{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ID:        pid,
		InvoiceID: invID,
		Amount:    types.Cents(r.AmountCents),
		Date:      date,
	}, nil
}
