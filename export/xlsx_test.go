package export_test

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/brewbooks/ledger/customer"
	"github.com/brewbooks/ledger/export"
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/invoice"
	"github.com/brewbooks/ledger/types"
)

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:   id.NewInvoiceID(),
		Date: types.MustParseDate("2026-09-01"),
		Customer: customer.Customer{
			ID:    id.NewCustomerID(),
			Name:  "John Doe",
			Phone: "555-0101",
		},
		Items: []invoice.Line{
			{Name: "Latte", Qty: 2, Price: types.Cents(550), Subtotal: types.Cents(1100)},
			{Name: "Croissant", Qty: 1, Price: types.Cents(300), Subtotal: types.Cents(300)},
		},
		Delivery: types.Cents(100),
		Total:    types.Cents(1500),
	}
}

func TestWorkbook(t *testing.T) {
	inv := sampleInvoice()

	f, err := export.Workbook("Brew Books Coffee", inv)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Invoice", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Brew Books Coffee" {
		t.Errorf("A1: got %q, want shop name", got)
	}

	got, err = f.GetCellValue("Invoice", "B5")
	if err != nil {
		t.Fatal(err)
	}
	if got != "John Doe" {
		t.Errorf("B5: got %q, want customer name", got)
	}

	rows, err := f.GetRows("Invoice")
	if err != nil {
		t.Fatal(err)
	}

	var sawLatte, sawTotal bool
	for _, row := range rows {
		for _, cell := range row {
			if cell == "Latte" {
				sawLatte = true
			}
			if cell == "15.00" {
				sawTotal = true
			}
		}
	}
	if !sawLatte {
		t.Error("workbook should list the Latte line")
	}
	if !sawTotal {
		t.Error("workbook should show the 15.00 grand total")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.xlsx")

	if err := export.WriteFile(path, "Brew Books Coffee", sampleInvoice()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("saved workbook should open: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Invoice", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Brew Books Coffee" {
		t.Errorf("A1: got %q, want shop name", got)
	}
}
