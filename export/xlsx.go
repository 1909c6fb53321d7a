// Package export renders invoices into spreadsheet workbooks a shop can
// print or hand to a customer. It only reads the invoice record.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/brewbooks/ledger/invoice"
)

const sheet = "Invoice"

// Workbook renders one invoice into an xlsx workbook. Layout: shop
// header, the frozen customer snapshot, numbered item lines, delivery,
// grand total, footer.
func Workbook(shopName string, inv *invoice.Invoice) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export: drop default sheet: %w", err)
	}

	// Header
	f.SetCellValue(sheet, "A1", shopName)
	f.SetCellValue(sheet, "A2", "Invoice "+inv.ID.String())
	f.SetCellValue(sheet, "A3", "Date: "+inv.Date.String())

	// Customer snapshot
	f.SetCellValue(sheet, "A5", "Billed to:")
	f.SetCellValue(sheet, "B5", inv.Customer.Name)
	row := 6
	if inv.Customer.Phone != "" {
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), inv.Customer.Phone)
		row++
	}
	if inv.Customer.Email != "" {
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), inv.Customer.Email)
		row++
	}

	// Line table
	row++
	f.SetCellValue(sheet, "A"+fmt.Sprint(row), "#")
	f.SetCellValue(sheet, "B"+fmt.Sprint(row), "Item")
	f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Qty")
	f.SetCellValue(sheet, "D"+fmt.Sprint(row), "Price")
	f.SetCellValue(sheet, "E"+fmt.Sprint(row), "Subtotal")
	row++

	for i, line := range inv.Items {
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), i+1)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), line.Name)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), line.Qty)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), line.Price.FormatMajor())
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), line.Subtotal.FormatMajor())
		row++
	}

	// Totals
	if !inv.Delivery.IsZero() {
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), "Delivery")
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), inv.Delivery.FormatMajor())
		row++
	}
	f.SetCellValue(sheet, "D"+fmt.Sprint(row), "Total")
	f.SetCellValue(sheet, "E"+fmt.Sprint(row), inv.Total.FormatMajor())
	row += 2

	// Footer
	f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Thank you for your business!")

	return f, nil
}

// WriteFile renders the invoice and saves the workbook to path.
func WriteFile(path, shopName string, inv *invoice.Invoice) error {
	f, err := Workbook(shopName, inv)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
