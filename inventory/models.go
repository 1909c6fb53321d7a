// Package inventory defines the priced item catalog.
package inventory

import (
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

// Item is a sellable product with its current price. The price here is
// advisory for new invoices; totals on existing invoices never change
// when it does.
type Item struct {
	types.Entity
	ID    id.ItemID   `json:"id"`
	Name  string      `json:"name"`
	Price types.Money `json:"price"`
}

// Update carries optional field changes. Nil fields are left untouched.
type Update struct {
	Name  *string
	Price *types.Money
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Price == nil
}

// Apply merges the update into the item and bumps UpdatedAt.
func (i *Item) Apply(u Update) {
	if u.Name != nil {
		i.Name = *u.Name
	}
	if u.Price != nil {
		i.Price = *u.Price
	}
	i.Touch()
}
