// Package customer defines the customer record and its update form.
package customer

import (
	"github.com/brewbooks/ledger/id"
	"github.com/brewbooks/ledger/types"
)

// Customer is a person or business the shop invoices. Names are unique
// case-insensitively across the collection.
type Customer struct {
	types.Entity
	ID    id.CustomerID `json:"id"`
	Name  string        `json:"name"`
	Phone string        `json:"phone,omitempty"`
	Email string        `json:"email,omitempty"`
}

// Update carries optional field changes. Nil fields are left untouched.
type Update struct {
	Name  *string
	Phone *string
	Email *string
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Email == nil
}

// Apply merges the update into the customer and bumps UpdatedAt.
func (c *Customer) Apply(u Update) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	c.Touch()
}
