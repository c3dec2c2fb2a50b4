package db

import (
	"time"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// Contact represents a person in the database
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record converts the row to the wire representation
func (c Contact) Record() contact.Contact {
	return contact.Contact{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}
