package tui

import (
	"fmt"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// editor is the inline edit panel for one contact. It works on a copy of the
// contact's fields and only reaches the service through the list's
// UpdateContact.
type editor struct {
	id     string
	name   string
	fields fieldSet
}

// newEditor starts a working copy from c's current values
func newEditor(c contact.Contact) *editor {
	e := &editor{
		id:     c.ID,
		name:   c.Name,
		fields: newFieldSet(),
	}
	e.fields.set(c.Name, c.Email, c.Phone)
	e.fields.focusOn(fieldName)
	return e
}

// save validates the working copy and returns the full replacement payload
func (e *editor) save() (contact.Fields, error) {
	name, email, phone := e.fields.values()
	if err := contact.ValidateEdit(name, email, phone); err != nil {
		return contact.Fields{}, err
	}
	return contact.AllFields(name, email, phone), nil
}

func (e *editor) view() string {
	return fmt.Sprintf("Update Contact Information: %s\n\n", e.name) + e.fields.view()
}
