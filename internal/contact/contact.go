// Package contact holds the contact record exchanged with the remote
// contact service and the pure list operations the UI reconciles with.
package contact

import "strings"

// Contact represents a person as stored by the remote service
type Contact struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewContact is the body of a create request; the service assigns the ID
type NewContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Fields is an update payload. Nil fields are left untouched.
type Fields struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// AllFields builds a full replacement payload
func AllFields(name, email, phone string) Fields {
	return Fields{Name: &name, Email: &email, Phone: &phone}
}

// Apply returns c with the set fields replaced. The ID is never changed.
func (f Fields) Apply(c Contact) Contact {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	return c
}

// Clone returns an independent copy of list. A nil list yields an empty one.
func Clone(list []Contact) []Contact {
	out := make([]Contact, len(list))
	copy(out, list)
	return out
}

// Filter returns the contacts whose name contains query, ignoring case.
// An empty query returns a copy of the whole list.
func Filter(list []Contact, query string) []Contact {
	if query == "" {
		return Clone(list)
	}

	q := strings.ToLower(query)
	filtered := []Contact{}
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Remove returns list without the entries whose ID equals id
func Remove(list []Contact, id string) []Contact {
	out := make([]Contact, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Merge returns list with fields applied to the entry matching id
func Merge(list []Contact, id string, fields Fields) []Contact {
	out := Clone(list)
	for i := range out {
		if out[i].ID == id {
			out[i] = fields.Apply(out[i])
		}
	}
	return out
}

// Find returns the contact with the given ID
func Find(list []Contact, id string) (Contact, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}
