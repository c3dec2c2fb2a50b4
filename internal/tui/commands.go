package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// storeUpdatedMsg carries a new snapshot from the store subscription
type storeUpdatedMsg struct {
	contacts []contact.Contact
}

// storeLoadFailedMsg reports that the startup fetch failed
type storeLoadFailedMsg struct {
	err error
}

// contactCreatedMsg carries the list fetched after a successful create
type contactCreatedMsg struct {
	contacts []contact.Contact
}

type contactDeletedMsg struct {
	id string
}

type contactUpdatedMsg struct {
	id     string
	fields contact.Fields
}

// requestFailedMsg reports a remote or transport failure
type requestFailedMsg struct {
	op  string
	id  string
	err error
}

// loadStore fetches the store's list once
func (m Model) loadStore() tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		if err := st.Load(ctx); err != nil {
			return storeLoadFailedMsg{err: err}
		}
		return nil
	}
}

// waitForStore blocks until the store publishes a new snapshot
func waitForStore(updates <-chan []contact.Contact) tea.Cmd {
	return func() tea.Msg {
		list, ok := <-updates
		if !ok {
			return nil
		}
		return storeUpdatedMsg{contacts: list}
	}
}

// CreateContact validates the add form and returns the command that creates
// the contact and then refetches the list. Invalid input shows the notice and
// returns nil without touching the service.
func (m *Model) CreateContact(name, email, phone string) tea.Cmd {
	if err := contact.ValidateCreate(name, email, phone); err != nil {
		m.notice = err.Error()
		return nil
	}

	svc, ctx := m.svc, m.ctx
	nc := contact.NewContact{Name: name, Email: email, Phone: phone}
	return func() tea.Msg {
		if err := svc.Create(ctx, nc); err != nil {
			return requestFailedMsg{op: "create", err: err}
		}
		list, err := svc.List(ctx)
		if err != nil {
			return requestFailedMsg{op: "create", err: fmt.Errorf("refreshing after create: %w", err)}
		}
		return contactCreatedMsg{contacts: list}
	}
}

// DeleteContact returns the command that deletes contact id
func (m *Model) DeleteContact(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return requestFailedMsg{op: "delete", id: id, err: err}
		}
		return contactDeletedMsg{id: id}
	}
}

// UpdateContact returns the command that sends fields for contact id
func (m *Model) UpdateContact(id string, fields contact.Fields) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Update(ctx, id, fields); err != nil {
			return requestFailedMsg{op: "update", id: id, err: err}
		}
		return contactUpdatedMsg{id: id, fields: fields}
	}
}
