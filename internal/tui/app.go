package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pdxmph/contacts-remote/internal/api"
	"github.com/pdxmph/contacts-remote/internal/contact"
	"github.com/pdxmph/contacts-remote/internal/export"
	"github.com/pdxmph/contacts-remote/internal/store"
)

// Options wires the model to its collaborators
type Options struct {
	Service   api.Service
	Store     *store.Store
	Logger    *zap.Logger
	ExportDir string
	// Context is passed to every request. Nothing cancels it per request.
	Context context.Context
}

// Model is the contact list: it owns the displayed contacts, the search
// query and the add form, and turns user actions into service requests.
type Model struct {
	svc       api.Service
	store     *store.Store
	logger    *zap.Logger
	ctx       context.Context
	exportDir string
	updates   <-chan []contact.Contact

	displayed   []contact.Contact
	loading     bool
	loadFailed  bool
	searchQuery string
	formVisible bool

	selected int
	width    int
	height   int

	searchMode  bool
	searchInput textinput.Model
	form        fieldSet
	editor      *editor

	// Pending delete awaiting y/n
	confirmDeleteID string

	// Blocking validation notice; any key dismisses it
	notice string
	status string

	listKeys  listKeys
	fieldKeys fieldKeys
	help      help.Model
}

// New creates the list model. The store subscription is opened here so no
// snapshot published after construction is missed.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Search By Name"
	ti.Width = 30
	ti.CharLimit = 50
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	return Model{
		svc:         opts.Service,
		store:       opts.Store,
		logger:      logger,
		ctx:         ctx,
		exportDir:   opts.ExportDir,
		updates:     opts.Store.Subscribe(),
		displayed:   []contact.Contact{},
		loading:     true,
		searchInput: ti,
		form:        newFieldSet(),
		listKeys:    newListKeys(),
		fieldKeys:   newFieldKeys(),
		help:        help.New(),
	}
}

// Init starts the one-time store load and listens for its result
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStore(), waitForStore(m.updates))
}

// Displayed returns a copy of the contacts currently shown
func (m Model) Displayed() []contact.Contact {
	return contact.Clone(m.displayed)
}

// Loading reports whether the first store load is still pending
func (m Model) Loading() bool { return m.loading }

// SearchQuery returns the trimmed active query
func (m Model) SearchQuery() string { return m.searchQuery }

// FormVisible reports whether the add form is open
func (m Model) FormVisible() bool { return m.formVisible }

// Notice returns the blocking validation message, if any
func (m Model) Notice() string { return m.notice }

// onStoreUpdated mirrors a new store snapshot, re-applying the search
func (m *Model) onStoreUpdated(list []contact.Contact) {
	m.displayed = contact.Filter(list, m.searchQuery)
	m.loading = false
	m.loadFailed = false
	m.clampSelection()
}

// Search filters the store's full list by name. An empty query shows it all.
func (m *Model) Search(query string) {
	m.searchQuery = strings.TrimSpace(query)
	m.displayed = contact.Filter(m.store.Current(), m.searchQuery)
	m.clampSelection()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.width > 0 {
			m.searchInput.Width = m.width/3 - 6
		}
		return m, nil

	case storeUpdatedMsg:
		m.onStoreUpdated(msg.contacts)
		return m, waitForStore(m.updates)

	case storeLoadFailedMsg:
		// The store has already logged the failure.
		m.loadFailed = true
		return m, nil

	case contactCreatedMsg:
		m.displayed = contact.Clone(msg.contacts)
		m.form.reset()
		m.form.blur()
		m.formVisible = false
		m.clampSelection()
		m.status = "Contact created"
		return m, nil

	case contactDeletedMsg:
		m.displayed = contact.Remove(m.displayed, msg.id)
		m.clampSelection()
		m.status = "Contact deleted"
		return m, nil

	case contactUpdatedMsg:
		m.displayed = contact.Merge(m.displayed, msg.id, msg.fields)
		m.status = "Contact updated"
		return m, nil

	case requestFailedMsg:
		m.logger.Error("Contact request failed",
			zap.String("op", msg.op),
			zap.String("id", msg.id),
			zap.Error(msg.err))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward blink and other input messages to whichever input is active
	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	if m.confirmDeleteID != "" {
		id := m.confirmDeleteID
		m.confirmDeleteID = ""
		switch msg.String() {
		case "y", "Y":
			return m, m.DeleteContact(id)
		}
		return m, nil
	}

	if m.editor != nil {
		return m.handleEditorKey(msg)
	}

	if m.formVisible {
		return m.handleFormKey(msg)
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.listKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.listKeys.Down):
		if m.selected < len(m.displayed)-1 {
			m.selected++
		}

	case key.Matches(msg, m.listKeys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.listKeys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.listKeys.Clear):
		if m.searchQuery != "" {
			m.searchInput.Reset()
			m.Search("")
		}

	case key.Matches(msg, m.listKeys.Add):
		m.formVisible = true
		cmd := m.form.focusOn(fieldName)
		return m, cmd

	case key.Matches(msg, m.listKeys.Edit):
		if c, ok := m.current(); ok {
			m.editor = newEditor(c)
			return m, textinput.Blink
		}

	case key.Matches(msg, m.listKeys.Delete):
		if c, ok := m.current(); ok {
			m.confirmDeleteID = c.ID
		}

	case key.Matches(msg, m.listKeys.Export):
		path, err := export.Save(m.exportDir, m.displayed)
		if err != nil {
			m.logger.Error("Export failed", zap.Error(err))
			m.status = "Export failed: " + err.Error()
		} else {
			m.logger.Info("Exported contacts", zap.String("path", path), zap.Int("count", len(m.displayed)))
			m.status = fmt.Sprintf("Saved %d contacts to %s", len(m.displayed), path)
		}

	case key.Matches(msg, m.listKeys.Copy):
		if c, ok := m.current(); ok {
			if err := clipboard.WriteAll(c.Email); err != nil {
				m.logger.Warn("Clipboard unavailable", zap.Error(err))
				m.status = "Clipboard unavailable"
			} else {
				m.status = "Copied " + c.Email
			}
		}
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.Search("")
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.Search(m.searchInput.Value())
		return m, nil
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case tea.KeyDown:
		if m.selected < len(m.displayed)-1 {
			m.selected++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.Search(m.searchInput.Value())
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.fieldKeys.Cancel):
		// Closing keeps what was typed, like the browser form did
		m.formVisible = false
		m.form.blur()
	case key.Matches(msg, m.fieldKeys.Save),
		msg.Type == tea.KeyEnter && m.form.onLast():
		cmd = m.CreateContact(m.form.values())
	case msg.Type == tea.KeyEnter, key.Matches(msg, m.fieldKeys.Next):
		cmd = m.form.next()
	case key.Matches(msg, m.fieldKeys.Prev):
		cmd = m.form.prev()
	default:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.fieldKeys.Cancel):
		m.editor = nil
		return m, nil
	case key.Matches(msg, m.fieldKeys.Save),
		msg.Type == tea.KeyEnter && m.editor.fields.onLast():
		return m.saveEditor()
	case msg.Type == tea.KeyEnter, key.Matches(msg, m.fieldKeys.Next):
		return m, m.editor.fields.next()
	case key.Matches(msg, m.fieldKeys.Prev):
		return m, m.editor.fields.prev()
	}
	return m, m.editor.fields.update(msg)
}

// saveEditor validates the editor and hands the update to UpdateContact.
// The panel closes whether or not the request later succeeds.
func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	fields, err := m.editor.save()
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	id := m.editor.id
	m.editor = nil
	return m, m.UpdateContact(id, fields)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editor != nil:
		cmd = m.editor.fields.update(msg)
	case m.formVisible:
		cmd = m.form.update(msg)
	case m.searchMode:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// current returns the selected contact
func (m Model) current() (contact.Contact, bool) {
	if len(m.displayed) == 0 || m.selected >= len(m.displayed) {
		return contact.Contact{}, false
	}
	return m.displayed[m.selected], true
}

// clampSelection keeps the cursor within the displayed list
func (m *Model) clampSelection() {
	if m.selected >= len(m.displayed) {
		m.selected = len(m.displayed) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
