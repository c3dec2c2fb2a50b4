// Package db is the SQLite store behind the local development service.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// ErrNotFound is returned when no contact has the requested ID
var ErrNotFound = errors.New("contact not found")

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection
func Open(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'contacts serve --seed' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Older files may predate an index; the schema is idempotent.
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ListContacts returns all contacts in creation order
func (db *DB) ListContacts() ([]Contact, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM contacts
		ORDER BY created_at, rowid
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// GetContact retrieves a single contact by ID
func (db *DB) GetContact(id string) (*Contact, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM contacts
		WHERE id = ?
	`

	var c Contact
	err := db.conn.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return &c, nil
}

// AddContact creates a new contact and returns its generated ID
func (db *DB) AddContact(nc contact.NewContact) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO contacts (id, name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	if _, err := db.conn.Exec(query, id, nc.Name, nc.Email, nc.Phone); err != nil {
		return "", fmt.Errorf("inserting contact: %w", err)
	}

	return id, nil
}

// UpdateContact sets the given fields of a contact. Unset fields keep their value.
func (db *DB) UpdateContact(id string, fields contact.Fields) error {
	var sets []string
	var args []interface{}

	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *fields.Email)
	}
	if fields.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *fields.Phone)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := `UPDATE contacts SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	return requireRow(result)
}

// DeleteContact permanently deletes a contact
func (db *DB) DeleteContact(id string) error {
	result, err := db.conn.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
