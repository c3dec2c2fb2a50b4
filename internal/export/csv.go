// Package export writes contact lists to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// FileName is the name of the exported file
const FileName = "contact_data.csv"

// Header lists the exported columns in Contact field order
var Header = []string{"_id", "name", "email", "phone"}

// WriteCSV writes a header row and one row per contact
func WriteCSV(w io.Writer, contacts []contact.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range contacts {
		if err := cw.Write([]string{c.ID, c.Name, c.Email, c.Phone}); err != nil {
			return fmt.Errorf("writing contact %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes contacts to FileName inside dir and returns the file path
func Save(dir string, contacts []contact.Contact) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, contacts); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}
