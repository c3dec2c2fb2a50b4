package db

import (
	"fmt"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

// Fixtures is the sample data used to seed a development database
var Fixtures = []contact.NewContact{
	{Name: "Sarah Chen", Email: "sarah.chen@email.com", Phone: "5550101"},
	{Name: "Marcus Williams", Email: "marcus.w@company.com", Phone: "5550102"},
	{Name: "Alex Thompson", Email: "alex.thompson@email.com", Phone: "+15550104"},
	{Name: "Jennifer Rodriguez", Email: "jen.rodriguez@company.com", Phone: "5550105"},
	{Name: "David Kim", Email: "dkim@bigcorp.com", Phone: "5550106"},
	{Name: "Anna Schmidt", Email: "anna.schmidt@example.de", Phone: "+4930555010"},
}

// CreateFixturesDatabase creates a database populated with Fixtures
func CreateFixturesDatabase(dbPath string) error {
	if err := Initialize(dbPath); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	database, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	for _, c := range Fixtures {
		if _, err := database.AddContact(c); err != nil {
			return fmt.Errorf("adding fixture contact %s: %w", c.Name, err)
		}
	}

	return nil
}
