package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/contacts-remote/internal/contact"
)

var three = []contact.Contact{
	{ID: "1", Name: "Ann", Email: "ann@example.com", Phone: "111"},
	{ID: "2", Name: "Bob, Jr.", Email: "bob@example.com", Phone: "+222"},
	{ID: "3", Name: "Zoë \"Z\"", Email: "zoe@example.com", Phone: "333"},
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, three))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "_id,name,email,phone", lines[0])

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i, c := range three {
		assert.Equal(t, []string{c.ID, c.Name, c.Email, c.Phone}, records[i+1])
	}
}

func TestWriteCSV_EmptyListWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "_id,name,email,phone\n", buf.String())
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := Save(dir, three[:1])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "contact_data.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "_id,name,email,phone\n1,Ann,ann@example.com,111\n", string(data))
}
