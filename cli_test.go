package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/contacts-remote/internal/config"
	"github.com/pdxmph/contacts-remote/internal/contact"
)

func contactServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"1","name":"Ann","email":"ann@example.com","phone":"111"},{"_id":"2","name":"Bob","email":"bob@example.com","phone":"222"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, []contact.Contact{
		{ID: "1", Name: "Ann", Email: "ann@example.com", Phone: "111"},
		{ID: "2", Name: "Roberta", Email: "bob@example.com", Phone: "222"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "Ann"))

	// Columns line up under their headers
	col := strings.Index(lines[0], "EMAIL")
	assert.Equal(t, col, strings.Index(lines[1], "ann@example.com"))
	assert.Equal(t, col, strings.Index(lines[2], "bob@example.com"))
	assert.NotContains(t, buf.String(), "│")
}

func TestPrintTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "NAME"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestExportCmd_WritesFile(t *testing.T) {
	srv := contactServer(t)
	dir := t.TempDir()
	g := &Globals{Config: filepath.Join(dir, "missing.toml"), API: srv.URL}

	cmd := &ExportCmd{Search: "bo", Out: dir}
	require.NoError(t, cmd.Run(g))

	data, err := os.ReadFile(filepath.Join(dir, "contact_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "_id,name,email,phone\n2,Bob,bob@example.com,222\n", string(data))
}

func TestExportCmd_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	dir := t.TempDir()

	err := (&ExportCmd{Out: dir}).Run(&Globals{Config: filepath.Join(dir, "missing.toml"), API: srv.URL})
	assert.ErrorContains(t, err, "status 503")
	assert.NoFileExists(t, filepath.Join(dir, "contact_data.csv"))
}

func TestInitConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	g := &Globals{Config: path}

	require.NoError(t, (&InitConfigCmd{}).Run(g))
	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)

	assert.ErrorContains(t, (&InitConfigCmd{}).Run(g), "already exists")
	assert.NoError(t, (&InitConfigCmd{Force: true}).Run(g))
}

func TestCLI_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"--api", "http://localhost:9", "export", "-s", "ann", "--out=-"})
	require.NoError(t, err)
	assert.Equal(t, "export", ctx.Command())
	assert.Equal(t, "http://localhost:9", cli.API)
	assert.Equal(t, "ann", cli.Export.Search)
	assert.Equal(t, "-", cli.Export.Out)
}

func TestCLI_DefaultCommandIsTUI(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, "tui", ctx.Command())
}
