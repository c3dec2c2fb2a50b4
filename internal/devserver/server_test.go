package devserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdxmph/contacts-remote/internal/api"
	"github.com/pdxmph/contacts-remote/internal/contact"
	"github.com/pdxmph/contacts-remote/internal/db"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.db")
	require.NoError(t, db.Initialize(path))
	database, err := db.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv := httptest.NewServer(New(database, nil))
	t.Cleanup(srv.Close)
	return srv
}

// The client and the dev server agree on the whole contract
func TestContract_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	client := api.New(srv.URL)
	ctx := context.Background()

	list, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, client.Create(ctx, contact.NewContact{Name: "Ann", Email: "ann@example.com", Phone: "111"}))
	require.NoError(t, client.Create(ctx, contact.NewContact{Name: "Bob", Email: "bob@example.com", Phone: "222"}))

	list, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, "Ann", list[0].Name)

	name := "Annie"
	require.NoError(t, client.Update(ctx, list[0].ID, contact.Fields{Name: &name}))
	require.NoError(t, client.Delete(ctx, list[1].ID))

	list, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Annie", list[0].Name)
	assert.Equal(t, "ann@example.com", list[0].Email)
}

func TestDeleteMissingIs404(t *testing.T) {
	srv := newTestServer(t)

	err := api.New(srv.URL).Delete(context.Background(), "missing")
	var serr *api.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.Code)
}

func TestCreateRejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/create-user", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/create-user", "application/json", strings.NewReader(`{"email":"a@b.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownMethodRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/users", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWriteJSON_EncodeFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(nil, zap.New(core))

	rec := httptest.NewRecorder()
	s.writeJSON(rec, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("Writing response failed").Len())
}
