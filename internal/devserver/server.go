// Package devserver serves the contact service HTTP contract from a local
// SQLite database so the client can run without the hosted service.
package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdxmph/contacts-remote/internal/contact"
	"github.com/pdxmph/contacts-remote/internal/db"
)

// Server handles the four contact routes
type Server struct {
	db     *db.DB
	logger *zap.Logger
	mux    *http.ServeMux
}

// New creates a server backed by database
func New(database *db.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{db: database, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /users", s.handleList)
	s.mux.HandleFunc("POST /create-user", s.handleCreate)
	s.mux.HandleFunc("PUT /update-user/{id}", s.handleUpdate)
	s.mux.HandleFunc("DELETE /delete-user/{id}", s.handleDelete)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListContacts()
	if err != nil {
		s.fail(w, "list", err)
		return
	}

	out := make([]contact.Contact, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	s.writeJSON(w, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var nc contact.NewContact
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if nc.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	id, err := s.db.AddContact(nc)
	if err != nil {
		s.fail(w, "create", err)
		return
	}
	s.logger.Info("Contact created", zap.String("id", id))
	s.writeJSON(w, map[string]string{"insertedId": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var fields contact.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.db.UpdateContact(id, fields); err != nil {
		s.fail(w, "update", err)
		return
	}
	s.writeJSON(w, map[string]string{"updatedId": id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.DeleteContact(id); err != nil {
		s.fail(w, "delete", err)
		return
	}
	s.writeJSON(w, map[string]string{"deletedId": id})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Error("Request failed", zap.String("op", op), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// writeJSON sends v with status 200. The status is already written when
// encoding fails, so the error can only be logged.
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("Writing response failed", zap.Error(err))
	}
}
