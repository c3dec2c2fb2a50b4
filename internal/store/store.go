// Package store holds the session's contact list, fetched once at startup.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdxmph/contacts-remote/internal/api"
	"github.com/pdxmph/contacts-remote/internal/contact"
)

// ErrAlreadyLoaded is returned when Load is called after a successful load
var ErrAlreadyLoaded = errors.New("contacts already loaded")

// Store is a read-only cache of the remote contact list. Writes go straight
// to the service; the store only changes when Load succeeds.
type Store struct {
	svc    api.Service
	logger *zap.Logger

	// loadMu serializes Load so the list is fetched at most once
	loadMu sync.Mutex

	mu       sync.RWMutex
	contacts []contact.Contact
	loaded   bool
	subs     []chan []contact.Contact
}

// New creates an empty store backed by svc
func New(svc api.Service, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		svc:      svc,
		logger:   logger,
		contacts: []contact.Contact{},
	}
}

// Load fetches the list from the service. A failure is logged and leaves the
// store empty; nothing is retried.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return ErrAlreadyLoaded
	}

	list, err := s.svc.List(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch contacts", zap.Error(err))
		return fmt.Errorf("loading contacts: %w", err)
	}

	s.mu.Lock()
	s.contacts = contact.Clone(list)
	s.loaded = true
	subs := s.subs
	s.mu.Unlock()

	s.logger.Debug("Contacts loaded", zap.Int("count", len(list)))
	for _, ch := range subs {
		publish(ch, contact.Clone(list))
	}
	return nil
}

// Current returns a copy of the held list, empty until loaded
func (s *Store) Current() []contact.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contact.Clone(s.contacts)
}

// Loaded reports whether Load has succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe returns a channel that receives a snapshot each time the held
// list changes. If the store is already loaded the current list is queued
// immediately. Only the newest undelivered snapshot is kept.
func (s *Store) Subscribe() <-chan []contact.Contact {
	ch := make(chan []contact.Contact, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	if s.loaded {
		ch <- contact.Clone(s.contacts)
	}
	s.mu.Unlock()

	return ch
}

// publish replaces any pending snapshot with list
func publish(ch chan []contact.Contact, list []contact.Contact) {
	for {
		select {
		case ch <- list:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
