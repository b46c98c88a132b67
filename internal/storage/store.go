package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is a durable key-value document: a tree of sections loaded from and
// saved to a Backend as YAML
type Store struct {
	name    string
	backend Backend
	logger  *slog.Logger

	mu   sync.RWMutex
	root *Section
}

// New creates a store with an empty document. Call Load to read the backend.
func New(name string, backend Backend, logger *slog.Logger) *Store {
	return &Store{
		name:    name,
		backend: backend,
		logger:  logger.With(slog.String("document", name)),
		root:    NewSection(),
	}
}

// Open creates a store and loads its document
func Open(ctx context.Context, name string, backend Backend, logger *slog.Logger) (*Store, error) {
	s := New(name, backend, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the document name
func (s *Store) Name() string {
	return s.name
}

// Load replaces the in-memory document with the backend's contents.
// A backend with nothing saved yields an empty document. Contents that do
// not parse are logged and replaced by an empty document.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.name, err)
	}

	root := NewSection()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, root); err != nil {
			s.logger.Error("document unreadable, starting empty", slog.String("error", err.Error()))
			root = NewSection()
		}
	}

	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	return nil
}

// Save writes the current document to the backend
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	data, err := encode(s.root)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	return nil
}

// Get returns the value at path. Sections are returned as copies.
func (s *Store) Get(path Path) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.root.lookup(path)
	if !ok {
		return nil, false
	}
	if sec, isSec := v.(*Section); isSec {
		return sec.Clone(), true
	}
	return v, true
}

// Section returns a copy of the section at path
func (s *Store) Section(path Path) (*Section, bool) {
	v, ok := s.Get(path)
	if !ok {
		return nil, false
	}
	sec, ok := v.(*Section)
	return sec, ok
}

// Contains reports whether anything is stored at path
func (s *Store) Contains(path Path) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.root.lookup(path)
	return ok
}

// Keys returns the child keys of the section at path in document order
func (s *Store) Keys(path Path) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.root.lookup(path)
	if !ok {
		return nil
	}
	sec, ok := v.(*Section)
	if !ok {
		return nil
	}
	return sec.Keys()
}

// Set stores value at path, creating intermediate sections. Sections are
// copied in, so later changes to value do not leak into the document.
func (s *Store) Set(path Path, value any) {
	if len(path) == 0 {
		panic("storage: Set with empty path")
	}
	if sec, ok := value.(*Section); ok {
		value = sec.Clone()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.root.ensure(path[:len(path)-1])
	parent.Set(path[len(path)-1], value)
}

// Remove deletes the value at path and reports whether it existed
func (s *Store) Remove(path Path) bool {
	if len(path) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.root.lookup(path[:len(path)-1])
	if !ok {
		return false
	}
	parent, ok := v.(*Section)
	if !ok {
		return false
	}
	return parent.Remove(path[len(path)-1])
}

func encode(root *Section) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
