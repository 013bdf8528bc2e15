package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fretebot/domain/entities"
	"fretebot/domain/interfaces"
)

type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore - creates a session store backed by one JSON file per
// portal account under dir.
func NewFileStore(dir string) (interfaces.SessionStore, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".fretebot", "sessions")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

// Load - loads saved session state for the account, nil when none
func (s *fileStore) Load(_ context.Context, account string) (entities.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return entities.SessionState(data), nil
}

// Save - replaces the saved session state for the account
func (s *fileStore) Save(_ context.Context, account string, state entities.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// write-then-rename so a crash never leaves a torn file behind
	target := s.path(account)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, state, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Delete - removes the saved session state for the account
func (s *fileStore) Delete(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(account)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *fileStore) path(account string) string {
	return filepath.Join(s.dir, accountSlug(account)+".json")
}

// accountSlug turns an account name into a safe file name.
func accountSlug(account string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, account)
	if slug == "" {
		slug = "default"
	}
	return slug
}
