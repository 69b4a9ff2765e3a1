package sysuser

import (
	"context"
	"sync"
)

// StaticConfig configures the static implementation.
type StaticConfig struct {
	// Usernames lists the accounts that are considered to exist.
	Usernames []string
}

// Static is a fixture System backend. Rotation succeeds without touching the
// host and remembers the last credential per user for assertions in tests.
type Static struct {
	mu          sync.Mutex
	users       map[string]struct{}
	credentials map[string]string
}

// NewStatic constructs a Static system backend.
func NewStatic(cfg StaticConfig) *Static {
	users := make(map[string]struct{}, len(cfg.Usernames))
	for _, u := range cfg.Usernames {
		users[u] = struct{}{}
	}

	return &Static{
		users:       users,
		credentials: make(map[string]string),
	}
}

// Exists implements IdentityChecker.
func (s *Static) Exists(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

// Rotate implements CredentialRotator.
func (s *Static) Rotate(ctx context.Context, username, credential string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[username] = credential
	return nil
}

// Credential returns the last rotated credential for username.
func (s *Static) Credential(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentials[username]
}
