package auth_client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"feedwatch/internal/custom_errors"
)

// CredentialStore caches the bearer credential in a plain JSON file, the
// same trust level the original client gave browser local storage. It doubles
// as the TokenSource for the API client.
type CredentialStore struct {
	path string

	mu   sync.RWMutex
	cred *Credential
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load reads the cached credential from disk. A missing file leaves the
// store empty and is not an error.
func (s *CredentialStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.cred = nil
			return nil
		}
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return fmt.Errorf("failed to parse credentials file: %w", err)
	}
	s.cred = &cred
	return nil
}

func (s *CredentialStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	s.cred = cred
	return nil
}

// Clear drops the credential from memory and disk. Called on logout and on
// the forced-logout path after a 401/403.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

func (s *CredentialStore) Credential() *Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// Token implements api_client.TokenSource.
func (s *CredentialStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil || s.cred.AccessToken == "" {
		return "", custom_errors.ErrUnauthenticated
	}
	return s.cred.AccessToken, nil
}
