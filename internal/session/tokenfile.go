package session

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenFile persists the opaque bearer token between runs. It is the Go
// counterpart of the browser's single localStorage key: written on
// login/register success, removed on logout.
type TokenFile struct {
	path string
}

// NewTokenFile creates a token store at the given path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Load returns the saved token, or "" when none exists.
func (t *TokenFile) Load() string {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// Save writes the token with owner-only permissions.
func (t *TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return err
	}

	return os.WriteFile(t.path, []byte(token+"\n"), 0600)
}

// Clear removes the saved token. A missing file is not an error.
func (t *TokenFile) Clear() error {
	err := os.Remove(t.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
