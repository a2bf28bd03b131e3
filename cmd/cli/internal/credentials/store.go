// Package credentials persists the CLI session between invocations: the
// session cookie and the last identity the server confirmed.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobportal-service/internal/domain/user"
)

const (
	cookiesFile  = "cookies.json"
	identityFile = "identity.json"
)

// ErrNoIdentity is returned when no identity has been cached yet.
var ErrNoIdentity = errors.New("no cached identity")

type savedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	SavedAt time.Time `json:"saved_at"`
}

type cookieFile struct {
	Server  string        `json:"server"`
	Cookies []savedCookie `json:"cookies"`
}

// Store keeps session files under baseDir with owner-only permissions.
type Store struct {
	baseDir string
}

// NewStore creates the store. An empty baseDir means ~/.jobportal.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".jobportal")
	}

	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// SaveCookies replaces the cookies stored for server. An empty list removes
// the file.
func (s *Store) SaveCookies(server string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return s.remove(cookiesFile)
	}

	now := time.Now().UTC()
	f := cookieFile{Server: server}
	for _, c := range cookies {
		f.Cookies = append(f.Cookies, savedCookie{Name: c.Name, Value: c.Value, SavedAt: now})
	}
	return s.writeJSON(cookiesFile, f)
}

// LoadCookies returns the cookies saved for server. Cookies saved for a
// different server are ignored.
func (s *Store) LoadCookies(server string) ([]*http.Cookie, error) {
	var f cookieFile
	if err := s.readJSON(cookiesFile, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if f.Server != server {
		return nil, nil
	}

	cookies := make([]*http.Cookie, 0, len(f.Cookies))
	for _, c := range f.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	return cookies, nil
}

// SaveIdentity caches the user the server last confirmed.
func (s *Store) SaveIdentity(u *user.User) error {
	return s.writeJSON(identityFile, u)
}

// LoadIdentity returns the cached user or ErrNoIdentity.
func (s *Store) LoadIdentity() (*user.User, error) {
	var u user.User
	if err := s.readJSON(identityFile, &u); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoIdentity
		}
		return nil, err
	}
	return &u, nil
}

// Clear drops the cached identity and cookies.
func (s *Store) Clear() error {
	return errors.Join(s.remove(identityFile), s.remove(cookiesFile))
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.baseDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) remove(name string) error {
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
