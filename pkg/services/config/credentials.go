package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/ini.v1"
)

const credentialsSection = "default"

// Credentials looks up tokens kept in persistent client storage.
type Credentials interface {
	Lookup(key string) (string, bool)
}

// CredentialStore is Credentials that can also be written.
type CredentialStore interface {
	Credentials
	Set(key, value string) error
	Delete(key string) error
}

type iniStore struct {
	path string
	mu   sync.Mutex
}

// NewCredentialStore returns a store backed by the ini file at path.
// The file is read on every lookup and need not exist.
func NewCredentialStore(path string) (CredentialStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credentials path is empty")
	}
	return &iniStore{path: path}, nil
}

func (s *iniStore) Lookup(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := ini.Load(s.path)
	if err != nil {
		return "", false
	}
	section, err := cfg.GetSection(credentialsSection)
	if err != nil || !section.HasKey(key) {
		return "", false
	}
	value := section.Key(key).String()
	return value, value != ""
}

func (s *iniStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	cfg.Section(credentialsSection).Key(key).SetValue(value)
	return s.save(cfg)
}

func (s *iniStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	cfg.Section(credentialsSection).DeleteKey(key)
	return s.save(cfg)
}

func (s *iniStore) load() (*ini.File, error) {
	cfg, err := ini.Load(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ini.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return cfg, nil
}

func (s *iniStore) save(cfg *ini.File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open credentials: %w", err)
	}
	// O_CREATE only applies the mode to new files.
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to restrict credentials: %w", err)
	}
	if _, err := cfg.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return f.Close()
}

// StaticCredentials serves tokens from memory, e.g. a token passed on the command line.
type StaticCredentials map[string]string

func (c StaticCredentials) Lookup(key string) (string, bool) {
	v, ok := c[key]
	return v, ok && v != ""
}
