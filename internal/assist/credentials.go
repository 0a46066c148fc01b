package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"codepad/internal/config"
	"codepad/internal/logger"
)

// Provider is the credential store key for the Anthropic API.
const Provider = "anthropic"

type credential struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// Credentials is a small JSON file of API keys, written atomically.
type Credentials struct {
	mu   sync.RWMutex
	path string
}

// NewCredentials opens the store at path; the file is created on first Set.
func NewCredentials(path string) *Credentials {
	return &Credentials{path: path}
}

// DefaultCredentialsPath is auth.json in the data directory.
func DefaultCredentialsPath() string {
	return filepath.Join(config.DataDir(), "auth.json")
}

// Get returns the stored key for provider, or "" when there is none.
func (c *Credentials) Get(provider string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.read()
	if err != nil {
		return "", err
	}
	return data[provider].Key, nil
}

// Set stores key for provider.
func (c *Credentials) Set(provider, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.read()
	if err != nil {
		return err
	}
	data[provider] = credential{Type: "api", Key: key}
	logger.Info("storing credential", "provider", provider, "file", c.path)
	return c.write(data)
}

// Remove deletes the key for provider.
func (c *Credentials) Remove(provider string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.read()
	if err != nil {
		return err
	}
	if _, ok := data[provider]; !ok {
		return nil
	}
	delete(data, provider)
	return c.write(data)
}

func (c *Credentials) read() (map[string]credential, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]credential), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	data := make(map[string]credential)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", c.path, err)
	}
	return data, nil
}

func (c *Credentials) write(data map[string]credential) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		logger.Error("failed to write temp file", "file", tmp, "error", err)
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		logger.Error("failed to rename temp file", "file", tmp, "error", err)
		return err
	}
	return nil
}

// ResolveAPIKey picks the key to use: the configured one, then the stored
// one, then ANTHROPIC_API_KEY.
func ResolveAPIKey(configured string, store *Credentials) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if store != nil {
		key, err := store.Get(Provider)
		if err != nil {
			logger.Warn("ignoring unreadable credential store", "error", err)
		} else if key != "" {
			return key, nil
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", ErrNoCredentials
}
