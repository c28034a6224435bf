// Package file provides a ResultStore backed by the local filesystem.
// Results are stored as one JSON file per cache key, so the cache
// survives restarts without any external service.
package file

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/dateq/pkg/domain"
)

const fileExt = ".json"

// Store implements ports.ResultStore using the local filesystem.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".dateq/cache".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".dateq", "cache")
	}
	return &Store{BasePath: basePath}
}

// Cache keys carry characters like '|' that are not safe in every
// filesystem, so file names hold the encoded key.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key)) + fileExt
}

func decodeKey(name string) (string, bool) {
	raw, ok := strings.CutSuffix(name, fileExt)
	if !ok {
		return "", false
	}
	key, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", false
	}
	return string(key), true
}

// Save persists the result to a JSON file.
func (f *Store) Save(ctx context.Context, key string, result *domain.Result) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	filePath := filepath.Join(f.BasePath, encodeKey(key))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}

	return nil
}

// Load retrieves a result from its JSON file.
func (f *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	filePath := filepath.Join(f.BasePath, encodeKey(key))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Delete removes the result file. Deleting a missing key is not an error.
func (f *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	filePath := filepath.Join(f.BasePath, encodeKey(key))

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete result file: %w", err)
	}

	return nil
}

// List returns all cached keys.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := decodeKey(entry.Name()); ok {
			keys = append(keys, key)
		}
	}

	return keys, nil
}
