// Package localfs contains implementation of storage.ContentStore on local filesystem.
package localfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Decentr-net/themis/internal/storage"
)

type localfs struct {
	root string
}

// New returns filesystem content store rooted at root. Root is created if needed.
func New(root string) (storage.ContentStore, error) {
	if root == "" {
		return nil, errors.New("root directory is required") // nolint:goerr113
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create root: %w", err)
	}

	return &localfs{
		root: root,
	}, nil
}

// Ping checks root is a writable directory.
func (s *localfs) Ping(_ context.Context) error {
	f, err := ioutil.TempFile(s.root, ".ping")
	if err != nil {
		return fmt.Errorf("root is not writable: %w", err)
	}
	f.Close() // nolint
	return os.Remove(f.Name())
}

// Put writes data once; objects are never overwritten.
func (s *localfs) Put(_ context.Context, data []byte) (string, error) {
	address, err := storage.CID(data)
	if err != nil {
		return "", err
	}

	path := s.path(address)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if !os.IsExist(err) {
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		existing, err := ioutil.ReadFile(path)
		if err != nil || !bytes.Equal(existing, data) {
			return "", fmt.Errorf("%w: %s", storage.ErrIntegrity, address)
		}
		return address, nil
	}

	if _, err := f.Write(data); err != nil {
		f.Close()       // nolint
		os.Remove(path) // nolint
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()       // nolint
		os.Remove(path) // nolint
		return "", fmt.Errorf("failed to sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path) // nolint
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return address, nil
}

// Get ...
func (s *localfs) Get(_ context.Context, address string) ([]byte, error) {
	if !storage.IsCIDValid(address) {
		return nil, storage.ErrInvalidCID
	}

	data, err := ioutil.ReadFile(s.path(address))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if err := storage.Verify(address, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *localfs) path(address string) string {
	if len(address) < 2 {
		return filepath.Join(s.root, address)
	}
	return filepath.Join(s.root, address[len(address)-2:], address)
}
