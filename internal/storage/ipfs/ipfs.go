// Package ipfs contains implementation of storage.ContentStore with ipfs node as storage.
package ipfs

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"

	shell "github.com/ipfs/go-ipfs-api"
	files "github.com/ipfs/go-ipfs-files"

	"github.com/Decentr-net/themis/internal/storage"
)

type ipfs struct {
	sh *shell.Shell
}

// New returns ipfs implementation of ContentStore.
func New(sh *shell.Shell) storage.ContentStore {
	return ipfs{
		sh: sh,
	}
}

// Ping ...
func (i ipfs) Ping(ctx context.Context) error {
	if err := i.sh.Request("id").Exec(ctx, nil); err != nil {
		return fmt.Errorf("ipfs node is unavailable: %w", err)
	}
	return nil
}

// Put adds and pins data. Documents fitting into one chunk get CIDv1 of raw block,
// same as storage.CID.
func (i ipfs) Put(ctx context.Context, data []byte) (string, error) {
	fr := files.NewBytesFile(data)
	slf := files.NewSliceDirectory([]files.DirEntry{files.FileEntry("", fr)})
	fileReader := files.NewMultiFileReader(slf, true)

	rb := i.sh.Request("add").
		Option("cid-version", 1).
		Option("raw-leaves", true).
		Option("pin", true)

	var out struct{ Hash string }
	if err := rb.Body(fileReader).Exec(ctx, &out); err != nil {
		return "", fmt.Errorf("failed to add file into ipfs: %w", err)
	}

	return out.Hash, nil
}

// Get returns data by address.
// It is modified copy of shell.Cat method with custom context.
func (i ipfs) Get(ctx context.Context, address string) ([]byte, error) {
	if !storage.IsCIDValid(address) {
		return nil, storage.ErrInvalidCID
	}

	resp, err := i.sh.Request("cat", address).Send(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to send cat request to ipfs: %w", err)
	}
	if resp.Error != nil {
		if strings.Contains(resp.Error.Message, "not found") {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("cat request failed: %w", resp.Error)
	}
	defer resp.Close() // nolint

	data, err := ioutil.ReadAll(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	if err := storage.Verify(address, data); err != nil {
		return nil, err
	}

	return data, nil
}
