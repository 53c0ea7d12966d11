package storage

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ErrInvalidCID means that address is not a valid CID.
var ErrInvalidCID = errors.New("invalid cid")

// CID returns CIDv1 with raw codec and sha2-256 multihash of data.
func CID(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash data: %w", err)
	}

	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// IsCIDValid ...
func IsCIDValid(s string) bool {
	_, err := cid.Decode(s)
	return err == nil
}

// Verify checks that data matches address. Only raw-codec addresses hash the data directly,
// others are trusted to the store.
func Verify(address string, data []byte) error {
	c, err := cid.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCID, err.Error())
	}

	if c.Type() != cid.Raw {
		return nil
	}

	got, err := c.Prefix().Sum(data)
	if err != nil {
		return fmt.Errorf("failed to hash data: %w", err)
	}
	if !got.Equals(c) {
		return ErrIntegrity
	}

	return nil
}
