package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCID(t *testing.T) {
	a, err := CID([]byte("hello"))
	require.NoError(t, err)
	b, err := CID([]byte("hello"))
	require.NoError(t, err)
	c, err := CID([]byte("hello!"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "bafkrei", a[:7])
	assert.True(t, IsCIDValid(a))
	assert.False(t, IsCIDValid("hello"))
}

func TestVerify(t *testing.T) {
	address, err := CID([]byte("hello"))
	require.NoError(t, err)

	assert.NoError(t, Verify(address, []byte("hello")))
	assert.True(t, errors.Is(Verify(address, []byte("bye")), ErrIntegrity))
	assert.True(t, errors.Is(Verify("hello", []byte("hello")), ErrInvalidCID))

	// dag-pb addresses are not checked
	assert.NoError(t, Verify("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", []byte("anything")))
}
