//+build integration

package ipfs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Decentr-net/themis/internal/storage"
)

var (
	ctx = context.Background()
	sh  *shell.Shell
)

func TestMain(m *testing.M) {
	shutdown := setup()

	code := m.Run()

	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "ipfs/go-ipfs:latest",
		ExposedPorts: []string{"5001/tcp", "4001/tcp"},
		WaitingFor:   wait.ForListeningPort("5001/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create ipfs node container")
	}

	if err := container.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := container.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := container.MappedPort(ctx, "5001")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	sh = shell.NewShellWithClient(fmt.Sprintf("%s:%d", host, port.Int()), &http.Client{Timeout: 5 * time.Second})

	return func() {
		if container == nil {
			return
		}
		if err := container.Terminate(ctx); err != nil {
			logrus.WithError(err).Error("failed to terminate container")
		}
	}
}

func TestIpfs_Ping(t *testing.T) {
	assert.NoError(t, New(sh).Ping(ctx))
	assert.Error(t, New(shell.NewShell("localhost:1")).Ping(ctx))
}

func TestIpfs_PutGet(t *testing.T) {
	s := New(sh)
	data := []byte(`{"credentials":[],"subject":"0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"}`)

	address, err := s.Put(ctx, data)
	require.NoError(t, err)

	expected, err := storage.CID(data)
	require.NoError(t, err)
	assert.Equal(t, expected, address)

	act, err := s.Get(ctx, address)
	require.NoError(t, err)
	assert.Equal(t, data, act)
}

func TestIpfs_Put_UnavailableNode(t *testing.T) {
	address, err := New(shell.NewShell("localhost:1")).Put(ctx, []byte("example"))

	assert.Error(t, err)
	assert.Empty(t, address)
}

func TestIpfs_Get_InvalidCID(t *testing.T) {
	_, err := New(sh).Get(ctx, "example")
	assert.True(t, errors.Is(err, storage.ErrInvalidCID))
}
