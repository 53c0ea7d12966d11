// Package consumer contains consumers of profile publication notifications.
package consumer

import (
	"context"
	"errors"

	"github.com/Decentr-net/themis/internal/producer"
)

//go:generate mockgen -destination=./mock/consumer.go -package=mock -source=consumer.go

// ErrRejected is returned by Handler when message can't ever be handled. Such messages are dropped.
var ErrRejected = errors.New("message is rejected")

// Consumer consumes publication notifications until ctx is done.
type Consumer interface {
	Run(ctx context.Context) error
}

// Handler handles one publication notification.
type Handler interface {
	Handle(ctx context.Context, msg *producer.PublishedMessage) error
}
