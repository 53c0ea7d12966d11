// Package sqs is an aws sqs implementation of consumer.
package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/consumer"
	"github.com/Decentr-net/themis/internal/producer"
)

var _ consumer.Consumer = &impl{}

var log = logrus.WithField("package", "sqs")

// nolint:gochecknoglobals
var (
	// how long the message is locked from other consumers in seconds
	visibilityTimeout int64 = 30
	// how long consumer will wait for the next messages in seconds
	waitTimeSeconds int64 = 20
)

const (
	routines             = 8
	receiveRetryInterval = time.Second
)

type impl struct {
	h consumer.Handler

	sqs      *sqs.SQS
	queueURL string
	bulkSize uint
}

// New return new instance of impl.
func New(h consumer.Handler, sqs *sqs.SQS, queueURL string, bulkSize uint) *impl { // nolint:golint
	return &impl{
		h:        h,
		sqs:      sqs,
		queueURL: queueURL,
		bulkSize: bulkSize,
	}
}

// Run consumes messages from SQS and passes them to handler.
// Handled and rejected messages are deleted, failed ones are redelivered after visibility timeout.
func (i *impl) Run(ctx context.Context) error {
	var maxNumberOfMessages *int64
	if i.bulkSize > 0 {
		v := int64(i.bulkSize)
		maxNumberOfMessages = &v
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out, err := i.sqs.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
			MaxNumberOfMessages: maxNumberOfMessages,
			QueueUrl:            &i.queueURL,
			VisibilityTimeout:   &visibilityTimeout,
			WaitTimeSeconds:     &waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() == nil {
				log.WithError(err).Error("failed to receive messages")
			}

			select {
			case <-ctx.Done():
			case <-time.After(receiveRetryInterval):
			}
			continue
		}

		if err := i.processMessages(ctx, out.Messages); err != nil {
			log.WithError(err).Error("failed to process messages")
		}
	}
}

func (i *impl) processMessages(ctx context.Context, msgs []*sqs.Message) error {
	var (
		toDelete []*sqs.DeleteMessageBatchRequestEntry
		mu       sync.Mutex
	)

	parallel(routines, func(m *sqs.Message) {
		if !i.processMessage(ctx, m) {
			return
		}

		mu.Lock()
		toDelete = append(toDelete, &sqs.DeleteMessageBatchRequestEntry{
			Id:            m.MessageId,
			ReceiptHandle: m.ReceiptHandle,
		})
		mu.Unlock()
	}, msgs)

	if len(toDelete) == 0 {
		return nil
	}

	out, err := i.sqs.DeleteMessageBatch(&sqs.DeleteMessageBatchInput{
		Entries:  toDelete,
		QueueUrl: &i.queueURL,
	})
	if err != nil {
		return err
	}

	for _, v := range out.Failed {
		log.WithField("id", *v.Id).Errorf("failed to delete message: %s", v.String())
	}

	return nil
}

// processMessage returns true when message shouldn't be delivered again.
func (i *impl) processMessage(ctx context.Context, m *sqs.Message) bool {
	var msg producer.PublishedMessage
	if err := json.Unmarshal([]byte(*m.Body), &msg); err != nil {
		log.WithError(err).WithField("body", *m.Body).Error("failed to unmarshal message")
		return true
	}

	l := log.WithFields(logrus.Fields{
		"subject": msg.Subject,
		"cid":     msg.CID,
	})

	switch err := i.h.Handle(ctx, &msg); {
	case err == nil:
		return true
	case errors.Is(err, consumer.ErrRejected):
		l.WithError(err).Error("message is rejected")
		return true
	default:
		l.WithError(err).Warn("failed to handle message")
		return false
	}
}

func parallel(routines int, f func(m *sqs.Message), batch []*sqs.Message) {
	var wg sync.WaitGroup

	ch := make(chan *sqs.Message)

	for i := 0; i < routines; i++ {
		wg.Add(1)

		go func() {
			for m := range ch {
				f(m)
			}
			wg.Done()
		}()
	}

	for _, v := range batch {
		ch <- v
	}
	close(ch)

	wg.Wait()
}
