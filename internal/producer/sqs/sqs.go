// Package sqs is an aws sqs implementation of producer.
package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"

	"github.com/Decentr-net/themis/internal/producer"
)

var _ producer.Producer = &impl{}

type impl struct {
	queueURL string
	sqs      *sqs.SQS
}

// New returns new instance of impl.
func New(sqs *sqs.SQS, queueURL string) *impl { // nolint:golint
	return &impl{
		sqs:      sqs,
		queueURL: queueURL,
	}
}

// Produce sends message to SQS. Messages of the same subject share a group in FIFO queues.
func (i impl) Produce(ctx context.Context, m *producer.PublishedMessage) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	in := &sqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    &i.queueURL,
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"subject": {
				DataType:    aws.String("String"),
				StringValue: aws.String(m.Subject),
			},
		},
	}
	if isFIFO(i.queueURL) {
		in.MessageGroupId = aws.String(m.Subject)
		in.MessageDeduplicationId = aws.String(fmt.Sprintf("%s-%d", m.Subject, m.Version))
	}

	if _, err := i.sqs.SendMessageWithContext(ctx, in); err != nil {
		return fmt.Errorf("failed to send sqs message: %w", err)
	}

	return nil
}

func isFIFO(queueURL string) bool {
	const suffix = ".fifo"
	return len(queueURL) > len(suffix) && strings.HasSuffix(queueURL, suffix)
}
