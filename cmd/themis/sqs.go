package main

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awssqs "github.com/aws/aws-sdk-go/service/sqs"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/producer"
	"github.com/Decentr-net/themis/internal/producer/sqs"
)

// nolint:lll
type SQSOpts struct {
	SQSRegion         string `long:"sqs.region" env:"SQS_REGION" default:"" description:"sqs region"`
	SQSEndpoint       string `long:"sqs.endpoint" env:"SQS_ENDPOINT" description:"sqs endpoint, aws default is used when empty"`
	SQSAccessKeyID    string `long:"sqs.access-key-id" env:"SQS_ACCESS_KEY_ID" description:"access key id for SQS"`
	SQSecretAccessKey string `long:"sqs.secret-access-key" env:"SQS_SECRET_ACCESS_KEY" description:"secret access key for SQS"`
	SQSQueue          string `long:"sqs.queue" env:"SQS_QUEUE" description:"SQS queue name for published profiles, notifications are disabled when empty"`
}

func mustGetProducer() producer.Producer {
	if opts.SQSQueue == "" {
		logrus.Warn("empty sqs queue, skip publish notifications")
		return nil
	}

	cfg := &aws.Config{
		Region:      aws.String(opts.SQSRegion),
		Credentials: credentials.NewStaticCredentials(opts.SQSAccessKeyID, opts.SQSecretAccessKey, ""),
	}
	if opts.SQSEndpoint != "" {
		cfg.Endpoint = aws.String(opts.SQSEndpoint)
	}

	c := awssqs.New(session.Must(session.NewSession(cfg)))
	queue, err := c.GetQueueUrl(&awssqs.GetQueueUrlInput{
		QueueName: &opts.SQSQueue,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to get queue url")
	}

	return sqs.New(c, *queue.QueueUrl)
}
