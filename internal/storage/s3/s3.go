// Package s3 contains implementation of storage.ContentStore with any s3-compatible storage.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/storage"
)

const contentType = "application/json"

type s3 struct {
	c *minio.Client
	b string
}

// New returns s3 implementation of ContentStore. Objects are keyed by their CID.
func New(client *minio.Client, bucket string) (storage.ContentStore, error) {
	logrus.WithField("bucket", bucket).Debug("check bucket existence")
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		logrus.WithField("bucket", bucket).Info("create bucket in s3 storage")
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &s3{
		c: client,
		b: bucket,
	}, nil
}

func (s s3) Ping(ctx context.Context) error {
	if _, err := s.c.BucketExists(ctx, s.b); err != nil {
		return errors.New("connection with S3 seems broken") // nolint:goerr113
	}
	return nil
}

// Put ...
func (s s3) Put(ctx context.Context, data []byte) (string, error) {
	address, err := storage.CID(data)
	if err != nil {
		return "", err
	}

	if _, err := s.c.PutObject(ctx, s.b, address, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{DisableMultipart: true, ContentType: contentType},
	); err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	return address, nil
}

// Get ...
func (s s3) Get(ctx context.Context, address string) ([]byte, error) {
	if !storage.IsCIDValid(address) {
		return nil, storage.ErrInvalidCID
	}

	r, err := s.c.GetObject(ctx, s.b, address, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer r.Close() // nolint

	data, err := ioutil.ReadAll(r)
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	if err := storage.Verify(address, data); err != nil {
		return nil, err
	}

	return data, nil
}
