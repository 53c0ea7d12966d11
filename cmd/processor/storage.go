package main

import (
	"fmt"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/storage"
	"github.com/Decentr-net/themis/internal/storage/ipfs"
	"github.com/Decentr-net/themis/internal/storage/localfs"
	"github.com/Decentr-net/themis/internal/storage/s3"
)

// nolint:lll
type StorageOpts struct {
	Source            string `long:"source" env:"SOURCE" default:"ipfs" description:"storage documents are published to" choice:"ipfs" choice:"s3" choice:"localfs"`
	SourceLocalFSRoot string `long:"source.localfs.root" env:"SOURCE_LOCALFS_ROOT" default:"./data" description:"directory of published documents"`
	Mirror            string `long:"mirror" env:"MIRROR" default:"s3" description:"storage documents are mirrored to" choice:"ipfs" choice:"s3" choice:"localfs"`
	MirrorLocalFSRoot string `long:"mirror.localfs.root" env:"MIRROR_LOCALFS_ROOT" default:"./mirror" description:"directory of mirrored documents"`

	IPFSHost string `long:"ipfs.host" env:"IPFS_HOST" default:"localhost:5001" description:"ipfs node api address"`

	S3Endpoint        string `long:"s3.endpoint" env:"S3_ENDPOINT" default:"localhost:9000" description:"s3 endpoint"`
	S3Region          string `long:"s3.region" env:"S3_REGION" default:"" description:"s3 region"`
	S3AccessKeyID     string `long:"s3.access-key-id" env:"S3_ACCESS_KEY_ID" description:"access key id for S3 storage"`
	S3SecretAccessKey string `long:"s3.secret-access-key" env:"S3_SECRET_ACCESS_KEY" description:"secret access key for S3 storage"`
	S3UseSSL          bool   `long:"s3.use-ssl" env:"S3_USE_SSL" description:"use ssl for S3 storage connection"`
	S3Bucket          string `long:"s3.bucket" env:"S3_BUCKET" default:"themis" description:"S3 bucket for profile documents"`
}

func mustGetContentStore(kind, root string) storage.ContentStore {
	var (
		cs  storage.ContentStore
		err error
	)

	switch kind {
	case "ipfs":
		cs = ipfs.New(shell.NewShell(opts.IPFSHost))
	case "s3":
		var c *minio.Client
		c, err = minio.New(opts.S3Endpoint, &minio.Options{
			Region: opts.S3Region,
			Creds:  credentials.NewStaticV4(opts.S3AccessKeyID, opts.S3SecretAccessKey, ""),
			Secure: opts.S3UseSSL,
		})
		if err == nil {
			cs, err = s3.New(c, opts.S3Bucket)
		}
	case "localfs":
		cs, err = localfs.New(root)
	default:
		err = fmt.Errorf("unknown storage %s", kind) // nolint:goerr113
	}
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create %s storage", kind)
	}

	return cs
}
