package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	shell "github.com/ipfs/go-ipfs-api"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/storage"
	"github.com/Decentr-net/themis/internal/storage/ipfs"
	"github.com/Decentr-net/themis/internal/storage/localfs"
	"github.com/Decentr-net/themis/internal/storage/postgres"
	"github.com/Decentr-net/themis/internal/storage/s3"
)

// nolint:lll
type StorageOpts struct {
	Storage          string `long:"storage" env:"STORAGE" default:"ipfs" description:"profile documents storage" choice:"ipfs" choice:"s3" choice:"localfs"`
	StorageCacheSize int    `long:"storage.cache-size" env:"STORAGE_CACHE_SIZE" default:"1024" description:"count of documents cached in memory, 0 disables cache"`

	IPFSHost string `long:"ipfs.host" env:"IPFS_HOST" default:"localhost:5001" description:"ipfs node api address"`

	LocalFSRoot string `long:"localfs.root" env:"LOCALFS_ROOT" default:"./data" description:"directory for profile documents"`

	S3Endpoint        string `long:"s3.endpoint" env:"S3_ENDPOINT" default:"localhost:9000" description:"s3 endpoint"`
	S3Region          string `long:"s3.region" env:"S3_REGION" default:"" description:"s3 region"`
	S3AccessKeyID     string `long:"s3.access-key-id" env:"S3_ACCESS_KEY_ID" description:"access key id for S3 storage"`
	S3SecretAccessKey string `long:"s3.secret-access-key" env:"S3_SECRET_ACCESS_KEY" description:"secret access key for S3 storage"`
	S3UseSSL          bool   `long:"s3.use-ssl" env:"S3_USE_SSL" description:"use ssl for S3 storage connection"`
	S3Bucket          string `long:"s3.bucket" env:"S3_BUCKET" default:"themis" description:"S3 bucket for profile documents"`
}

// nolint:lll
type DBOpts struct {
	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}

func mustGetContentStore() storage.ContentStore {
	var (
		cs  storage.ContentStore
		err error
	)

	switch opts.Storage {
	case "ipfs":
		cs = ipfs.New(shell.NewShell(opts.IPFSHost))
	case "s3":
		cs, err = s3.New(mustGetS3Client(), opts.S3Bucket)
	case "localfs":
		cs, err = localfs.New(opts.LocalFSRoot)
	default:
		err = fmt.Errorf("unknown storage %s", opts.Storage) // nolint:goerr113
	}
	if err != nil {
		logrus.WithError(err).Fatal("failed to create storage")
	}

	if opts.StorageCacheSize > 0 {
		if cs, err = storage.NewCached(cs, opts.StorageCacheSize); err != nil {
			logrus.WithError(err).Fatal("failed to create storage cache")
		}
	}

	return cs
}

func mustGetS3Client() *minio.Client {
	c, err := minio.New(opts.S3Endpoint, &minio.Options{
		Region: opts.S3Region,
		Creds:  credentials.NewStaticV4(opts.S3AccessKeyID, opts.S3SecretAccessKey, ""),
		Secure: opts.S3UseSSL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to S3 storage")
	}

	return c
}

func mustGetPointerRegistry() storage.PointerRegistry {
	return postgres.New(mustGetDB())
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
