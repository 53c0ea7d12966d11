// Package postgres is implementation of storage.PointerRegistry.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Decentr-net/themis/internal/storage"
)

// uniqueViolation is postgres error code of unique constraint violation.
const uniqueViolation = "23505"

type pg struct {
	db *sqlx.DB
}

type pointerDTO struct {
	Subject   string    `db:"subject"`
	CID       string    `db:"cid"`
	Version   uint64    `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.PointerRegistry {
	return pg{
		db: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

func (s pg) Get(ctx context.Context, subject string) (storage.Pointer, error) {
	var p pointerDTO
	if err := sqlx.GetContext(ctx, s.db, &p, `
		SELECT subject, cid, version, updated_at
		FROM profile_pointer
		WHERE subject = $1
	`, subject); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Pointer{}, storage.ErrNotFound
		}
		return storage.Pointer{}, fmt.Errorf("failed to query: %w", err)
	}

	return toStoragePointer(p), nil
}

func (s pg) Update(ctx context.Context, subject string, cid string, expectedVersion uint64) (storage.Pointer, error) {
	var p pointerDTO

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if expectedVersion == 0 {
			err = sqlx.GetContext(ctx, tx, &p, `
				INSERT INTO profile_pointer(subject, cid, version)
				VALUES($1, $2, 1)
				RETURNING subject, cid, version, updated_at
			`, subject, cid)
		} else {
			err = sqlx.GetContext(ctx, tx, &p, `
				UPDATE profile_pointer
				SET cid = $2, version = version + 1, updated_at = now()
				WHERE subject = $1 AND version = $3
				RETURNING subject, cid, version, updated_at
			`, subject, cid, expectedVersion)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
				return storage.ErrConflict
			}
			return fmt.Errorf("failed to update pointer: %w", err)
		}

		if _, err := sqlx.NamedExecContext(ctx, tx, `
			INSERT INTO profile_pointer_history(subject, cid, version, updated_at)
			VALUES(:subject, :cid, :version, :updated_at)
		`, p); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrConflict
			}
			return fmt.Errorf("failed to insert history: %w", err)
		}

		return nil
	})
	if err != nil {
		return storage.Pointer{}, err
	}

	return toStoragePointer(p), nil
}

func (s pg) History(ctx context.Context, subject string, limit uint16) ([]storage.Pointer, error) {
	var pp []pointerDTO
	if err := sqlx.SelectContext(ctx, s.db, &pp, `
		SELECT subject, cid, version, updated_at
		FROM profile_pointer_history
		WHERE subject = $1
		ORDER BY version DESC
		LIMIT $2
	`, subject, limit); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]storage.Pointer, len(pp))
	for i, v := range pp {
		out[i] = toStoragePointer(v)
	}

	return out, nil
}

func (s pg) inTx(ctx context.Context, f func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := f(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("failed to rollback tx: %s: %w", rerr.Error(), err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func toStoragePointer(p pointerDTO) storage.Pointer {
	return storage.Pointer{
		Subject: p.Subject,
		CID:     p.CID,
		Version: p.Version,
		Updated: p.UpdatedAt.UTC(),
	}
}
