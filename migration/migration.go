package migration

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roysitumorang/kilau/helper"
	"go.uber.org/zap"
)

type (
	Migration struct {
		dbWrite *pgxpool.Pool
	}
)

var (
	// Migrations registers schema changes by version; files add themselves in init.
	Migrations = map[int64]func(ctx context.Context, tx pgx.Tx) error{}
)

func New(
	dbWrite *pgxpool.Pool,
) *Migration {
	return &Migration{
		dbWrite: dbWrite,
	}
}

// Pending returns the registered versions missing from applied, oldest first.
func Pending(applied map[int64]struct{}) []int64 {
	var response []int64
	for _, version := range slices.Sorted(maps.Keys(Migrations)) {
		if _, ok := applied[version]; !ok {
			response = append(response, version)
		}
	}
	return response
}

func (m *Migration) Migrate(ctx context.Context) (err error) {
	ctxt := "Migration-Migrate"
	if _, err = m.dbWrite.Exec(
		ctx,
		`CREATE TABLE IF NOT EXISTS migrations (
			"version" bigint NOT NULL PRIMARY KEY
		)`,
	); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrExec")
		return
	}
	rows, err := m.dbWrite.Query(ctx, `SELECT "version" FROM "migrations" ORDER BY "version"`)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrQuery")
		return
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrCollectRows")
		return
	}
	applied := make(map[int64]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}
	pending := Pending(applied)
	if len(pending) == 0 {
		return
	}
	tx, err := m.dbWrite.Begin(ctx)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrBegin")
		return
	}
	defer func() {
		if err == nil {
			return
		}
		if errRollback := tx.Rollback(ctx); errRollback != nil && !errors.Is(errRollback, pgx.ErrTxClosed) {
			helper.Capture(ctx, zap.ErrorLevel, errRollback, ctxt, "ErrRollback")
		}
	}()
	for _, version := range pending {
		if err = Migrations[version](ctx, tx); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrFunction")
			return
		}
		if _, err = tx.Exec(ctx, `INSERT INTO "migrations" ("version") VALUES ($1)`, version); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrExec")
			return
		}
		helper.Log(ctx, zap.InfoLevel, fmt.Sprintf("migration %d applied", version), ctxt, "")
	}
	if err = tx.Commit(ctx); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrCommit")
	}
	return
}

// MigrationFileContent renders the skeleton of a new migration.
func MigrationFileContent(version int64) string {
	return fmt.Sprintf(
		`package migration

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func init() {
	Migrations[%d] = func(ctx context.Context, tx pgx.Tx) (err error) {
		return
	}
}
`,
		version,
	)
}

func (m *Migration) CreateMigrationFile(ctx context.Context) (string, error) {
	ctxt := "Migration-CreateMigrationFile"
	version := time.Now().UTC().UnixNano()
	filepath := fmt.Sprintf("./migration/%d.go", version)
	if err := os.WriteFile(
		filepath,
		helper.String2ByteSlice(MigrationFileContent(version)),
		0600,
	); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrWriteFile")
		return "", err
	}
	return filepath, nil
}
