package migration

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/roysitumorang/kilau/helper"
	"go.uber.org/zap"
)

func init() {
	Migrations[1760745600000000000] = func(ctx context.Context, tx pgx.Tx) (err error) {
		ctxt := "Migration-1760745600000000000"
		for _, statement := range []string{
			`CREATE TABLE branches (
				_id bigint NOT NULL PRIMARY KEY
				, id character varying NOT NULL UNIQUE
				, number character varying NOT NULL
				, name character varying NOT NULL
				, created_at timestamp with time zone NOT NULL
				, updated_at timestamp with time zone NOT NULL
				, deleted_at timestamp with time zone
			)`,
			`CREATE UNIQUE INDEX branches_number_idx ON branches (number) WHERE deleted_at IS NULL`,
			`CREATE TABLE sequence_types (
				key character varying NOT NULL PRIMARY KEY
				, label character varying NOT NULL
			)`,
			`INSERT INTO sequence_types (key, label) VALUES
				('SALES_INVOICE', 'Sales Invoice')
				, ('PURCHASE_ORDER', 'Purchase Order')
				, ('GOODS_RECEIPT', 'Goods Receipt Note')
				, ('STOCK_TRANSFER', 'Stock Transfer')
				, ('SALES_RETURN', 'Sales Return')
				, ('ESTIMATE', 'Estimate')`,
			`CREATE TABLE sequence_settings (
				_id bigint NOT NULL PRIMARY KEY
				, id character varying NOT NULL UNIQUE
				, branch_id character varying NOT NULL REFERENCES branches (id) ON UPDATE CASCADE ON DELETE RESTRICT
				, sequence_key character varying NOT NULL
				, prefix character varying
				, suffix character varying
				, start_number bigint CHECK (start_number >= 0)
				, status_id smallint NOT NULL DEFAULT 1 CHECK (status_id IN (0, 1))
				, created_at timestamp with time zone NOT NULL
				, updated_at timestamp with time zone NOT NULL
				, deleted_at timestamp with time zone
			)`,
			`CREATE UNIQUE INDEX sequence_settings_branch_id_sequence_key_idx ON sequence_settings (branch_id, sequence_key) WHERE deleted_at IS NULL`,
			`CREATE INDEX sequence_settings_created_at_idx ON sequence_settings (created_at DESC, _id DESC) WHERE deleted_at IS NULL`,
			`CREATE TABLE sequences (
				_id bigint NOT NULL PRIMARY KEY
				, id character varying NOT NULL UNIQUE
				, name character varying NOT NULL UNIQUE
				, number bigint NOT NULL
				, created_at timestamp with time zone NOT NULL
				, updated_at timestamp with time zone NOT NULL
			)`,
		} {
			if _, err = tx.Exec(ctx, statement); err != nil {
				helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrExec")
				return
			}
		}
		return
	}
}
