package query

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roysitumorang/kilau/helper"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	"go.uber.org/zap"
)

const (
	uniqueKeyConstraint = "sequence_settings_branch_id_sequence_key_idx"
	returningColumns    = `id
			, branch_id
			, sequence_key
			, prefix
			, suffix
			, start_number
			, status_id
			, created_at
			, updated_at
			, deleted_at
			, COALESCE((SELECT b.name FROM branches b WHERE b.id = sequence_settings.branch_id), '')
			, COALESCE((SELECT b.number FROM branches b WHERE b.id = sequence_settings.branch_id), '')
			, COALESCE((SELECT st.label FROM sequence_types st WHERE st.key = sequence_settings.sequence_key), sequence_settings.sequence_key)`
)

type (
	sequenceSettingQuery struct {
		dbRead,
		dbWrite *pgxpool.Pool
	}
)

var (
	psql        = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	viewColumns = []string{
		"ss.id",
		"ss.branch_id",
		"ss.sequence_key",
		"ss.prefix",
		"ss.suffix",
		"ss.start_number",
		"ss.status_id",
		"ss.created_at",
		"ss.updated_at",
		"ss.deleted_at",
		"COALESCE(b.name, '')",
		"COALESCE(b.number, '')",
		"COALESCE(st.label, ss.sequence_key)",
	}
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

func New(
	dbRead,
	dbWrite *pgxpool.Pool,
) SequenceSettingQuery {
	return &sequenceSettingQuery{
		dbRead:  dbRead,
		dbWrite: dbWrite,
	}
}

func translateError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) &&
		pgxErr.Code == pgerrcode.UniqueViolation &&
		pgxErr.ConstraintName == uniqueKeyConstraint {
		return sequenceSettingModel.ErrUniqueKeyViolation
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return sequenceSettingModel.ErrSequenceSettingNotFound
	}
	return err
}

func isExpected(err error) bool {
	return errors.Is(err, sequenceSettingModel.ErrUniqueKeyViolation) ||
		errors.Is(err, sequenceSettingModel.ErrSequenceSettingNotFound)
}

func viewSource(builder sq.SelectBuilder) sq.SelectBuilder {
	return builder.
		From("sequence_settings ss").
		LeftJoin("branches b ON b.id = ss.branch_id").
		LeftJoin("sequence_types st ON st.key = ss.sequence_key")
}

// scanRow reads the joined view, either from a SELECT over viewSource or
// from a write returning returningColumns.
func scanRow(row pgx.Row, sequenceSetting *sequenceSettingModel.SequenceSetting) error {
	return row.Scan(
		&sequenceSetting.ID,
		&sequenceSetting.BranchID,
		&sequenceSetting.SequenceKey,
		&sequenceSetting.Prefix,
		&sequenceSetting.Suffix,
		&sequenceSetting.StartNumber,
		&sequenceSetting.StatusID,
		&sequenceSetting.CreatedAt,
		&sequenceSetting.UpdatedAt,
		&sequenceSetting.DeletedAt,
		&sequenceSetting.BranchName,
		&sequenceSetting.BranchNumber,
		&sequenceSetting.SequenceLabel,
	)
}

func listConditions(filter *sequenceSettingModel.Filter) sq.And {
	conditions := sq.And{sq.Eq{"ss.deleted_at": nil}}
	if len(filter.SequenceSettingIDs) > 0 {
		conditions = append(conditions, sq.Eq{"ss.id": filter.SequenceSettingIDs})
	}
	if len(filter.BranchIDs) > 0 {
		conditions = append(conditions, sq.Eq{"ss.branch_id": filter.BranchIDs})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		conditions = append(
			conditions,
			sq.Or{
				sq.ILike{"ss.prefix": pattern},
				sq.ILike{"ss.suffix": pattern},
				sq.ILike{"b.name": pattern},
				sq.ILike{"COALESCE(st.label, ss.sequence_key)": pattern},
			},
		)
	}
	return conditions
}

func countQuery(filter *sequenceSettingModel.Filter) sq.SelectBuilder {
	return viewSource(psql.Select("COUNT(1)")).Where(listConditions(filter))
}

func listQuery(filter *sequenceSettingModel.Filter) sq.SelectBuilder {
	builder := viewSource(psql.Select(viewColumns...)).
		Where(listConditions(filter)).
		OrderBy("ss.created_at DESC", "ss._id DESC")
	if filter.Limit > 0 {
		builder = builder.
			Limit(uint64(filter.Limit)).
			Offset(uint64((max(filter.Page, 1) - 1) * filter.Limit))
	}
	return builder
}

func keysQuery(keys []sequenceSettingModel.ScopedKey) sq.SelectBuilder {
	pairs := make(sq.Or, len(keys))
	for i, key := range keys {
		pairs[i] = sq.Eq{
			"ss.branch_id":    key.BranchID,
			"ss.sequence_key": key.SequenceKey,
		}
	}
	return viewSource(psql.Select(viewColumns...)).
		Where(sq.And{sq.Eq{"ss.deleted_at": nil}, pairs}).
		OrderBy("ss.created_at DESC", "ss._id DESC")
}

func orphansQuery() sq.SelectBuilder {
	return viewSource(psql.Select(viewColumns...)).
		Where(sq.Eq{"ss.deleted_at": nil}).
		Where(sq.Or{sq.Eq{"b.id": nil}, sq.NotEq{"b.deleted_at": nil}}).
		OrderBy("ss.created_at DESC", "ss._id DESC")
}

func (q *sequenceSettingQuery) collectView(ctx context.Context, ctxt string, builder sq.SelectBuilder) ([]*sequenceSettingModel.SequenceSetting, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrToSql")
		return nil, err
	}
	rows, err := q.dbRead.Query(ctx, query, args...)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrQuery")
		return nil, err
	}
	defer rows.Close()
	var response []*sequenceSettingModel.SequenceSetting
	for rows.Next() {
		var sequenceSetting sequenceSettingModel.SequenceSetting
		if err = scanRow(rows, &sequenceSetting); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
			return nil, err
		}
		response = append(response, &sequenceSetting)
	}
	if err = rows.Err(); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrRows")
		return nil, err
	}
	return response, nil
}

func (q *sequenceSettingQuery) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	ctxt := "SequenceSettingQuery-WithTransaction"
	tx, err := q.dbWrite.Begin(ctx)
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
	if err = fn(tx); err != nil {
		return
	}
	if err = tx.Commit(ctx); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrCommit")
	}
	return
}

func (q *sequenceSettingQuery) FindSequenceSettings(ctx context.Context, filter *sequenceSettingModel.Filter) ([]*sequenceSettingModel.SequenceSetting, int64, int64, error) {
	ctxt := "SequenceSettingQuery-FindSequenceSettings"
	query, args, err := countQuery(filter).ToSql()
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrToSql")
		return nil, 0, 0, err
	}
	var total int64
	if err = q.dbRead.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
		return nil, 0, 0, err
	}
	if total == 0 {
		return nil, 0, 0, nil
	}
	pages, err := helper.CountPages(total, filter.Limit)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrCountPages")
		return nil, 0, 0, err
	}
	response, err := q.collectView(ctx, ctxt, listQuery(filter))
	if err != nil {
		return nil, 0, 0, err
	}
	return response, total, pages, nil
}

func (q *sequenceSettingQuery) FindSequenceSettingsByKeys(ctx context.Context, keys []sequenceSettingModel.ScopedKey) ([]*sequenceSettingModel.SequenceSetting, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	return q.collectView(ctx, "SequenceSettingQuery-FindSequenceSettingsByKeys", keysQuery(keys))
}

func (q *sequenceSettingQuery) FindOrphanSequenceSettings(ctx context.Context) ([]*sequenceSettingModel.SequenceSetting, error) {
	return q.collectView(ctx, "SequenceSettingQuery-FindOrphanSequenceSettings", orphansQuery())
}

func (q *sequenceSettingQuery) CreateSequenceSettings(ctx context.Context, tx pgx.Tx, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingQuery-CreateSequenceSettings"
	now := time.Now()
	batch := &pgx.Batch{}
	for _, request := range requests {
		sequenceSettingID, sequenceSettingSqID := helper.GenerateUniqueID()
		batch.Queue(
			`INSERT INTO sequence_settings (
				_id
				, id
				, branch_id
				, sequence_key
				, prefix
				, suffix
				, start_number
				, status_id
				, created_at
				, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+returningColumns,
			sequenceSettingID,
			sequenceSettingSqID,
			request.BranchID,
			request.SequenceKey,
			request.Prefix,
			request.Suffix,
			request.StartNumber,
			request.Status(),
			now,
		)
	}
	results := tx.SendBatch(ctx, batch)
	response := make([]*sequenceSettingModel.SequenceSetting, len(requests))
	for i := range requests {
		var sequenceSetting sequenceSettingModel.SequenceSetting
		if err := scanRow(results.QueryRow(), &sequenceSetting); err != nil {
			_ = results.Close()
			if err = translateError(err); !isExpected(err) {
				helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
			}
			return nil, err
		}
		response[i] = &sequenceSetting
	}
	if err := results.Close(); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrClose")
		return nil, err
	}
	return response, nil
}

func (q *sequenceSettingQuery) UpdateSequenceSettings(ctx context.Context, tx pgx.Tx, requests []*sequenceSettingModel.SequenceSetting) error {
	ctxt := "SequenceSettingQuery-UpdateSequenceSettings"
	now := time.Now()
	batch := &pgx.Batch{}
	for _, request := range requests {
		batch.Queue(
			`UPDATE sequence_settings SET
				branch_id = $1
				, sequence_key = $2
				, prefix = $3
				, suffix = $4
				, start_number = $5
				, status_id = $6
				, updated_at = $7
			WHERE id = $8
				AND deleted_at IS NULL
			RETURNING `+returningColumns,
			request.BranchID,
			request.SequenceKey,
			request.Prefix,
			request.Suffix,
			request.StartNumber,
			request.StatusID,
			now,
			request.ID,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for _, request := range requests {
		if err := scanRow(results.QueryRow(), request); err != nil {
			_ = results.Close()
			if err = translateError(err); !isExpected(err) {
				helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
			}
			return err
		}
	}
	if err := results.Close(); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrClose")
		return err
	}
	return nil
}

func (q *sequenceSettingQuery) UpdateSequenceSettingStatus(ctx context.Context, tx pgx.Tx, sequenceSettingID string, statusID int8) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingQuery-UpdateSequenceSettingStatus"
	var response sequenceSettingModel.SequenceSetting
	if err := scanRow(
		tx.QueryRow(
			ctx,
			`UPDATE sequence_settings SET
				status_id = $1
				, updated_at = $2
			WHERE id = $3
				AND deleted_at IS NULL
			RETURNING `+returningColumns,
			statusID,
			time.Now(),
			sequenceSettingID,
		),
		&response,
	); err != nil {
		if err = translateError(err); !isExpected(err) {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
		}
		return nil, err
	}
	return &response, nil
}

func (q *sequenceSettingQuery) DeleteSequenceSetting(ctx context.Context, tx pgx.Tx, sequenceSettingID string) (int64, error) {
	ctxt := "SequenceSettingQuery-DeleteSequenceSetting"
	now := time.Now()
	commandTag, err := tx.Exec(
		ctx,
		`UPDATE sequence_settings SET
			updated_at = $1
			, deleted_at = $1
		WHERE id = $2
			AND deleted_at IS NULL`,
		now,
		sequenceSettingID,
	)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrExec")
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}
