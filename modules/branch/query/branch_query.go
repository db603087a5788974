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
	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
	"go.uber.org/zap"
)

const (
	uniqueNumberConstraint = "branches_number_idx"
)

var (
	psql        = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type (
	branchQuery struct {
		dbRead,
		dbWrite *pgxpool.Pool
	}
)

func New(
	dbRead,
	dbWrite *pgxpool.Pool,
) BranchQuery {
	return &branchQuery{
		dbRead:  dbRead,
		dbWrite: dbWrite,
	}
}

func translateError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) &&
		pgxErr.Code == pgerrcode.UniqueViolation &&
		pgxErr.ConstraintName == uniqueNumberConstraint {
		return branchModel.ErrUniqueNumberViolation
	}
	return err
}

func listConditions(filter *branchModel.Filter) sq.And {
	conditions := sq.And{sq.Eq{"b.deleted_at": nil}}
	if len(filter.BranchIDs) > 0 {
		conditions = append(conditions, sq.Eq{"b.id": filter.BranchIDs})
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + likeEscaper.Replace(keyword) + "%"
		conditions = append(
			conditions,
			sq.Or{
				sq.ILike{"b.name": pattern},
				sq.ILike{"b.number": pattern},
			},
		)
	}
	return conditions
}

func listQuery(filter *branchModel.Filter) sq.SelectBuilder {
	builder := psql.Select(
		"b.id",
		"b.number",
		"b.name",
		"b.created_at",
		"b.updated_at",
		"b.deleted_at",
	).
		From("branches b").
		Where(listConditions(filter)).
		OrderBy("b.created_at DESC", "b._id DESC")
	if filter.Limit > 0 {
		builder = builder.
			Limit(uint64(filter.Limit)).
			Offset(uint64((max(filter.Page, 1) - 1) * filter.Limit))
	}
	return builder
}

func (q *branchQuery) FindBranches(ctx context.Context, filter *branchModel.Filter) ([]*branchModel.Branch, int64, int64, error) {
	ctxt := "BranchQuery-FindBranches"
	query, args, err := psql.Select("COUNT(1)").
		From("branches b").
		Where(listConditions(filter)).
		ToSql()
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
	if query, args, err = listQuery(filter).ToSql(); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrToSql")
		return nil, 0, 0, err
	}
	rows, err := q.dbRead.Query(ctx, query, args...)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrQuery")
		return nil, 0, 0, err
	}
	defer rows.Close()
	var response []*branchModel.Branch
	for rows.Next() {
		var branch branchModel.Branch
		if err = rows.Scan(
			&branch.ID,
			&branch.Number,
			&branch.Name,
			&branch.CreatedAt,
			&branch.UpdatedAt,
			&branch.DeletedAt,
		); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
			return nil, 0, 0, err
		}
		response = append(response, &branch)
	}
	if err = rows.Err(); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrRows")
		return nil, 0, 0, err
	}
	return response, total, pages, nil
}

func activeIDsQuery(branchIDs []string) sq.SelectBuilder {
	return psql.Select("id").
		From("branches").
		Where(sq.Eq{"deleted_at": nil, "id": branchIDs})
}

func (q *branchQuery) FindActiveBranchIDs(ctx context.Context, branchIDs []string) ([]string, error) {
	ctxt := "BranchQuery-FindActiveBranchIDs"
	if len(branchIDs) == 0 {
		return nil, nil
	}
	query, args, err := activeIDsQuery(branchIDs).ToSql()
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrToSql")
		return nil, err
	}
	rows, err := q.dbRead.Query(ctx, query, args...)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrQuery")
		return nil, err
	}
	response, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrCollectRows")
		return nil, err
	}
	return response, nil
}

func (q *branchQuery) CreateBranch(ctx context.Context, request *branchModel.NewBranch) (*branchModel.Branch, error) {
	ctxt := "BranchQuery-CreateBranch"
	branchID, branchSqID := helper.GenerateUniqueID()
	now := time.Now()
	var response branchModel.Branch
	if err := q.dbWrite.QueryRow(
		ctx,
		`INSERT INTO branches (
			_id
			, id
			, number
			, name
			, created_at
			, updated_at
		) VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
			, number
			, name
			, created_at
			, updated_at
			, deleted_at`,
		branchID,
		branchSqID,
		request.Number,
		request.Name,
		now,
	).Scan(
		&response.ID,
		&response.Number,
		&response.Name,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.DeletedAt,
	); err != nil {
		if err = translateError(err); !errors.Is(err, branchModel.ErrUniqueNumberViolation) {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
		}
		return nil, err
	}
	return &response, nil
}

func (q *branchQuery) UpdateBranch(ctx context.Context, request *branchModel.Branch) error {
	ctxt := "BranchQuery-UpdateBranch"
	err := q.dbWrite.QueryRow(
		ctx,
		`UPDATE branches SET
			number = $1
			, name = $2
			, updated_at = $3
		WHERE id = $4
			AND deleted_at IS NULL
		RETURNING id
			, number
			, name
			, created_at
			, updated_at
			, deleted_at`,
		request.Number,
		request.Name,
		time.Now(),
		request.ID,
	).Scan(
		&request.ID,
		&request.Number,
		&request.Name,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.DeletedAt,
	)
	if err != nil {
		if err = translateError(err); !errors.Is(err, branchModel.ErrUniqueNumberViolation) {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
		}
	}
	return err
}

func (q *branchQuery) DeleteBranch(ctx context.Context, branchID string) (int64, error) {
	ctxt := "BranchQuery-DeleteBranch"
	now := time.Now()
	commandTag, err := q.dbWrite.Exec(
		ctx,
		`UPDATE branches SET
			updated_at = $1
			, deleted_at = $1
		WHERE id = $2
			AND deleted_at IS NULL`,
		now,
		branchID,
	)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrExec")
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}
