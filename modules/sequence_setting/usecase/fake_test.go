package usecase

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
)

type (
	fakeSequenceSettingQuery struct {
		rows     []*sequenceSettingModel.SequenceSetting
		branches *fakeBranchQuery
		lastID   int
		clock    time.Time
		writes   int
		failNext error
	}

	fakeBranchQuery struct {
		names   map[string]string
		deleted map[string]bool
	}

	fakePublisher struct {
		topics   []string
		messages []any
		err      error
	}
)

func newFakeBranchQuery(names map[string]string) *fakeBranchQuery {
	return &fakeBranchQuery{names: names, deleted: map[string]bool{}}
}

func newFakeSequenceSettingQuery(branches *fakeBranchQuery) *fakeSequenceSettingQuery {
	return &fakeSequenceSettingQuery{
		branches: branches,
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (q *fakeBranchQuery) FindBranches(context.Context, *branchModel.Filter) ([]*branchModel.Branch, int64, int64, error) {
	return nil, 0, 0, errors.New("not implemented")
}

func (q *fakeBranchQuery) FindActiveBranchIDs(_ context.Context, branchIDs []string) ([]string, error) {
	var response []string
	for _, branchID := range branchIDs {
		if _, ok := q.names[branchID]; ok && !q.deleted[branchID] {
			response = append(response, branchID)
		}
	}
	return response, nil
}

func (q *fakeBranchQuery) CreateBranch(context.Context, *branchModel.NewBranch) (*branchModel.Branch, error) {
	return nil, errors.New("not implemented")
}

func (q *fakeBranchQuery) UpdateBranch(context.Context, *branchModel.Branch) error {
	return errors.New("not implemented")
}

func (q *fakeBranchQuery) DeleteBranch(_ context.Context, branchID string) (int64, error) {
	q.deleted[branchID] = true
	return 1, nil
}

func (q *fakePublisher) Publish(_ context.Context, topic string, messages ...any) error {
	if q.err != nil {
		return q.err
	}
	q.topics = append(q.topics, topic)
	q.messages = append(q.messages, messages...)
	return nil
}

func (q *fakeSequenceSettingQuery) view(row *sequenceSettingModel.SequenceSetting) *sequenceSettingModel.SequenceSetting {
	sequenceSetting := *row
	if !q.branches.deleted[row.BranchID] {
		sequenceSetting.BranchName = q.branches.names[row.BranchID]
	}
	sequenceSetting.SequenceLabel = row.SequenceKey
	return &sequenceSetting
}

func (q *fakeSequenceSettingQuery) live() []*sequenceSettingModel.SequenceSetting {
	var response []*sequenceSettingModel.SequenceSetting
	for _, row := range q.rows {
		if row.DeletedAt == nil {
			response = append(response, row)
		}
	}
	return response
}

func (q *fakeSequenceSettingQuery) find(id string) *sequenceSettingModel.SequenceSetting {
	for _, row := range q.live() {
		if row.ID == id {
			return row
		}
	}
	return nil
}

func (q *fakeSequenceSettingQuery) tick() time.Time {
	q.clock = q.clock.Add(time.Second)
	return q.clock
}

func (q *fakeSequenceSettingQuery) WithTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	if q.failNext != nil {
		err := q.failNext
		q.failNext = nil
		return err
	}
	return fn(nil)
}

func (q *fakeSequenceSettingQuery) FindSequenceSettings(_ context.Context, filter *sequenceSettingModel.Filter) ([]*sequenceSettingModel.SequenceSetting, int64, int64, error) {
	search := strings.ToLower(filter.Search)
	var response []*sequenceSettingModel.SequenceSetting
	for _, row := range q.live() {
		if len(filter.SequenceSettingIDs) > 0 && !slices.Contains(filter.SequenceSettingIDs, row.ID) {
			continue
		}
		if len(filter.BranchIDs) > 0 && !slices.Contains(filter.BranchIDs, row.BranchID) {
			continue
		}
		view := q.view(row)
		if search != "" {
			var haystack []string
			if view.Prefix != nil {
				haystack = append(haystack, *view.Prefix)
			}
			if view.Suffix != nil {
				haystack = append(haystack, *view.Suffix)
			}
			haystack = append(haystack, view.BranchName, view.SequenceLabel)
			if !slices.ContainsFunc(haystack, func(s string) bool {
				return strings.Contains(strings.ToLower(s), search)
			}) {
				continue
			}
		}
		response = append(response, view)
	}
	slices.SortStableFunc(response, func(a, b *sequenceSettingModel.SequenceSetting) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	total := int64(len(response))
	if filter.Limit > 0 {
		offset := (max(filter.Page, 1) - 1) * filter.Limit
		response = response[min(offset, total):min(offset+filter.Limit, total)]
	}
	return response, total, 1, nil
}

func (q *fakeSequenceSettingQuery) FindSequenceSettingsByKeys(_ context.Context, keys []sequenceSettingModel.ScopedKey) ([]*sequenceSettingModel.SequenceSetting, error) {
	var response []*sequenceSettingModel.SequenceSetting
	for _, row := range q.live() {
		if slices.Contains(keys, row.Key()) {
			response = append(response, q.view(row))
		}
	}
	return response, nil
}

func (q *fakeSequenceSettingQuery) FindOrphanSequenceSettings(context.Context) ([]*sequenceSettingModel.SequenceSetting, error) {
	var response []*sequenceSettingModel.SequenceSetting
	for _, row := range q.live() {
		if _, ok := q.branches.names[row.BranchID]; !ok || q.branches.deleted[row.BranchID] {
			response = append(response, q.view(row))
		}
	}
	return response, nil
}

// checkUnique mimics the partial unique index over the rows as they would be after the write.
func (q *fakeSequenceSettingQuery) checkUnique(pending []*sequenceSettingModel.SequenceSetting) error {
	mapKeys := map[sequenceSettingModel.ScopedKey]string{}
	for _, row := range pending {
		mapKeys[row.Key()] = row.ID
	}
	seen := map[sequenceSettingModel.ScopedKey]struct{}{}
	for _, row := range pending {
		if _, ok := seen[row.Key()]; ok {
			return sequenceSettingModel.ErrUniqueKeyViolation
		}
		seen[row.Key()] = struct{}{}
	}
	for _, row := range q.live() {
		if slices.ContainsFunc(pending, func(p *sequenceSettingModel.SequenceSetting) bool { return p.ID == row.ID }) {
			continue
		}
		if _, ok := mapKeys[row.Key()]; ok {
			return sequenceSettingModel.ErrUniqueKeyViolation
		}
	}
	return nil
}

func (q *fakeSequenceSettingQuery) CreateSequenceSettings(_ context.Context, _ pgx.Tx, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	pending := make([]*sequenceSettingModel.SequenceSetting, len(requests))
	for i, request := range requests {
		q.lastID++
		now := q.tick()
		pending[i] = &sequenceSettingModel.SequenceSetting{
			ID:          strconv.Itoa(q.lastID),
			BranchID:    request.BranchID,
			SequenceKey: request.SequenceKey,
			Prefix:      request.Prefix,
			Suffix:      request.Suffix,
			StartNumber: request.StartNumber,
			StatusID:    request.Status(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	if err := q.checkUnique(pending); err != nil {
		return nil, err
	}
	q.writes++
	response := make([]*sequenceSettingModel.SequenceSetting, len(pending))
	for i, row := range pending {
		q.rows = append(q.rows, row)
		response[i] = q.view(row)
	}
	return response, nil
}

func (q *fakeSequenceSettingQuery) UpdateSequenceSettings(_ context.Context, _ pgx.Tx, requests []*sequenceSettingModel.SequenceSetting) error {
	for _, request := range requests {
		if q.find(request.ID) == nil {
			return sequenceSettingModel.ErrSequenceSettingNotFound
		}
	}
	if err := q.checkUnique(requests); err != nil {
		return err
	}
	q.writes++
	for _, request := range requests {
		row := q.find(request.ID)
		request.UpdatedAt = q.tick()
		request.BranchName, request.BranchNumber, request.SequenceLabel = "", "", ""
		*row = *request
		*request = *q.view(row)
	}
	return nil
}

func (q *fakeSequenceSettingQuery) UpdateSequenceSettingStatus(_ context.Context, _ pgx.Tx, sequenceSettingID string, statusID int8) (*sequenceSettingModel.SequenceSetting, error) {
	row := q.find(sequenceSettingID)
	if row == nil {
		return nil, sequenceSettingModel.ErrSequenceSettingNotFound
	}
	q.writes++
	row.StatusID = statusID
	row.UpdatedAt = q.tick()
	return q.view(row), nil
}

func (q *fakeSequenceSettingQuery) DeleteSequenceSetting(_ context.Context, _ pgx.Tx, sequenceSettingID string) (int64, error) {
	row := q.find(sequenceSettingID)
	if row == nil {
		return 0, nil
	}
	q.writes++
	now := q.tick()
	row.DeletedAt = &now
	row.UpdatedAt = now
	return 1, nil
}
