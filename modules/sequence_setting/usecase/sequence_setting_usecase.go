package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nsqio/go-nsq"
	"github.com/roysitumorang/kilau/config"
	appErrors "github.com/roysitumorang/kilau/errors"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/models"
	branchQuery "github.com/roysitumorang/kilau/modules/branch/query"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	sequenceSettingQuery "github.com/roysitumorang/kilau/modules/sequence_setting/query"
	serviceNsq "github.com/roysitumorang/kilau/services/nsq"
	"go.uber.org/zap"
)

type (
	sequenceSettingUseCase struct {
		sequenceSettingQuery sequenceSettingQuery.SequenceSettingQuery
		branchQuery          branchQuery.BranchQuery
		publisher            serviceNsq.Publisher
		nsqConsumer          *serviceNsq.Consumer
	}
)

func New(
	sequenceSettingQuery sequenceSettingQuery.SequenceSettingQuery,
	branchQuery branchQuery.BranchQuery,
	publisher serviceNsq.Publisher,
	nsqConsumer *serviceNsq.Consumer,
) SequenceSettingUseCase {
	return &sequenceSettingUseCase{
		sequenceSettingQuery: sequenceSettingQuery,
		branchQuery:          branchQuery,
		publisher:            publisher,
		nsqConsumer:          nsqConsumer,
	}
}

func (q *sequenceSettingUseCase) FindSequenceSettings(ctx context.Context, filter *sequenceSettingModel.Filter) ([]*sequenceSettingModel.SequenceSetting, *models.Pagination, error) {
	ctxt := "SequenceSettingUseCase-FindSequenceSettings"
	sequenceSettings, total, pages, err := q.sequenceSettingQuery.FindSequenceSettings(ctx, filter)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
		return nil, nil, err
	}
	rows := make([]*sequenceSettingModel.SequenceSetting, len(sequenceSettings))
	copy(rows, sequenceSettings)
	pagination, err := helper.SetPagination(total, pages, filter.Limit, filter.Page, filter.PaginationURL, filter.UrlValues)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrSetPagination")
		return nil, nil, err
	}
	return rows, pagination, nil
}

func (q *sequenceSettingUseCase) FindSequenceSettingByID(ctx context.Context, sequenceSettingID string) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-FindSequenceSettingByID"
	sequenceSettings, _, _, err := q.sequenceSettingQuery.FindSequenceSettings(
		ctx,
		sequenceSettingModel.NewFilter(sequenceSettingModel.WithSequenceSettingIDs(sequenceSettingID)),
	)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
		return nil, err
	}
	if len(sequenceSettings) == 0 {
		return nil, appErrors.NotFound(msgNotFound)
	}
	return sequenceSettings[0], nil
}

// FindSequenceSettingByBranchID returns the most recently created setting of the branch.
func (q *sequenceSettingUseCase) FindSequenceSettingByBranchID(ctx context.Context, branchID string) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-FindSequenceSettingByBranchID"
	sequenceSettings, _, _, err := q.sequenceSettingQuery.FindSequenceSettings(
		ctx,
		sequenceSettingModel.NewFilter(
			sequenceSettingModel.WithBranchIDs(branchID),
			sequenceSettingModel.WithLimit(1),
		),
	)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
		return nil, err
	}
	if len(sequenceSettings) == 0 {
		return nil, appErrors.NotFound(msgNotFound)
	}
	return sequenceSettings[0], nil
}

func (q *sequenceSettingUseCase) CreateSequenceSetting(ctx context.Context, request *sequenceSettingModel.NewSequenceSetting) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-CreateSequenceSetting"
	request.Normalize()
	if details := helper.Problems(request); len(details) > 0 {
		return nil, appErrors.ValidationFailed(msgValidationFailed, details...)
	}
	key := request.Key()
	existing, err := q.sequenceSettingQuery.FindSequenceSettingsByKeys(ctx, []sequenceSettingModel.ScopedKey{key})
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettingsByKeys")
		return nil, err
	}
	if len(existing) > 0 {
		return nil, appErrors.DuplicateKey(msgDuplicateKey, duplicateProblem(key))
	}
	missingBranchIDs, err := q.findMissingBranchIDs(ctx, []string{key.BranchID})
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindMissingBranchIDs")
		return nil, err
	}
	if len(missingBranchIDs) > 0 {
		return nil, appErrors.OwnerNotFound(msgOwnerNotFound, ownerProblem(key.BranchID))
	}
	response, err := q.create(ctx, []*sequenceSettingModel.NewSequenceSetting{request})
	if err != nil {
		return nil, err
	}
	return response[0], nil
}

func (q *sequenceSettingUseCase) BulkCreateSequenceSettings(ctx context.Context, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-BulkCreateSequenceSettings"
	if err := checkBatchSize(len(requests)); err != nil {
		return nil, err
	}
	for i, request := range requests {
		if request == nil {
			return nil, appErrors.ValidationFailed(msgValidationFailed, itemProblem(i, "item is required"))
		}
		request.Normalize()
	}
	var (
		duplicates  []string
		keys        []sequenceSettingModel.ScopedKey
		branchIDs   []string
		mapKeys     = map[sequenceSettingModel.ScopedKey]int{}
		mapBranches = map[string]struct{}{}
	)
	for i, request := range requests {
		key := request.Key()
		if !key.Complete() {
			continue
		}
		if j, ok := mapKeys[key]; ok {
			duplicates = append(duplicates, itemProblem(i, fmt.Sprintf("duplicate combination of %s (same as item %d)", key, j+1)))
			continue
		}
		mapKeys[key] = i
		keys = append(keys, key)
		if _, ok := mapBranches[key.BranchID]; !ok {
			mapBranches[key.BranchID] = struct{}{}
			branchIDs = append(branchIDs, key.BranchID)
		}
	}
	if len(duplicates) > 0 {
		return nil, appErrors.ValidationFailed(msgValidationFailed, duplicates...)
	}
	existing, err := q.sequenceSettingQuery.FindSequenceSettingsByKeys(ctx, keys)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettingsByKeys")
		return nil, err
	}
	if len(existing) > 0 {
		mapExisting := make(map[sequenceSettingModel.ScopedKey]struct{}, len(existing))
		for _, sequenceSetting := range existing {
			mapExisting[sequenceSetting.Key()] = struct{}{}
		}
		var collisions []string
		for _, key := range keys {
			if _, ok := mapExisting[key]; ok {
				collisions = append(collisions, duplicateProblem(key))
			}
		}
		return nil, appErrors.DuplicateKey(msgDuplicateKey, collisions...)
	}
	missingBranchIDs, err := q.findMissingBranchIDs(ctx, branchIDs)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindMissingBranchIDs")
		return nil, err
	}
	if len(missingBranchIDs) > 0 {
		details := make([]string, len(missingBranchIDs))
		for i, branchID := range missingBranchIDs {
			details[i] = ownerProblem(branchID)
		}
		return nil, appErrors.OwnerNotFound(msgOwnerNotFound, details...)
	}
	var invalid []string
	for i, request := range requests {
		for _, detail := range helper.Problems(request) {
			invalid = append(invalid, itemProblem(i, detail))
		}
	}
	if len(invalid) > 0 {
		return nil, appErrors.ValidationFailed(msgValidationFailed, invalid...)
	}
	return q.create(ctx, requests)
}

func (q *sequenceSettingUseCase) UpdateSequenceSetting(ctx context.Context, request *sequenceSettingModel.UpdateSequenceSetting) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-UpdateSequenceSetting"
	request.Normalize()
	current, err := q.FindSequenceSettingByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if details := helper.Problems(request); len(details) > 0 {
		return nil, appErrors.ValidationFailed(msgValidationFailed, details...)
	}
	key := request.EffectiveKey(current)
	if key != current.Key() {
		existing, err := q.sequenceSettingQuery.FindSequenceSettingsByKeys(ctx, []sequenceSettingModel.ScopedKey{key})
		if err != nil {
			helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettingsByKeys")
			return nil, err
		}
		for _, sequenceSetting := range existing {
			if sequenceSetting.ID != current.ID {
				return nil, appErrors.DuplicateKey(msgDuplicateKey, duplicateProblem(key))
			}
		}
	}
	if key.BranchID != current.BranchID {
		missingBranchIDs, err := q.findMissingBranchIDs(ctx, []string{key.BranchID})
		if err != nil {
			helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindMissingBranchIDs")
			return nil, err
		}
		if len(missingBranchIDs) > 0 {
			return nil, appErrors.OwnerNotFound(msgOwnerNotFound, ownerProblem(key.BranchID))
		}
	}
	response, err := q.update(ctx, []*sequenceSettingModel.SequenceSetting{request.Apply(current)})
	if err != nil {
		return nil, err
	}
	return response[0], nil
}

func (q *sequenceSettingUseCase) BulkUpdateSequenceSettings(ctx context.Context, requests []*sequenceSettingModel.UpdateSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-BulkUpdateSequenceSettings"
	if err := checkBatchSize(len(requests)); err != nil {
		return nil, err
	}
	var (
		collected  problems
		ids        []string
		mapIndexes = map[string]int{}
	)
	for i, request := range requests {
		if request == nil {
			collected.add(appErrors.KindValidationFailed, itemProblem(i, "item is required"))
			continue
		}
		request.Normalize()
		for _, detail := range helper.Problems(request) {
			collected.add(appErrors.KindValidationFailed, itemProblem(i, detail))
		}
		if request.ID == "" {
			collected.add(appErrors.KindValidationFailed, itemProblem(i, "id is required"))
			continue
		}
		if j, ok := mapIndexes[request.ID]; ok {
			collected.add(appErrors.KindValidationFailed, itemProblem(i, fmt.Sprintf("id %s is repeated (same as item %d)", request.ID, j+1)))
			continue
		}
		mapIndexes[request.ID] = i
		ids = append(ids, request.ID)
	}
	mapCurrent := map[string]*sequenceSettingModel.SequenceSetting{}
	if len(ids) > 0 {
		sequenceSettings, _, _, err := q.sequenceSettingQuery.FindSequenceSettings(
			ctx,
			sequenceSettingModel.NewFilter(sequenceSettingModel.WithSequenceSettingIDs(ids...)),
		)
		if err != nil {
			helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
			return nil, err
		}
		for _, sequenceSetting := range sequenceSettings {
			mapCurrent[sequenceSetting.ID] = sequenceSetting
		}
	}
	var (
		changedKeys     []sequenceSettingModel.ScopedKey
		newBranchIDs    []string
		mapChangedKeys  = map[sequenceSettingModel.ScopedKey]int{}
		mapNewBranchIDs = map[string]struct{}{}
	)
	for _, id := range ids {
		i := mapIndexes[id]
		current, ok := mapCurrent[id]
		if !ok {
			collected.add(appErrors.KindNotFound, itemProblem(i, fmt.Sprintf("sequence setting %s not found", id)))
			continue
		}
		key := requests[i].EffectiveKey(current)
		if key == current.Key() {
			continue
		}
		if j, ok := mapChangedKeys[key]; ok {
			collected.add(appErrors.KindDuplicateKey, itemProblem(i, fmt.Sprintf("combination of %s conflicts with item %d", key, j+1)))
		} else if key.Complete() {
			mapChangedKeys[key] = i
			changedKeys = append(changedKeys, key)
		}
		if _, ok := mapNewBranchIDs[key.BranchID]; !ok && key.BranchID != current.BranchID && key.BranchID != "" {
			mapNewBranchIDs[key.BranchID] = struct{}{}
			newBranchIDs = append(newBranchIDs, key.BranchID)
		}
	}
	existing, err := q.sequenceSettingQuery.FindSequenceSettingsByKeys(ctx, changedKeys)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettingsByKeys")
		return nil, err
	}
	mapOwners := make(map[sequenceSettingModel.ScopedKey][]string, len(existing))
	for _, sequenceSetting := range existing {
		key := sequenceSetting.Key()
		mapOwners[key] = append(mapOwners[key], sequenceSetting.ID)
	}
	for _, key := range changedKeys {
		i := mapChangedKeys[key]
		for _, ownerID := range mapOwners[key] {
			if ownerID != requests[i].ID {
				collected.add(appErrors.KindDuplicateKey, itemProblem(i, duplicateProblem(key)))
				break
			}
		}
	}
	missingBranchIDs, err := q.findMissingBranchIDs(ctx, newBranchIDs)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindMissingBranchIDs")
		return nil, err
	}
	for _, branchID := range missingBranchIDs {
		collected.add(appErrors.KindOwnerNotFound, ownerProblem(branchID))
	}
	if !collected.empty() {
		return nil, collected.err()
	}
	updates := make([]*sequenceSettingModel.SequenceSetting, len(requests))
	for i, request := range requests {
		updates[i] = request.Apply(mapCurrent[request.ID])
	}
	return q.update(ctx, updates)
}

func (q *sequenceSettingUseCase) ToggleStatus(ctx context.Context, sequenceSettingID string, request *sequenceSettingModel.StatusToggle) (*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-ToggleStatus"
	current, err := q.FindSequenceSettingByID(ctx, sequenceSettingID)
	if err != nil {
		return nil, err
	}
	statusID, err := request.Resolve(current.StatusID)
	if err != nil {
		return nil, appErrors.ValidationFailed(msgValidationFailed, err.Error())
	}
	var response *sequenceSettingModel.SequenceSetting
	if err = q.sequenceSettingQuery.WithTransaction(ctx, func(tx pgx.Tx) (err error) {
		response, err = q.sequenceSettingQuery.UpdateSequenceSettingStatus(ctx, tx, current.ID, statusID)
		return
	}); err != nil {
		if errors.Is(err, sequenceSettingModel.ErrSequenceSettingNotFound) {
			return nil, appErrors.NotFound(msgNotFound)
		}
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrUpdateSequenceSettingStatus")
		return nil, err
	}
	q.publish(ctx, models.ActionStatus, response.ID)
	return response, nil
}

func (q *sequenceSettingUseCase) DeleteSequenceSetting(ctx context.Context, sequenceSettingID string) error {
	ctxt := "SequenceSettingUseCase-DeleteSequenceSetting"
	var rowsAffected int64
	if err := q.sequenceSettingQuery.WithTransaction(ctx, func(tx pgx.Tx) (err error) {
		rowsAffected, err = q.sequenceSettingQuery.DeleteSequenceSetting(ctx, tx, sequenceSettingID)
		return
	}); err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrDeleteSequenceSetting")
		return err
	}
	if rowsAffected == 0 {
		return appErrors.NotFound(msgNotFound)
	}
	q.publish(ctx, models.ActionDelete, sequenceSettingID)
	return nil
}

// AuditOrphans reports live settings whose branch has been deleted since.
func (q *sequenceSettingUseCase) AuditOrphans(ctx context.Context) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-AuditOrphans"
	orphans, err := q.sequenceSettingQuery.FindOrphanSequenceSettings(ctx)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindOrphanSequenceSettings")
		return nil, err
	}
	for _, orphan := range orphans {
		helper.Log(
			ctx,
			zap.WarnLevel,
			fmt.Sprintf("sequence setting %s points at missing branch %s", orphan.ID, orphan.BranchID),
			ctxt,
			"",
		)
	}
	return orphans, nil
}

// ConsumeMessage follows branch events and flags settings left behind by a deleted branch.
func (q *sequenceSettingUseCase) ConsumeMessage(ctx context.Context) error {
	ctxt := "SequenceSettingUseCase-ConsumeMessage"
	if q.nsqConsumer == nil {
		return errors.New("nsq consumer is not configured")
	}
	var counter uint64
	helper.Log(ctx, zap.InfoLevel, fmt.Sprintf("consume topic %s", config.TopicBranch), ctxt, "")
	err := q.nsqConsumer.AddHandler(ctx, func(message *nsq.Message) error {
		now := time.Now()
		atomic.AddUint64(&counter, 1)
		var body models.Message
		if err := json.Unmarshal(message.Body, &body); err != nil {
			message.Finish()
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrUnmarshal")
			return nil
		}
		if body.Action == models.ActionDelete {
			sequenceSettings, _, _, err := q.sequenceSettingQuery.FindSequenceSettings(
				ctx,
				sequenceSettingModel.NewFilter(sequenceSettingModel.WithBranchIDs(body.ID)),
			)
			if err != nil {
				helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrFindSequenceSettings")
				return err
			}
			for _, sequenceSetting := range sequenceSettings {
				helper.Log(
					ctx,
					zap.WarnLevel,
					fmt.Sprintf("sequence setting %s points at deleted branch %s", sequenceSetting.ID, body.ID),
					ctxt,
					"",
				)
			}
		}
		message.Finish()
		helper.Log(
			ctx,
			zap.InfoLevel,
			fmt.Sprintf(
				"message on topic %s@%d: %s, consumed in %s",
				config.TopicBranch,
				atomic.LoadUint64(&counter),
				helper.ByteSlice2String(message.Body),
				time.Since(now).String(),
			),
			ctxt,
			"",
		)
		return nil
	})
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrAddHandler")
	}
	return err
}

func (q *sequenceSettingUseCase) create(ctx context.Context, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-create"
	var response []*sequenceSettingModel.SequenceSetting
	if err := q.sequenceSettingQuery.WithTransaction(ctx, func(tx pgx.Tx) (err error) {
		response, err = q.sequenceSettingQuery.CreateSequenceSettings(ctx, tx, requests)
		return
	}); err != nil {
		if errors.Is(err, sequenceSettingModel.ErrUniqueKeyViolation) {
			return nil, appErrors.DuplicateKey(msgDuplicateKey, err.Error())
		}
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrCreateSequenceSettings")
		return nil, err
	}
	ids := make([]string, len(response))
	for i, sequenceSetting := range response {
		ids[i] = sequenceSetting.ID
	}
	q.publish(ctx, models.ActionCreate, ids...)
	return response, nil
}

func (q *sequenceSettingUseCase) update(ctx context.Context, requests []*sequenceSettingModel.SequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error) {
	ctxt := "SequenceSettingUseCase-update"
	if err := q.sequenceSettingQuery.WithTransaction(ctx, func(tx pgx.Tx) error {
		return q.sequenceSettingQuery.UpdateSequenceSettings(ctx, tx, requests)
	}); err != nil {
		switch {
		case errors.Is(err, sequenceSettingModel.ErrUniqueKeyViolation):
			return nil, appErrors.DuplicateKey(msgDuplicateKey, err.Error())
		case errors.Is(err, sequenceSettingModel.ErrSequenceSettingNotFound):
			return nil, appErrors.NotFound(msgNotFound)
		}
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrUpdateSequenceSettings")
		return nil, err
	}
	ids := make([]string, len(requests))
	for i, sequenceSetting := range requests {
		ids[i] = sequenceSetting.ID
	}
	q.publish(ctx, models.ActionUpdate, ids...)
	return requests, nil
}

// findMissingBranchIDs returns the requested ids without a live branch, in request order.
func (q *sequenceSettingUseCase) findMissingBranchIDs(ctx context.Context, branchIDs []string) ([]string, error) {
	if len(branchIDs) == 0 {
		return nil, nil
	}
	found, err := q.branchQuery.FindActiveBranchIDs(ctx, branchIDs)
	if err != nil {
		return nil, err
	}
	mapFound := make(map[string]struct{}, len(found))
	for _, branchID := range found {
		mapFound[branchID] = struct{}{}
	}
	var response []string
	for _, branchID := range branchIDs {
		if _, ok := mapFound[branchID]; !ok {
			response = append(response, branchID)
		}
	}
	return response, nil
}

// publish never fails the caller: the write is already committed.
func (q *sequenceSettingUseCase) publish(ctx context.Context, action string, ids ...string) {
	ctxt := "SequenceSettingUseCase-publish"
	if q.publisher == nil || len(ids) == 0 {
		return
	}
	now := time.Now()
	messages := make([]any, len(ids))
	for i, id := range ids {
		eventID, err := uuid.NewV7()
		if err != nil {
			eventID = uuid.New()
		}
		messages[i] = models.Message{
			EventID:    eventID.String(),
			Action:     action,
			ID:         id,
			OccurredAt: now,
		}
	}
	if err := q.publisher.Publish(ctx, config.TopicSequenceSetting, messages...); err != nil {
		helper.Log(ctx, zap.WarnLevel, fmt.Sprintf("publish %s %s: %s", action, strings.Join(ids, ","), err.Error()), ctxt, "ErrPublish")
	}
}

func checkBatchSize(n int) error {
	if n == 0 {
		return appErrors.ValidationFailed(msgValidationFailed, "items: at least one item is required")
	}
	if n > sequenceSettingModel.MaxBulkItems {
		return appErrors.ValidationFailed(msgValidationFailed, fmt.Sprintf("items: at most %d items are allowed", sequenceSettingModel.MaxBulkItems))
	}
	return nil
}
