package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/roysitumorang/kilau/config"
	appErrors "github.com/roysitumorang/kilau/errors"
	"github.com/roysitumorang/kilau/models"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	useCase   SequenceSettingUseCase
	store     *fakeSequenceSettingQuery
	branches  *fakeBranchQuery
	publisher *fakePublisher
}

func newFixture() *fixture {
	branches := newFakeBranchQuery(map[string]string{"1": "Jakarta", "5": "Bandung"})
	store := newFakeSequenceSettingQuery(branches)
	publisher := &fakePublisher{}
	return &fixture{
		useCase:   New(store, branches, publisher, nil),
		store:     store,
		branches:  branches,
		publisher: publisher,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func newSetting(branchID, sequenceKey string) *sequenceSettingModel.NewSequenceSetting {
	return &sequenceSettingModel.NewSequenceSetting{BranchID: branchID, SequenceKey: sequenceKey}
}

func requireKind(t *testing.T, err error, kind appErrors.Kind) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.As(err)
	require.NotNil(t, appErr, err.Error())
	require.Equal(t, kind, appErr.Kind(), err.Error())
	return appErr
}

func (f *fixture) mustCreate(t *testing.T, request *sequenceSettingModel.NewSequenceSetting) *sequenceSettingModel.SequenceSetting {
	t.Helper()
	response, err := f.useCase.CreateSequenceSetting(context.Background(), request)
	require.NoError(t, err)
	return response
}

func TestCreateDefaultsStatusToActive(t *testing.T) {
	f := newFixture()
	request := newSetting("1", "INV_SEQ_1")
	request.Prefix = ptr("INV")
	response := f.mustCreate(t, request)
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, models.StatusActive, response.StatusID)
	assert.Equal(t, "INV", *response.Prefix)
	assert.False(t, response.CreatedAt.IsZero())
	assert.Equal(t, []string{config.TopicSequenceSetting}, f.publisher.topics)
	require.Len(t, f.publisher.messages, 1)
	message := f.publisher.messages[0].(models.Message)
	assert.Equal(t, models.ActionCreate, message.Action)
	assert.Equal(t, response.ID, message.ID)
	assert.NotEmpty(t, message.EventID)
}

func TestCreateKeepsExplicitInactiveStatus(t *testing.T) {
	f := newFixture()
	request := newSetting("1", "INV")
	request.StatusID = ptr(models.StatusInactive)
	response := f.mustCreate(t, request)
	assert.Equal(t, models.StatusInactive, response.StatusID)
}

func TestCreateRejectsDuplicatePair(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("1", "INV_SEQ_1"))
	_, err := f.useCase.CreateSequenceSetting(context.Background(), newSetting("1", " INV_SEQ_1 "))
	appErr := requireKind(t, err, appErrors.KindDuplicateKey)
	assert.Equal(t, http.StatusBadRequest, appErr.Code())
	assert.Equal(t, []string{"combination of sequence_key 'INV_SEQ_1' and branch_id 1 already exists"}, appErr.Details())
	assert.Len(t, f.store.live(), 1)
}

func TestCreateAllowsSameKeyInAnotherBranch(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("1", "INV"))
	f.mustCreate(t, newSetting("5", "INV"))
	assert.Len(t, f.store.live(), 2)
}

func TestCreateRejectsUnknownBranch(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.CreateSequenceSetting(context.Background(), newSetting("99", "INV"))
	appErr := requireKind(t, err, appErrors.KindOwnerNotFound)
	assert.Equal(t, http.StatusBadRequest, appErr.Code())
	assert.Equal(t, []string{"branch_id 99 does not exist"}, appErr.Details())
	assert.Zero(t, f.store.writes)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.CreateSequenceSetting(context.Background(), newSetting(" ", ""))
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	assert.Equal(t, []string{"branch_id is required", "sequence_key is required"}, appErr.Details())
	assert.Zero(t, f.store.writes)
}

func TestCreateTranslatesConstraintRace(t *testing.T) {
	f := newFixture()
	f.store.failNext = sequenceSettingModel.ErrUniqueKeyViolation
	_, err := f.useCase.CreateSequenceSetting(context.Background(), newSetting("1", "INV"))
	requireKind(t, err, appErrors.KindDuplicateKey)
}

func TestCreatePropagatesInfrastructureErrors(t *testing.T) {
	f := newFixture()
	f.store.failNext = errors.New("connection reset")
	_, err := f.useCase.CreateSequenceSetting(context.Background(), newSetting("1", "INV"))
	require.Error(t, err)
	assert.Nil(t, appErrors.As(err))
	assert.Equal(t, http.StatusInternalServerError, appErrors.Code(err))
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("nsqd unavailable")
	f.mustCreate(t, newSetting("1", "INV"))
	assert.Len(t, f.store.live(), 1)
}

func TestBulkCreateRejectsDuplicatesWithinBatch(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("1", "A"),
	})
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	require.Len(t, appErr.Details(), 1)
	assert.Equal(t, "Item 2: duplicate combination of sequence_key 'A' and branch_id 1 (same as item 1)", appErr.Details()[0])
	assert.Empty(t, f.store.rows)
	assert.Zero(t, f.store.writes)
}

func TestBulkCreateListsEveryDuplicateWithinBatch(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("1", "B"),
		newSetting("1", "A"),
		newSetting("1", "B"),
		newSetting("1", "A"),
	})
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	require.Len(t, appErr.Details(), 3)
	assert.Contains(t, appErr.Details()[0], "Item 3:")
	assert.Contains(t, appErr.Details()[1], "Item 4:")
	assert.Contains(t, appErr.Details()[2], "Item 5:")
	assert.Empty(t, f.store.rows)
}

func TestBulkCreateRejectsCollisionsWithStore(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("1", "A"))
	f.mustCreate(t, newSetting("5", "B"))
	writes := f.store.writes
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("1", "C"),
		newSetting("5", "B"),
	})
	appErr := requireKind(t, err, appErrors.KindDuplicateKey)
	assert.Equal(t, []string{
		"combination of sequence_key 'A' and branch_id 1 already exists",
		"combination of sequence_key 'B' and branch_id 5 already exists",
	}, appErr.Details())
	assert.Len(t, f.store.live(), 2)
	assert.Equal(t, writes, f.store.writes)
}

func TestBulkCreateReportsMissingBranchesTogether(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("7", "A"),
		newSetting("1", "A"),
		newSetting("8", "A"),
		newSetting("7", "B"),
	})
	appErr := requireKind(t, err, appErrors.KindOwnerNotFound)
	assert.Equal(t, []string{"branch_id 7 does not exist", "branch_id 8 does not exist"}, appErr.Details())
	assert.Empty(t, f.store.rows)
}

func TestBulkCreateAccumulatesItemProblems(t *testing.T) {
	f := newFixture()
	first := newSetting("1", "A")
	first.StartNumber = ptr(int64(-1))
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		first,
		newSetting("1", ""),
		newSetting("", "C"),
	})
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	assert.Equal(t, []string{
		"Item 1: start_number must be at least 0",
		"Item 2: sequence_key is required",
		"Item 3: branch_id is required",
	}, appErr.Details())
	assert.Empty(t, f.store.rows)
}

func TestBulkCreateRejectsEmptyBatch(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), nil)
	requireKind(t, err, appErrors.KindValidationFailed)
}

func TestBulkCreateWritesEverythingInOrder(t *testing.T) {
	f := newFixture()
	response, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("5", "A"),
		newSetting("1", "B"),
	})
	require.NoError(t, err)
	require.Len(t, response, 3)
	assert.Equal(t, sequenceSettingModel.ScopedKey{BranchID: "1", SequenceKey: "A"}, response[0].Key())
	assert.Equal(t, sequenceSettingModel.ScopedKey{BranchID: "5", SequenceKey: "A"}, response[1].Key())
	assert.Equal(t, sequenceSettingModel.ScopedKey{BranchID: "1", SequenceKey: "B"}, response[2].Key())
	assert.Equal(t, 1, f.store.writes)
	assert.Len(t, f.publisher.messages, 3)
}

func TestBulkCreateIsAtomicWhenStoreRejects(t *testing.T) {
	f := newFixture()
	f.store.failNext = sequenceSettingModel.ErrUniqueKeyViolation
	_, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("1", "B"),
	})
	requireKind(t, err, appErrors.KindDuplicateKey)
	assert.Empty(t, f.store.rows)
	assert.Empty(t, f.publisher.messages)
}

func TestBulkUpdateRejectsUnknownBranch(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "INV"))
	before := *f.store.find(row.ID)
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: row.ID, BranchID: ptr("2")},
	})
	appErr := requireKind(t, err, appErrors.KindOwnerNotFound)
	assert.Equal(t, []string{"branch_id 2 does not exist"}, appErr.Details())
	assert.Equal(t, before, *f.store.find(row.ID))
}

func TestBulkUpdateReportsMissingIDsTogether(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "INV"))
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: "404", Prefix: ptr("X")},
		{ID: row.ID, Prefix: ptr("Y")},
		{ID: "405", Prefix: ptr("Z")},
	})
	appErr := requireKind(t, err, appErrors.KindNotFound)
	assert.Equal(t, http.StatusBadRequest, appErr.Code())
	assert.Equal(t, []string{
		"Item 1: sequence setting 404 not found",
		"Item 3: sequence setting 405 not found",
	}, appErr.Details())
	assert.Nil(t, f.store.find(row.ID).Prefix)
}

func TestBulkUpdateRequiresIDs(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{Prefix: ptr("X")},
		{ID: " "},
	})
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	assert.Equal(t, []string{"Item 1: id is required", "Item 2: id is required"}, appErr.Details())
}

func TestBulkUpdateMixedProblemsDegradeToValidationFailed(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "INV"))
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: "404"},
		{ID: row.ID, BranchID: ptr("9")},
	})
	appErr := requireKind(t, err, appErrors.KindValidationFailed)
	assert.Equal(t, []string{
		"Item 1: sequence setting 404 not found",
		"branch_id 9 does not exist",
	}, appErr.Details())
}

func TestBulkUpdateRejectsCollisionWithOtherRows(t *testing.T) {
	f := newFixture()
	first := f.mustCreate(t, newSetting("1", "A"))
	second := f.mustCreate(t, newSetting("1", "B"))
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: first.ID, Prefix: ptr("P")},
		{ID: second.ID, SequenceKey: ptr("A")},
	})
	appErr := requireKind(t, err, appErrors.KindDuplicateKey)
	assert.Equal(t, []string{"Item 2: combination of sequence_key 'A' and branch_id 1 already exists"}, appErr.Details())
	assert.Nil(t, f.store.find(first.ID).Prefix)
	assert.Equal(t, "B", f.store.find(second.ID).SequenceKey)
}

func TestBulkUpdateRejectsCollisionWithinBatch(t *testing.T) {
	f := newFixture()
	first := f.mustCreate(t, newSetting("1", "A"))
	second := f.mustCreate(t, newSetting("1", "B"))
	_, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: first.ID, SequenceKey: ptr("C")},
		{ID: second.ID, SequenceKey: ptr("C")},
	})
	appErr := requireKind(t, err, appErrors.KindDuplicateKey)
	assert.Equal(t, []string{"Item 2: combination of sequence_key 'C' and branch_id 1 conflicts with item 1"}, appErr.Details())
}

func TestBulkUpdateKeepingOwnKeyIsNotACollision(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "A"))
	response, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: row.ID, BranchID: ptr("1"), SequenceKey: ptr("A"), Suffix: ptr("/X")},
	})
	require.NoError(t, err)
	assert.Equal(t, "/X", *response[0].Suffix)
}

func TestBulkUpdateAppliesPartialFields(t *testing.T) {
	f := newFixture()
	first := newSetting("1", "A")
	first.Prefix, first.Suffix, first.StartNumber = ptr("INV"), ptr("/JKT"), ptr(int64(100))
	created, err := f.useCase.BulkCreateSequenceSettings(context.Background(), []*sequenceSettingModel.NewSequenceSetting{first, newSetting("1", "B")})
	require.NoError(t, err)
	response, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: created[0].ID, BranchID: ptr("5"), StatusID: ptr(models.StatusInactive)},
		{ID: created[1].ID, Prefix: ptr("")},
	})
	require.NoError(t, err)
	require.Len(t, response, 2)
	stored := f.store.find(created[0].ID)
	assert.Equal(t, "5", stored.BranchID)
	assert.Equal(t, "A", stored.SequenceKey)
	assert.Equal(t, "INV", *stored.Prefix)
	assert.Equal(t, "/JKT", *stored.Suffix)
	assert.Equal(t, int64(100), *stored.StartNumber)
	assert.Equal(t, models.StatusInactive, stored.StatusID)
	assert.Equal(t, "", *f.store.find(created[1].ID).Prefix)
	assert.Equal(t, response[1].ID, created[1].ID)
}

func TestUpdateOnlyTouchesPresentFields(t *testing.T) {
	f := newFixture()
	request := newSetting("1", "INV")
	request.Suffix, request.StartNumber = ptr("/JKT"), ptr(int64(10))
	row := f.mustCreate(t, request)
	response, err := f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{ID: row.ID, Prefix: ptr("NEW")})
	require.NoError(t, err)
	assert.Equal(t, "NEW", *response.Prefix)
	stored := f.store.find(row.ID)
	assert.Equal(t, "/JKT", *stored.Suffix)
	assert.Equal(t, int64(10), *stored.StartNumber)
	assert.Equal(t, models.StatusActive, stored.StatusID)
	assert.Equal(t, "INV", stored.SequenceKey)
	assert.Equal(t, "1", stored.BranchID)
}

func TestUpdateAcceptsZeroValues(t *testing.T) {
	f := newFixture()
	request := newSetting("1", "INV")
	request.StartNumber = ptr(int64(10))
	row := f.mustCreate(t, request)
	_, err := f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{
		ID:          row.ID,
		StatusID:    ptr(models.StatusInactive),
		StartNumber: ptr(int64(0)),
	})
	require.NoError(t, err)
	stored := f.store.find(row.ID)
	assert.Equal(t, models.StatusInactive, stored.StatusID)
	assert.Equal(t, int64(0), *stored.StartNumber)
}

func TestUpdateChecksUniquenessAndBranchOnlyWhenChanged(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("5", "INV"))
	row := f.mustCreate(t, newSetting("1", "INV"))
	_, err := f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{ID: row.ID, BranchID: ptr("5")})
	requireKind(t, err, appErrors.KindDuplicateKey)
	_, err = f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{ID: row.ID, BranchID: ptr("9")})
	requireKind(t, err, appErrors.KindOwnerNotFound)
	f.branches.deleted["1"] = true
	_, err = f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{ID: row.ID, Prefix: ptr("P")})
	require.NoError(t, err)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{ID: "404", Prefix: ptr("P")})
	appErr := requireKind(t, err, appErrors.KindNotFound)
	assert.Equal(t, http.StatusNotFound, appErr.Code())
}

func TestWritesReturnJoinedView(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "INV"))
	assert.Equal(t, "Jakarta", row.BranchName)
	assert.Equal(t, "INV", row.SequenceLabel)
	response, err := f.useCase.UpdateSequenceSetting(context.Background(), &sequenceSettingModel.UpdateSequenceSetting{
		ID:          row.ID,
		BranchID:    ptr("5"),
		SequenceKey: ptr("RCP"),
	})
	require.NoError(t, err)
	assert.Equal(t, "5", response.BranchID)
	assert.Equal(t, "Bandung", response.BranchName)
	assert.Equal(t, "RCP", response.SequenceLabel)
	assert.Empty(t, f.store.find(row.ID).BranchName)
	bulk, err := f.useCase.BulkUpdateSequenceSettings(context.Background(), []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: row.ID, BranchID: ptr("1")},
	})
	require.NoError(t, err)
	require.Len(t, bulk, 1)
	assert.Equal(t, "Jakarta", bulk[0].BranchName)
	toggled, err := f.useCase.ToggleStatus(context.Background(), row.ID, &sequenceSettingModel.StatusToggle{})
	require.NoError(t, err)
	assert.Equal(t, "Jakarta", toggled.BranchName)
	assert.Equal(t, "RCP", toggled.SequenceLabel)
}

func TestToggleStatus(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("1", "INV"))
	response, err := f.useCase.ToggleStatus(context.Background(), row.ID, &sequenceSettingModel.StatusToggle{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, response.StatusID)
	response, err = f.useCase.ToggleStatus(context.Background(), row.ID, &sequenceSettingModel.StatusToggle{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, response.StatusID)
	response, err = f.useCase.ToggleStatus(context.Background(), row.ID, &sequenceSettingModel.StatusToggle{StatusID: ptr(models.StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, response.StatusID)
	_, err = f.useCase.ToggleStatus(context.Background(), row.ID, &sequenceSettingModel.StatusToggle{StatusID: ptr(int8(5))})
	requireKind(t, err, appErrors.KindValidationFailed)
	_, err = f.useCase.ToggleStatus(context.Background(), "404", &sequenceSettingModel.StatusToggle{})
	requireKind(t, err, appErrors.KindNotFound)
	assert.Equal(t, "INV", f.store.find(row.ID).SequenceKey)
}

func TestDeleteFreesKeyForReuse(t *testing.T) {
	f := newFixture()
	row := f.mustCreate(t, newSetting("5", "INV"))
	require.NoError(t, f.useCase.DeleteSequenceSetting(context.Background(), row.ID))
	assert.Len(t, f.store.rows, 1)
	assert.NotNil(t, f.store.rows[0].DeletedAt)
	again := f.mustCreate(t, newSetting("5", "INV"))
	assert.NotEqual(t, row.ID, again.ID)
	_, err := f.useCase.FindSequenceSettingByID(context.Background(), row.ID)
	requireKind(t, err, appErrors.KindNotFound)
	err = f.useCase.DeleteSequenceSetting(context.Background(), row.ID)
	requireKind(t, err, appErrors.KindNotFound)
}

func TestFindSequenceSettingsExcludesDeletedNewestFirst(t *testing.T) {
	f := newFixture()
	first := f.mustCreate(t, newSetting("1", "A"))
	second := f.mustCreate(t, newSetting("1", "B"))
	third := f.mustCreate(t, newSetting("5", "C"))
	require.NoError(t, f.useCase.DeleteSequenceSetting(context.Background(), second.ID))
	rows, pagination, err := f.useCase.FindSequenceSettings(context.Background(), sequenceSettingModel.NewFilter())
	require.NoError(t, err)
	require.NotNil(t, pagination)
	require.Len(t, rows, 2)
	assert.Equal(t, third.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, "Bandung", rows[0].BranchName)
}

func TestFindSequenceSettingsSearchAndBranchFilter(t *testing.T) {
	f := newFixture()
	withPrefix := newSetting("1", "SALES")
	withPrefix.Prefix = ptr("INV")
	withSuffix := newSetting("5", "SALES")
	withSuffix.Suffix = ptr("/inv")
	f.mustCreate(t, withPrefix)
	f.mustCreate(t, withSuffix)
	f.mustCreate(t, newSetting("1", "INV_SEQ"))
	f.mustCreate(t, newSetting("1", "RECEIPT"))
	deleted := newSetting("5", "OLD")
	deleted.Prefix = ptr("INV")
	row := f.mustCreate(t, deleted)
	require.NoError(t, f.useCase.DeleteSequenceSetting(context.Background(), row.ID))

	rows, _, err := f.useCase.FindSequenceSettings(context.Background(), sequenceSettingModel.NewFilter(sequenceSettingModel.WithSearch("inv")))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, _, err = f.useCase.FindSequenceSettings(context.Background(), sequenceSettingModel.NewFilter(
		sequenceSettingModel.WithSearch("INV"),
		sequenceSettingModel.WithBranchIDs("5"),
	))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/inv", *rows[0].Suffix)
}

func TestFindSequenceSettingByBranchID(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("1", "A"))
	latest := f.mustCreate(t, newSetting("1", "B"))
	response, err := f.useCase.FindSequenceSettingByBranchID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, response.ID)
	_, err = f.useCase.FindSequenceSettingByBranchID(context.Background(), "5")
	requireKind(t, err, appErrors.KindNotFound)
}

func TestAuditOrphans(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, newSetting("1", "A"))
	orphan := f.mustCreate(t, newSetting("5", "A"))
	_, err := f.branches.DeleteBranch(context.Background(), "5")
	require.NoError(t, err)
	orphans, err := f.useCase.AuditOrphans(context.Background())
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, orphan.ID, orphans[0].ID)
}

func TestConsumeMessageRequiresConsumer(t *testing.T) {
	f := newFixture()
	assert.Error(t, f.useCase.ConsumeMessage(context.Background()))
}

func TestUniquenessHoldsAcrossOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.useCase.BulkCreateSequenceSettings(ctx, []*sequenceSettingModel.NewSequenceSetting{
		newSetting("1", "A"),
		newSetting("1", "B"),
		newSetting("5", "A"),
	})
	require.NoError(t, err)
	_, _ = f.useCase.CreateSequenceSetting(ctx, newSetting("5", "A"))
	_, _ = f.useCase.UpdateSequenceSetting(ctx, &sequenceSettingModel.UpdateSequenceSetting{ID: created[1].ID, SequenceKey: ptr("A")})
	_, _ = f.useCase.BulkUpdateSequenceSettings(ctx, []*sequenceSettingModel.UpdateSequenceSetting{
		{ID: created[2].ID, BranchID: ptr("1")},
	})
	require.NoError(t, f.useCase.DeleteSequenceSetting(ctx, created[0].ID))
	_, err = f.useCase.UpdateSequenceSetting(ctx, &sequenceSettingModel.UpdateSequenceSetting{ID: created[1].ID, SequenceKey: ptr("A")})
	require.NoError(t, err)

	seen := map[sequenceSettingModel.ScopedKey]struct{}{}
	for _, row := range f.store.live() {
		_, ok := seen[row.Key()]
		assert.False(t, ok, row.Key().String())
		seen[row.Key()] = struct{}{}
	}
}
