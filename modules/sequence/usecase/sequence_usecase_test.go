package usecase

import (
	"context"
	"testing"

	appErrors "github.com/roysitumorang/kilau/errors"
	"github.com/roysitumorang/kilau/models"
	sequenceModel "github.com/roysitumorang/kilau/modules/sequence/model"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceQuery struct {
	counters map[string]int64
}

func (q *fakeSequenceQuery) SaveSequence(_ context.Context, name string, start int64) (*sequenceModel.Sequence, error) {
	number, ok := q.counters[name]
	if ok {
		number++
	} else {
		number = start
	}
	q.counters[name] = number
	return &sequenceModel.Sequence{Name: name, Number: number}, nil
}

func TestIssueNumber(t *testing.T) {
	ctx := context.Background()
	prefix, suffix, start := "INV", "/JKT", int64(100)
	useCase := New(&fakeSequenceQuery{counters: map[string]int64{}})
	sequenceSetting := &sequenceSettingModel.SequenceSetting{
		ID:          "0ABCDEF",
		Prefix:      &prefix,
		Suffix:      &suffix,
		StartNumber: &start,
		StatusID:    models.StatusActive,
	}

	first, err := useCase.IssueNumber(ctx, sequenceSetting)
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.Number)
	assert.Equal(t, "INV000100/JKT", first.Formatted)

	second, err := useCase.IssueNumber(ctx, sequenceSetting)
	require.NoError(t, err)
	assert.Equal(t, int64(101), second.Number)
}

func TestIssueNumberDefaultsToOne(t *testing.T) {
	useCase := New(&fakeSequenceQuery{counters: map[string]int64{}})
	issued, err := useCase.IssueNumber(context.Background(), &sequenceSettingModel.SequenceSetting{ID: "1", StatusID: models.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, "000001", issued.Formatted)
}

func TestIssueNumberRejectsInactive(t *testing.T) {
	useCase := New(&fakeSequenceQuery{counters: map[string]int64{}})
	_, err := useCase.IssueNumber(context.Background(), &sequenceSettingModel.SequenceSetting{ID: "1", StatusID: models.StatusInactive})
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidationFailed))
}
