package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/roysitumorang/kilau/models"
)

const (
	MaxBulkItems = 500
)

type (
	SequenceSetting struct {
		ID            string     `json:"id"`
		BranchID      string     `json:"branch_id"`
		SequenceKey   string     `json:"sequence_key"`
		Prefix        *string    `json:"prefix"`
		Suffix        *string    `json:"suffix"`
		StartNumber   *int64     `json:"start_number"`
		StatusID      int8       `json:"status_id"`
		CreatedAt     time.Time  `json:"created_at"`
		UpdatedAt     time.Time  `json:"updated_at"`
		DeletedAt     *time.Time `json:"-"`
		BranchName    string     `json:"branch_name,omitempty"`
		BranchNumber  string     `json:"branch_number,omitempty"`
		SequenceLabel string     `json:"sequence_label,omitempty"`
	}

	// ScopedKey is the pair that must be unique among non-deleted settings.
	ScopedKey struct {
		BranchID    string
		SequenceKey string
	}

	NewSequenceSetting struct {
		BranchID    string  `json:"branch_id" validate:"required,max=32"`
		SequenceKey string  `json:"sequence_key" validate:"required,max=64"`
		Prefix      *string `json:"prefix" validate:"omitempty,max=32"`
		Suffix      *string `json:"suffix" validate:"omitempty,max=32"`
		StartNumber *int64  `json:"start_number" validate:"omitempty,min=0"`
		StatusID    *int8   `json:"status_id" validate:"omitempty,oneof=0 1"`
	}

	// UpdateSequenceSetting is a partial update: nil fields keep their stored value.
	UpdateSequenceSetting struct {
		ID          string  `json:"id" validate:"max=32"`
		BranchID    *string `json:"branch_id" validate:"omitempty,min=1,max=32"`
		SequenceKey *string `json:"sequence_key" validate:"omitempty,min=1,max=64"`
		Prefix      *string `json:"prefix" validate:"omitempty,max=32"`
		Suffix      *string `json:"suffix" validate:"omitempty,max=32"`
		StartNumber *int64  `json:"start_number" validate:"omitempty,min=0"`
		StatusID    *int8   `json:"status_id" validate:"omitempty,oneof=0 1"`
	}

	StatusToggle struct {
		StatusID *int8 `json:"status_id"`
	}

	BulkNewSequenceSettings struct {
		Items []*NewSequenceSetting `json:"items"`
	}

	BulkUpdateSequenceSettings struct {
		Items []*UpdateSequenceSetting `json:"items"`
	}

	Filter struct {
		SequenceSettingIDs,
		BranchIDs []string
		Search,
		PaginationURL string
		Limit,
		Page int64
		UrlValues url.Values
	}

	FilterOption func(q *Filter)
)

var (
	ErrUniqueKeyViolation      = errors.New("sequence_key: already exists for this branch")
	ErrSequenceSettingNotFound = errors.New("sequence setting not found")
)

func (k ScopedKey) Complete() bool {
	return k.BranchID != "" && k.SequenceKey != ""
}

func (k ScopedKey) String() string {
	return fmt.Sprintf("sequence_key '%s' and branch_id %s", k.SequenceKey, k.BranchID)
}

func (q *SequenceSetting) Key() ScopedKey {
	return ScopedKey{BranchID: q.BranchID, SequenceKey: q.SequenceKey}
}

func (q *SequenceSetting) Active() bool {
	return q.StatusID == models.StatusActive
}

func (q *NewSequenceSetting) Normalize() {
	q.BranchID = strings.TrimSpace(q.BranchID)
	q.SequenceKey = strings.TrimSpace(q.SequenceKey)
}

func (q *NewSequenceSetting) Key() ScopedKey {
	return ScopedKey{BranchID: q.BranchID, SequenceKey: q.SequenceKey}
}

// Status returns the requested status, active when omitted.
func (q *NewSequenceSetting) Status() int8 {
	if q.StatusID == nil {
		return models.StatusActive
	}
	return *q.StatusID
}

func (q *UpdateSequenceSetting) Normalize() {
	q.ID = strings.TrimSpace(q.ID)
	if q.BranchID != nil {
		branchID := strings.TrimSpace(*q.BranchID)
		q.BranchID = &branchID
	}
	if q.SequenceKey != nil {
		sequenceKey := strings.TrimSpace(*q.SequenceKey)
		q.SequenceKey = &sequenceKey
	}
}

// EffectiveKey is the scoped key current would have after the update.
func (q *UpdateSequenceSetting) EffectiveKey(current *SequenceSetting) ScopedKey {
	key := current.Key()
	if q.BranchID != nil {
		key.BranchID = *q.BranchID
	}
	if q.SequenceKey != nil {
		key.SequenceKey = *q.SequenceKey
	}
	return key
}

// Apply returns a copy of current with every present field overwritten.
func (q *UpdateSequenceSetting) Apply(current *SequenceSetting) *SequenceSetting {
	updated := *current
	if q.BranchID != nil {
		updated.BranchID = *q.BranchID
	}
	if q.SequenceKey != nil {
		updated.SequenceKey = *q.SequenceKey
	}
	if q.Prefix != nil {
		prefix := *q.Prefix
		updated.Prefix = &prefix
	}
	if q.Suffix != nil {
		suffix := *q.Suffix
		updated.Suffix = &suffix
	}
	if q.StartNumber != nil {
		startNumber := *q.StartNumber
		updated.StartNumber = &startNumber
	}
	if q.StatusID != nil {
		updated.StatusID = *q.StatusID
	}
	return &updated
}

// Resolve returns the status to store: the requested one, or the opposite
// of current when the request omits it.
func (q *StatusToggle) Resolve(current int8) (int8, error) {
	if q.StatusID == nil {
		if current == models.StatusActive {
			return models.StatusInactive, nil
		}
		return models.StatusActive, nil
	}
	if *q.StatusID != models.StatusActive && *q.StatusID != models.StatusInactive {
		return 0, fmt.Errorf("status_id: should be either %d or %d", models.StatusInactive, models.StatusActive)
	}
	return *q.StatusID, nil
}

func NewFilter(options ...FilterOption) *Filter {
	filter := &Filter{UrlValues: url.Values{}}
	for _, option := range options {
		option(filter)
	}
	return filter
}

func WithSequenceSettingIDs(sequenceSettingIDs ...string) FilterOption {
	return func(q *Filter) {
		q.SequenceSettingIDs = sequenceSettingIDs
	}
}

func WithBranchIDs(branchIDs ...string) FilterOption {
	return func(q *Filter) {
		q.BranchIDs = branchIDs
	}
}

func WithSearch(search string) FilterOption {
	return func(q *Filter) {
		q.Search = search
	}
}

func WithPaginationURL(paginationURL string) FilterOption {
	return func(q *Filter) {
		q.PaginationURL = paginationURL
	}
}

func WithLimit(limit int64) FilterOption {
	return func(q *Filter) {
		q.Limit = limit
	}
}

func WithPage(page int64) FilterOption {
	return func(q *Filter) {
		q.Page = page
	}
}

func WithUrlValues(urlValues url.Values) FilterOption {
	return func(q *Filter) {
		q.UrlValues = urlValues
	}
}
