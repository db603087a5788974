package model

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/roysitumorang/kilau/helper"
)

type (
	Branch struct {
		ID        string     `json:"id"`
		Number    string     `json:"number"`
		Name      string     `json:"name"`
		CreatedAt time.Time  `json:"created_at"`
		UpdatedAt time.Time  `json:"updated_at"`
		DeletedAt *time.Time `json:"-"`
	}

	NewBranch struct {
		Number string `json:"number" validate:"required,max=32,code"`
		Name   string `json:"name" validate:"required,max=128"`
	}

	UpdateBranch struct {
		Number *string `json:"number" validate:"omitempty,min=1,max=32,code"`
		Name   *string `json:"name" validate:"omitempty,min=1,max=128"`
	}

	Filter struct {
		BranchIDs []string
		Keyword,
		PaginationURL string
		Limit,
		Page int64
		UrlValues url.Values
	}

	FilterOption func(q *Filter)
)

var (
	ErrUniqueNumberViolation = errors.New("number: already exists")
)

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

// Validate trims the request and upper-cases the number before checking it.
func (q *NewBranch) Validate() error {
	q.Number = strings.ToUpper(strings.TrimSpace(q.Number))
	q.Name = strings.TrimSpace(q.Name)
	return joinProblems(helper.Problems(q))
}

func (q *UpdateBranch) Validate() error {
	if q.Number != nil {
		number := strings.ToUpper(strings.TrimSpace(*q.Number))
		q.Number = &number
	}
	if q.Name != nil {
		name := strings.TrimSpace(*q.Name)
		q.Name = &name
	}
	return joinProblems(helper.Problems(q))
}

// Apply copies the fields present in the request onto branch.
func (q *UpdateBranch) Apply(branch *Branch) {
	if q.Number != nil {
		branch.Number = *q.Number
	}
	if q.Name != nil {
		branch.Name = *q.Name
	}
}

func NewFilter(options ...FilterOption) *Filter {
	filter := &Filter{UrlValues: url.Values{}}
	for _, option := range options {
		option(filter)
	}
	return filter
}

func WithBranchIDs(branchIDs ...string) FilterOption {
	return func(q *Filter) {
		q.BranchIDs = branchIDs
	}
}

func WithKeyword(keyword string) FilterOption {
	return func(q *Filter) {
		q.Keyword = keyword
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
