package models

import "time"

const (
	StatusInactive int8 = iota
	StatusActive
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionStatus = "status"
	ActionDelete = "delete"
)

type (
	Pagination struct {
		Links struct {
			First    string `json:"first" example:"http://localhost:8080/v1/sequence-settings?limit=1&search=INV"`
			Previous string `json:"previous" example:"http://localhost:8080/v1/sequence-settings?limit=1&search=INV"`
			Current  string `json:"current" example:"http://localhost:8080/v1/sequence-settings?limit=1&page=2&search=INV"`
			Next     string `json:"next" example:"http://localhost:8080/v1/sequence-settings?limit=1&page=3&search=INV"`
		} `json:"links"`
		Info struct {
			Limit int64 `json:"limit" example:"1"`
			Pages int64 `json:"pages" example:"3"`
			Total int64 `json:"total" example:"3"`
		} `json:"info"`
	}

	Message struct {
		EventID    string    `json:"event_id"`
		Action     string    `json:"action"`
		ID         string    `json:"id"`
		OccurredAt time.Time `json:"occurred_at"`
	}
)

var (
	MapLimits = map[int64]int{1: 1, 10: 1, 25: 1, 50: 1, 100: 1}
)
