package model

import "time"

const (
	PageStatusPending    = "pending"
	PageStatusProcessing = "processing"
	PageStatusFetched    = "fetched"
	PageStatusFailed     = "failed"
)

// Page is a URL queued for download by the worker pool.
type Page struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	Body      *string   `json:"body,omitempty"`
	Titles    []string  `json:"titles"`
	Attempts  int       `json:"attempts"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageFilter struct {
	Status *string
}

type PageStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Fetched    int `json:"fetched"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}
