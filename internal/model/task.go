package model

import "time"

// Task is the empty task record. ID and CreatedAt stay nil until something
// assigns them, so they encode as JSON null.
type Task struct {
	ID          *int64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   *time.Time `json:"created_at"`
}

func NewEmptyTask() Task {
	return Task{}
}
