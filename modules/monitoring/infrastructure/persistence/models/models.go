package models

import "time"

type ExecutionLog struct {
	ID         string
	JobName    string
	Status     string
	Message    string
	DurationMs *int64
	CreatedAt  time.Time
}
