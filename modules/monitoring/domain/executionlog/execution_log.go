package executionlog

import (
	"time"

	"github.com/google/uuid"
)

// ExecutionLog records one run of a sync or enrichment job. DurationMs is
// nil for runs that aborted before the timer was recorded.
type ExecutionLog struct {
	ID         uuid.UUID `json:"id"`
	JobName    string    `json:"job_name"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	DurationMs *int64    `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
