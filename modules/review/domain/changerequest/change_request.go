package changerequest

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ChangeRequest is a reviewable proposed mutation awaiting a human
// approve/reject decision. Once decided it is immutable: DecidedAt and
// DecidedBy are set exactly once, together with the terminal status.
type ChangeRequest struct {
	ID          uuid.UUID       `json:"id"`
	TaskID      string          `json:"task_id"`
	RequestedBy string          `json:"requested_by"`
	Details     json.RawMessage `json:"details"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
	DecidedBy   *string         `json:"decided_by,omitempty"`
}

// Pending reports whether the request still needs a human decision. Legacy
// rows may carry an empty status, which reads as pending.
func (cr *ChangeRequest) Pending() bool {
	return cr.Status == StatusPending || cr.Status == ""
}

type FindParams struct {
	Limit  int
	Offset int
}
