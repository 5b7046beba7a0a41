package models

import "time"

type ChangeRequest struct {
	ID          string
	TaskID      string
	RequestedBy string
	Details     []byte
	Status      *string
	CreatedAt   time.Time
	DecidedAt   *time.Time
	DecidedBy   *string
}
