package persistence

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/modules/review/infrastructure/persistence/models"
)

func toDBChangeRequest(cr *changerequest.ChangeRequest) *models.ChangeRequest {
	status := cr.Status
	return &models.ChangeRequest{
		ID:          cr.ID.String(),
		TaskID:      cr.TaskID,
		RequestedBy: cr.RequestedBy,
		Details:     cr.Details,
		Status:      &status,
		CreatedAt:   cr.CreatedAt,
		DecidedAt:   cr.DecidedAt,
		DecidedBy:   cr.DecidedBy,
	}
}

func toDomainChangeRequest(row *models.ChangeRequest) *changerequest.ChangeRequest {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		id = uuid.Nil
	}

	// Legacy rows denormalize "pending" as NULL; read both the same way.
	status := changerequest.StatusPending
	if row.Status != nil && *row.Status != "" {
		status = *row.Status
	}

	return &changerequest.ChangeRequest{
		ID:          id,
		TaskID:      row.TaskID,
		RequestedBy: row.RequestedBy,
		Details:     json.RawMessage(row.Details),
		Status:      status,
		CreatedAt:   row.CreatedAt,
		DecidedAt:   row.DecidedAt,
		DecidedBy:   row.DecidedBy,
	}
}
