package persistence

import (
	"github.com/google/uuid"

	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/modules/monitoring/infrastructure/persistence/models"
)

func toDBExecutionLog(log *executionlog.ExecutionLog) *models.ExecutionLog {
	return &models.ExecutionLog{
		ID:         log.ID.String(),
		JobName:    log.JobName,
		Status:     log.Status,
		Message:    log.Message,
		DurationMs: log.DurationMs,
		CreatedAt:  log.CreatedAt,
	}
}

func toDomainExecutionLog(dbRow *models.ExecutionLog) *executionlog.ExecutionLog {
	id, _ := uuid.Parse(dbRow.ID)
	return &executionlog.ExecutionLog{
		ID:         id,
		JobName:    dbRow.JobName,
		Status:     dbRow.Status,
		Message:    dbRow.Message,
		DurationMs: dbRow.DurationMs,
		CreatedAt:  dbRow.CreatedAt,
	}
}
