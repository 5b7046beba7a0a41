package services

import (
	"context"

	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ExecutionLogService struct {
	repo executionlog.Repository
}

func NewExecutionLogService(repo executionlog.Repository) *ExecutionLogService {
	return &ExecutionLogService{repo: repo}
}

type CreateExecutionLogParams struct {
	JobName    string `json:"job_name"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	DurationMs *int64 `json:"duration_ms"`
}

func (s *ExecutionLogService) Create(ctx context.Context, params CreateExecutionLogParams) (*executionlog.ExecutionLog, error) {
	if params.JobName == "" {
		return nil, serrors.NewFieldRequiredError("job_name")
	}
	status := params.Status
	if status == "" {
		status = executionlog.StatusSuccess
	}
	if status != executionlog.StatusSuccess && status != executionlog.StatusError {
		return nil, serrors.NewUnrecognizedError("status " + status)
	}

	log, err := s.repo.Create(ctx, &executionlog.ExecutionLog{
		JobName:    params.JobName,
		Status:     status,
		Message:    params.Message,
		DurationMs: params.DurationMs,
	})
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	return log, nil
}

func (s *ExecutionLogService) ListRecent(ctx context.Context, limit, offset int) ([]*executionlog.ExecutionLog, int64, error) {
	logs, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	return logs, total, nil
}
