package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/modules/monitoring/infrastructure/persistence/models"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/repo"
)

const executionLogColumns = `id, job_name, status, message, duration_ms, created_at`

type ExecutionLogRepository struct{}

func NewExecutionLogRepository() executionlog.Repository {
	return &ExecutionLogRepository{}
}

func (r *ExecutionLogRepository) Create(ctx context.Context, log *executionlog.ExecutionLog) (*executionlog.ExecutionLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbRow := toDBExecutionLog(log)
	if dbRow.ID == uuid.Nil.String() {
		dbRow.ID = uuid.New().String()
	}
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	row := tx.QueryRow(
		ctx,
		`INSERT INTO execution_logs (id, job_name, status, message, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+executionLogColumns,
		dbRow.ID,
		dbRow.JobName,
		dbRow.Status,
		dbRow.Message,
		dbRow.DurationMs,
		dbRow.CreatedAt,
	)
	return scanExecutionLog(row)
}

func (r *ExecutionLogRepository) ListRecent(ctx context.Context, limit, offset int) ([]*executionlog.ExecutionLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + executionLogColumns + `
		FROM execution_logs
		ORDER BY created_at DESC
	` + repo.FormatLimitOffset(limit, offset)

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*executionlog.ExecutionLog
	for rows.Next() {
		log, err := scanExecutionLog(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ExecutionLogRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM execution_logs`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanExecutionLog(row pgx.Row) (*executionlog.ExecutionLog, error) {
	var dbRow models.ExecutionLog
	if err := row.Scan(
		&dbRow.ID,
		&dbRow.JobName,
		&dbRow.Status,
		&dbRow.Message,
		&dbRow.DurationMs,
		&dbRow.CreatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainExecutionLog(&dbRow), nil
}
