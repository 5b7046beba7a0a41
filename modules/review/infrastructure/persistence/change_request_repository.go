package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/modules/review/infrastructure/persistence/models"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/repo"
	"github.com/esalabs/controltower/pkg/serrors"
)

const changeRequestColumns = `id, task_id, requested_by, details, status, created_at, decided_at, decided_by`

// Rows with a NULL status predate the explicit pending default and are still
// awaiting a decision.
const pendingPredicate = `(status = 'pending' OR status IS NULL)`

type ChangeRequestRepository struct{}

func NewChangeRequestRepository() changerequest.Repository {
	return &ChangeRequestRepository{}
}

func (r *ChangeRequestRepository) Create(ctx context.Context, cr *changerequest.ChangeRequest) (*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbRow := toDBChangeRequest(cr)
	if dbRow.ID == uuid.Nil.String() {
		dbRow.ID = uuid.New().String()
	}
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	row := tx.QueryRow(
		ctx,
		`INSERT INTO change_requests (id, task_id, requested_by, details, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+changeRequestColumns,
		dbRow.ID,
		dbRow.TaskID,
		dbRow.RequestedBy,
		dbRow.Details,
		changerequest.StatusPending,
		dbRow.CreatedAt,
	)
	return scanChangeRequest(row)
}

func (r *ChangeRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(
		ctx,
		`SELECT `+changeRequestColumns+` FROM change_requests WHERE id = $1`,
		id.String(),
	)
	cr, err := scanChangeRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, serrors.NewNotFoundError("change request")
	}
	return cr, err
}

func (r *ChangeRequestRepository) ListPending(ctx context.Context, params *changerequest.FindParams) ([]*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + changeRequestColumns + `
		FROM change_requests
		WHERE ` + pendingPredicate + `
		ORDER BY created_at DESC
	`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*changerequest.ChangeRequest
	for rows.Next() {
		cr, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ChangeRequestRepository) CountPending(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM change_requests WHERE `+pendingPredicate,
	).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChangeRequestRepository) Decide(ctx context.Context, id uuid.UUID, status, decidedBy string) (*changerequest.ChangeRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// The status guard makes the transition race-safe: of two concurrent
	// decisions only the first matches a pending row, the second sees zero
	// rows and is disambiguated below.
	row := tx.QueryRow(
		ctx,
		`UPDATE change_requests
		 SET status = $2, decided_at = $3, decided_by = $4
		 WHERE id = $1 AND `+pendingPredicate+`
		 RETURNING `+changeRequestColumns,
		id.String(),
		status,
		time.Now(),
		decidedBy,
	)
	cr, err := scanChangeRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if probeErr := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM change_requests WHERE id = $1)`,
			id.String(),
		).Scan(&exists); probeErr != nil {
			return nil, probeErr
		}
		if exists {
			return nil, serrors.NewAlreadyDecidedError("change request")
		}
		return nil, serrors.NewNotFoundError("change request")
	}
	return cr, err
}

func scanChangeRequest(row pgx.Row) (*changerequest.ChangeRequest, error) {
	var dbRow models.ChangeRequest
	if err := row.Scan(
		&dbRow.ID,
		&dbRow.TaskID,
		&dbRow.RequestedBy,
		&dbRow.Details,
		&dbRow.Status,
		&dbRow.CreatedAt,
		&dbRow.DecidedAt,
		&dbRow.DecidedBy,
	); err != nil {
		return nil, err
	}
	return toDomainChangeRequest(&dbRow), nil
}
