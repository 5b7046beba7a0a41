package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/esalabs/controltower/modules/catalog/domain/program"
	"github.com/esalabs/controltower/modules/catalog/infrastructure/persistence/models"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/repo"
	"github.com/esalabs/controltower/pkg/serrors"
)

const programColumns = `id, program_name, state, program_type, program_status, current_window_status, created_at, updated_at`

type ProgramRepository struct{}

func NewProgramRepository() program.Repository {
	return &ProgramRepository{}
}

func (r *ProgramRepository) List(ctx context.Context, params *program.FindParams) ([]*program.Program, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := programFilters(params)
	query := `SELECT ` + programColumns + ` FROM programs` + where + ` ORDER BY state, program_name`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrograms(rows)
}

func (r *ProgramRepository) ListAll(ctx context.Context) ([]*program.Program, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+programColumns+` FROM programs ORDER BY state, program_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrograms(rows)
}

func (r *ProgramRepository) Count(ctx context.Context, params *program.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := programFilters(params)
	query := `SELECT COUNT(*) FROM programs` + where

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(
		ctx,
		`SELECT `+programColumns+` FROM programs WHERE id = $1`,
		id.String(),
	)
	p, err := scanProgram(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, serrors.NewNotFoundError("program")
	}
	return p, err
}

func (r *ProgramRepository) Upsert(ctx context.Context, p *program.Program) (*program.Program, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	dbRow := toDBProgram(p)
	if dbRow.ID == uuid.Nil.String() {
		dbRow.ID = uuid.New().String()
	}
	now := time.Now()
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = now
	}
	dbRow.UpdatedAt = now

	row := tx.QueryRow(
		ctx,
		`INSERT INTO programs (id, program_name, state, program_type, program_status, current_window_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			program_name = EXCLUDED.program_name,
			state = EXCLUDED.state,
			program_type = EXCLUDED.program_type,
			program_status = EXCLUDED.program_status,
			current_window_status = EXCLUDED.current_window_status,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+programColumns,
		dbRow.ID,
		dbRow.ProgramName,
		dbRow.State,
		dbRow.ProgramType,
		dbRow.ProgramStatus,
		dbRow.CurrentWindowStatus,
		dbRow.CreatedAt,
		dbRow.UpdatedAt,
	)
	return scanProgram(row)
}

func programFilters(params *program.FindParams) (string, []interface{}) {
	if params == nil {
		return "", nil
	}

	var clauses []string
	var args []interface{}
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("state", params.State)
	add("program_status", params.Status)
	add("program_type", params.Type)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func collectPrograms(rows pgx.Rows) ([]*program.Program, error) {
	var results []*program.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanProgram(row pgx.Row) (*program.Program, error) {
	var dbRow models.Program
	if err := row.Scan(
		&dbRow.ID,
		&dbRow.ProgramName,
		&dbRow.State,
		&dbRow.ProgramType,
		&dbRow.ProgramStatus,
		&dbRow.CurrentWindowStatus,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainProgram(&dbRow), nil
}
