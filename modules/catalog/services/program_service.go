package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/esalabs/controltower/modules/catalog/domain/program"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ProgramService struct {
	repo program.Repository
}

func NewProgramService(repo program.Repository) *ProgramService {
	return &ProgramService{repo: repo}
}

func (s *ProgramService) List(ctx context.Context, params *program.FindParams) ([]*program.Program, int64, error) {
	programs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	return programs, total, nil
}

// ListAll returns the full registry without pagination. The KPI aggregator
// scores every row, so it cannot page.
func (s *ProgramService) ListAll(ctx context.Context) ([]*program.Program, error) {
	programs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	return programs, nil
}

func (s *ProgramService) GetByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	if id == uuid.Nil {
		return nil, serrors.NewFieldRequiredError("id")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	return p, nil
}

type UpsertProgramParams struct {
	ID                  uuid.UUID `json:"id"`
	ProgramName         string    `json:"program_name"`
	State               string    `json:"state"`
	ProgramType         string    `json:"program_type"`
	ProgramStatus       string    `json:"program_status"`
	CurrentWindowStatus string    `json:"current_window_status"`
}

// Upsert writes a registry row from the upstream sync. Incomplete rows are
// accepted as-is; completeness is a KPI concern, not a write guard.
func (s *ProgramService) Upsert(ctx context.Context, params UpsertProgramParams) (*program.Program, error) {
	p, err := s.repo.Upsert(ctx, &program.Program{
		ID:                  params.ID,
		ProgramName:         params.ProgramName,
		State:               params.State,
		ProgramType:         params.ProgramType,
		ProgramStatus:       params.ProgramStatus,
		CurrentWindowStatus: params.CurrentWindowStatus,
	})
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	return p, nil
}
