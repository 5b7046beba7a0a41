package persistence

import (
	"github.com/google/uuid"

	"github.com/esalabs/controltower/modules/catalog/domain/program"
	"github.com/esalabs/controltower/modules/catalog/infrastructure/persistence/models"
)

func toDBProgram(p *program.Program) *models.Program {
	return &models.Program{
		ID:                  p.ID.String(),
		ProgramName:         p.ProgramName,
		State:               p.State,
		ProgramType:         p.ProgramType,
		ProgramStatus:       p.ProgramStatus,
		CurrentWindowStatus: p.CurrentWindowStatus,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func toDomainProgram(dbRow *models.Program) *program.Program {
	id, _ := uuid.Parse(dbRow.ID)
	return &program.Program{
		ID:                  id,
		ProgramName:         dbRow.ProgramName,
		State:               dbRow.State,
		ProgramType:         dbRow.ProgramType,
		ProgramStatus:       dbRow.ProgramStatus,
		CurrentWindowStatus: dbRow.CurrentWindowStatus,
		CreatedAt:           dbRow.CreatedAt,
		UpdatedAt:           dbRow.UpdatedAt,
	}
}
