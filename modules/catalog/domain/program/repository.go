package program

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Program, error)
	ListAll(ctx context.Context) ([]*Program, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Program, error)
	Upsert(ctx context.Context, p *Program) (*Program, error)
}
