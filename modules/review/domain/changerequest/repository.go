package changerequest

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cr *ChangeRequest) (*ChangeRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ChangeRequest, error)
	// ListPending returns undecided requests, newest first.
	ListPending(ctx context.Context, params *FindParams) ([]*ChangeRequest, error)
	CountPending(ctx context.Context) (int64, error)
	// Decide transitions a pending request to a terminal status. The update
	// is conditioned on the request still being pending, so only one of two
	// racing decisions can succeed.
	Decide(ctx context.Context, id uuid.UUID, status, decidedBy string) (*ChangeRequest, error)
}
