package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/eventbus"
	"github.com/esalabs/controltower/pkg/serrors"
)

type ChangeRequestService struct {
	repo      changerequest.Repository
	publisher eventbus.EventBus
}

func NewChangeRequestService(repo changerequest.Repository, publisher eventbus.EventBus) *ChangeRequestService {
	return &ChangeRequestService{repo: repo, publisher: publisher}
}

type CreateChangeRequestParams struct {
	TaskID      string          `json:"task_id"`
	RequestedBy string          `json:"requested_by"`
	Details     json.RawMessage `json:"details"`
}

// Create raises a new change request for review. Details is an opaque payload
// for the human reviewer; its structure is not validated here.
func (s *ChangeRequestService) Create(ctx context.Context, params CreateChangeRequestParams) (*changerequest.ChangeRequest, error) {
	if params.TaskID == "" {
		return nil, serrors.NewFieldRequiredError("task_id")
	}
	if params.RequestedBy == "" {
		return nil, serrors.NewFieldRequiredError("requested_by")
	}
	details := params.Details
	if len(details) == 0 {
		details = json.RawMessage(`{}`)
	}

	cr, err := s.repo.Create(ctx, &changerequest.ChangeRequest{
		TaskID:      params.TaskID,
		RequestedBy: params.RequestedBy,
		Details:     details,
		Status:      changerequest.StatusPending,
	})
	if err != nil {
		return nil, serrors.WrapStore(err)
	}

	if s.publisher != nil {
		s.publisher.Publish(&changerequest.CreatedEvent{Request: cr})
	}
	return cr, nil
}

func (s *ChangeRequestService) GetByID(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	return cr, nil
}

// ListPending returns undecided requests ordered by creation time descending,
// plus the total count for pagination.
func (s *ChangeRequestService) ListPending(ctx context.Context, params *changerequest.FindParams) ([]*changerequest.ChangeRequest, int64, error) {
	requests, err := s.repo.ListPending(ctx, params)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	total, err := s.repo.CountPending(ctx)
	if err != nil {
		return nil, 0, serrors.WrapStore(err)
	}
	return requests, total, nil
}

func (s *ChangeRequestService) Approve(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	return s.decide(ctx, id, changerequest.StatusApproved)
}

func (s *ChangeRequestService) Reject(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	return s.decide(ctx, id, changerequest.StatusRejected)
}

func (s *ChangeRequestService) decide(ctx context.Context, id uuid.UUID, status string) (*changerequest.ChangeRequest, error) {
	if id == uuid.Nil {
		return nil, serrors.NewFieldRequiredError("id")
	}

	cr, err := s.repo.Decide(ctx, id, status, composables.UseActor(ctx))
	if err != nil {
		return nil, serrors.WrapStore(err)
	}

	if s.publisher != nil {
		s.publisher.Publish(&changerequest.DecidedEvent{Request: cr})
	}
	return cr, nil
}
