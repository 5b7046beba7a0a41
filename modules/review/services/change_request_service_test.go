package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/modules/review/domain/changerequest"
	"github.com/esalabs/controltower/pkg/composables"
	"github.com/esalabs/controltower/pkg/serrors"
)

// memoryChangeRequestRepo mirrors the store contract: conditional decide,
// null-as-pending reads, newest-first pending listing.
type memoryChangeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*changerequest.ChangeRequest
	clock    time.Time
}

func newMemoryChangeRequestRepo() *memoryChangeRequestRepo {
	return &memoryChangeRequestRepo{
		requests: make(map[uuid.UUID]*changerequest.ChangeRequest),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryChangeRequestRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryChangeRequestRepo) Create(ctx context.Context, cr *changerequest.ChangeRequest) (*changerequest.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *cr
	stored.ID = uuid.New()
	stored.CreatedAt = m.tick()
	m.requests[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memoryChangeRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*changerequest.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cr, ok := m.requests[id]
	if !ok {
		return nil, serrors.NewNotFoundError("change request")
	}
	out := *cr
	return &out, nil
}

func (m *memoryChangeRequestRepo) ListPending(ctx context.Context, params *changerequest.FindParams) ([]*changerequest.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []*changerequest.ChangeRequest
	for _, cr := range m.requests {
		if cr.Pending() {
			out := *cr
			pending = append(pending, &out)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	if params != nil && params.Limit > 0 && len(pending) > params.Limit {
		pending = pending[:params.Limit]
	}
	return pending, nil
}

func (m *memoryChangeRequestRepo) CountPending(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, cr := range m.requests {
		if cr.Pending() {
			count++
		}
	}
	return count, nil
}

func (m *memoryChangeRequestRepo) Decide(ctx context.Context, id uuid.UUID, status, decidedBy string) (*changerequest.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cr, ok := m.requests[id]
	if !ok {
		return nil, serrors.NewNotFoundError("change request")
	}
	if !cr.Pending() {
		return nil, serrors.NewAlreadyDecidedError("change request")
	}
	now := m.tick()
	cr.Status = status
	cr.DecidedAt = &now
	cr.DecidedBy = &decidedBy
	out := *cr
	return &out, nil
}

func newTestService(repo changerequest.Repository) *ChangeRequestService {
	return NewChangeRequestService(repo, nil)
}

func TestChangeRequestService_Create_Validation(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())

	_, err := svc.Create(context.Background(), CreateChangeRequestParams{RequestedBy: "agent"})
	require.Error(t, err)
	require.Equal(t, serrors.CodeFieldRequired, serrors.Code(err))

	_, err = svc.Create(context.Background(), CreateChangeRequestParams{TaskID: "t1"})
	require.Error(t, err)
	require.Equal(t, serrors.CodeFieldRequired, serrors.Code(err))
}

func TestChangeRequestService_CreateThenApprove(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())
	ctx := composables.WithActor(context.Background(), "reviewer-1")

	created, err := svc.Create(ctx, CreateChangeRequestParams{
		TaskID:      "t1",
		RequestedBy: "agent",
		Details:     json.RawMessage(`{"field":"Program Name","new":"ESA North"}`),
	})
	require.NoError(t, err)
	require.Equal(t, changerequest.StatusPending, created.Status)
	require.Nil(t, created.DecidedAt)
	require.Nil(t, created.DecidedBy)

	approved, err := svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, changerequest.StatusApproved, approved.Status)
	require.NotNil(t, approved.DecidedAt)
	require.NotNil(t, approved.DecidedBy)
	require.Equal(t, "reviewer-1", *approved.DecidedBy)

	// A second approval must fail and must not move the decision timestamp.
	_, err = svc.Approve(ctx, created.ID)
	require.Error(t, err)
	require.Equal(t, serrors.CodeAlreadyDecided, serrors.Code(err))

	current, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, *approved.DecidedAt, *current.DecidedAt)
	require.Equal(t, "reviewer-1", *current.DecidedBy)
}

func TestChangeRequestService_RejectRemovesFromPending(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateChangeRequestParams{TaskID: "t2", RequestedBy: "agent"})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, changerequest.StatusRejected, rejected.Status)

	pending, total, err := svc.ListPending(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, pending)
	require.Zero(t, total)
}

func TestChangeRequestService_ListPending_NewestFirst(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateChangeRequestParams{TaskID: "t1", RequestedBy: "agent"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateChangeRequestParams{TaskID: "t2", RequestedBy: "agent"})
	require.NoError(t, err)

	pending, total, err := svc.ListPending(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, pending, 2)
	require.Equal(t, second.ID, pending[0].ID)
	require.Equal(t, first.ID, pending[1].ID)

	third, err := svc.Create(ctx, CreateChangeRequestParams{TaskID: "t3", RequestedBy: "agent"})
	require.NoError(t, err)

	pending, _, err = svc.ListPending(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, third.ID, pending[0].ID)
}

func TestChangeRequestService_NullStatusReadsAsPending(t *testing.T) {
	repo := newMemoryChangeRequestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// Simulate a legacy row with an empty status.
	legacyID := uuid.New()
	repo.requests[legacyID] = &changerequest.ChangeRequest{
		ID:          legacyID,
		TaskID:      "legacy",
		RequestedBy: "importer",
		Status:      "",
		CreatedAt:   repo.tick(),
	}

	pending, total, err := svc.ListPending(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	require.Equal(t, legacyID, pending[0].ID)

	approved, err := svc.Approve(ctx, legacyID)
	require.NoError(t, err)
	require.Equal(t, changerequest.StatusApproved, approved.Status)
}

func TestChangeRequestService_Approve_NotFound(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())

	_, err := svc.Approve(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, serrors.CodeNotFound, serrors.Code(err))
}

func TestChangeRequestService_ConcurrentDecisions_OneWins(t *testing.T) {
	svc := newTestService(newMemoryChangeRequestRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateChangeRequestParams{TaskID: "t1", RequestedBy: "agent"})
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Approve(ctx, created.ID)
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Reject(ctx, created.ID)
		errs <- err
	}()
	wg.Wait()
	close(errs)

	var successes, failures int
	for err := range errs {
		if err == nil {
			successes++
		} else {
			require.Equal(t, serrors.CodeAlreadyDecided, serrors.Code(err))
			failures++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, failures)

	final, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, final.Pending())
	require.NotNil(t, final.DecidedAt)
	require.NotNil(t, final.DecidedBy)
}
