package executionlog

import "context"

type Repository interface {
	Create(ctx context.Context, log *ExecutionLog) (*ExecutionLog, error)
	// ListRecent returns at most limit logs ordered by creation time
	// descending, skipping the first offset rows.
	ListRecent(ctx context.Context, limit, offset int) ([]*ExecutionLog, error)
	Count(ctx context.Context) (int64, error)
}
