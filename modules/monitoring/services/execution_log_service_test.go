package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/modules/monitoring/services"
	"github.com/esalabs/controltower/pkg/serrors"
)

func TestExecutionLogService_Create(t *testing.T) {
	svc := services.NewExecutionLogService(&memoryExecutionLogRepo{})
	ctx := context.Background()

	created, err := svc.Create(ctx, services.CreateExecutionLogParams{JobName: "sync", DurationMs: ms(1200)})
	require.NoError(t, err)
	require.Equal(t, executionlog.StatusSuccess, created.Status)

	_, err = svc.Create(ctx, services.CreateExecutionLogParams{Status: executionlog.StatusError})
	require.Equal(t, serrors.CodeFieldRequired, serrors.Code(err))

	_, err = svc.Create(ctx, services.CreateExecutionLogParams{JobName: "sync", Status: "crashed"})
	require.Equal(t, serrors.CodeUnrecognized, serrors.Code(err))
}

func TestExecutionLogService_ListRecentPaginates(t *testing.T) {
	repo := &memoryExecutionLogRepo{}
	svc := services.NewExecutionLogService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, services.CreateExecutionLogParams{JobName: fmt.Sprintf("job-%d", i)})
		require.NoError(t, err)
	}

	first, total, err := svc.ListRecent(ctx, 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, first, 2)
	require.Equal(t, "job-4", first[0].JobName)
	require.Equal(t, "job-3", first[1].JobName)

	// The second page continues where the first left off.
	second, _, err := svc.ListRecent(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Equal(t, "job-2", second[0].JobName)
	require.Equal(t, "job-1", second[1].JobName)
}
