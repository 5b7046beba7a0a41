package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/pkg/repo"
)

func TestFormatLimitOffset(t *testing.T) {
	require.Equal(t, "LIMIT 10 OFFSET 5", repo.FormatLimitOffset(10, 5))
	require.Equal(t, "LIMIT 10", repo.FormatLimitOffset(10, 0))
	require.Equal(t, "OFFSET 5", repo.FormatLimitOffset(0, 5))
	require.Equal(t, "", repo.FormatLimitOffset(0, 0))
}
