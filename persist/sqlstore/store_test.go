package sqlstore

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/cruisedesk/boardkit/types"
)

func TestKindFromString(t *testing.T) {
	t.Parallel()

	require.Equal(t, types.KindBoat, kindFromString("boat"))
	require.Equal(t, types.KindDriver, kindFromString("driver"))
	// Unknown kinds fall back to the permissive driver profile.
	require.Equal(t, types.KindDriver, kindFromString(""))
}

func TestClassifyUndefinedTable(t *testing.T) {
	t.Parallel()

	pqErr := &pq.Error{Code: "42P01", Message: `relation "board_locks" does not exist`}
	err := classify(fmt.Errorf("save lock driver-1: %w", pqErr))
	require.True(t, types.IsLockStoreMissingError(err))

	other := &pq.Error{Code: "23505", Message: "duplicate key"}
	err = classify(fmt.Errorf("save lock driver-1: %w", other))
	require.False(t, types.IsLockStoreMissingError(err))
}
