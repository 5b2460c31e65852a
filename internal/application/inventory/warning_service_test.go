package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/inventory"
)

func TestWarningService_Check(t *testing.T) {
	t.Run("sweep raises warnings for out-of-band materials", func(t *testing.T) {
		env := newTestEnv()
		env.seedMaterial("M001", 5, 10, 100)   // low
		env.seedMaterial("M002", 50, 10, 100)  // normal
		env.seedMaterial("M003", 120, 10, 0)   // no max, normal
		env.seedMaterial("M004", 150, 10, 100) // high danger

		result, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, result.Checked)
		assert.Equal(t, 2, result.Raised)
		assert.Equal(t, 0, result.Resolved)

		pending := inventory.WarningStatusPending
		warnings, _, err := env.warningSvc.List(context.Background(), WarningListFilter{Status: &pending})
		require.NoError(t, err)
		require.Len(t, warnings, 2)
	})

	t.Run("sweep is idempotent", func(t *testing.T) {
		env := newTestEnv()
		env.seedMaterial("M001", 5, 10, 100)

		first, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, first.Raised)

		second, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, second.Raised)
		assert.Equal(t, 0, second.Resolved)

		_, total, err := env.warningSvc.List(context.Background(), WarningListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("recovered material resolves its warning", func(t *testing.T) {
		env := newTestEnv()
		m := env.seedMaterial("M001", 5, 10, 100)

		_, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)

		env.store.materials[m.ID].CurrentStock = 50
		result, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Resolved)

		resolved := inventory.WarningStatusResolved
		warnings, _, err := env.warningSvc.List(context.Background(), WarningListFilter{Status: &resolved})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.NotNil(t, warnings[0].ResolvedAt)
	})

	t.Run("stock change refreshes the pending warning in place", func(t *testing.T) {
		env := newTestEnv()
		m := env.seedMaterial("M001", 8, 10, 100)

		_, err := env.warningSvc.Check(context.Background())
		require.NoError(t, err)

		env.store.materials[m.ID].CurrentStock = 2
		_, err = env.warningSvc.Check(context.Background())
		require.NoError(t, err)

		warnings, total, err := env.warningSvc.List(context.Background(), WarningListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "danger", warnings[0].Level)
		assert.Equal(t, int64(2), warnings[0].CurrentStock)
	})
}

func TestWarningService_Statistics(t *testing.T) {
	env := newTestEnv()
	env.seedMaterial("M001", 0, 10, 100)   // low danger
	env.seedMaterial("M002", 10, 10, 100)  // low warning
	env.seedMaterial("M003", 150, 10, 100) // high danger

	_, err := env.warningSvc.Check(context.Background())
	require.NoError(t, err)

	stats, err := env.warningSvc.Statistics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 3, stats.Pending)
	assert.EqualValues(t, 2, stats.Low)
	assert.EqualValues(t, 1, stats.High)
	assert.EqualValues(t, 2, stats.Danger)
	assert.EqualValues(t, 1, stats.Warning)
}
