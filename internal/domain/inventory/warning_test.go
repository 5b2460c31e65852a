package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMaterial(t *testing.T) {
	tests := []struct {
		name          string
		min, max      int64
		stock         int64
		expectedType  WarningType
		expectedLevel WarningLevel
		triggered     bool
	}{
		{"in band", 10, 100, 50, "", "", false},
		{"at min warns", 10, 100, 10, WarningTypeLow, WarningLevelWarning, true},
		{"below half min is danger", 10, 100, 4, WarningTypeLow, WarningLevelDanger, true},
		{"exactly half min warns", 10, 100, 5, WarningTypeLow, WarningLevelWarning, true},
		{"zero stock is danger", 10, 100, 0, WarningTypeLow, WarningLevelDanger, true},
		{"at max warns", 10, 100, 100, WarningTypeHigh, WarningLevelWarning, true},
		{"ten percent over warns", 10, 100, 110, WarningTypeHigh, WarningLevelWarning, true},
		{"over ten percent is danger", 10, 100, 111, WarningTypeHigh, WarningLevelDanger, true},
		{"no thresholds never triggers", 0, 0, 0, "", "", false},
		{"low wins over high when bands overlap", 100, 100, 100, WarningTypeLow, WarningLevelWarning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Material{MinStock: tt.min, MaxStock: tt.max, CurrentStock: tt.stock}
			warningType, level, triggered := EvaluateMaterial(m)
			assert.Equal(t, tt.triggered, triggered)
			if tt.triggered {
				assert.Equal(t, tt.expectedType, warningType)
				assert.Equal(t, tt.expectedLevel, level)
			}
		})
	}
}

func TestStockWarning(t *testing.T) {
	t.Run("new warning snapshots material state", func(t *testing.T) {
		m := testMaterial(t, 3, "M003", 4)
		warningType, level, triggered := EvaluateMaterial(m)
		require.True(t, triggered)

		w := NewStockWarning(m, warningType, level)
		assert.Equal(t, int64(3), w.MaterialID)
		assert.Equal(t, WarningTypeLow, w.WarningType)
		assert.Equal(t, WarningLevelDanger, w.Level)
		assert.Equal(t, int64(4), w.CurrentStock)
		assert.Equal(t, WarningStatusPending, w.Status)

		events := w.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockWarningRaised, events[0].EventType())
	})

	t.Run("refresh updates snapshot", func(t *testing.T) {
		m := testMaterial(t, 3, "M003", 4)
		w := NewStockWarning(m, WarningTypeLow, WarningLevelDanger)

		m.CurrentStock = 8
		require.NoError(t, w.Refresh(m, WarningTypeLow, WarningLevelWarning))
		assert.Equal(t, int64(8), w.CurrentStock)
		assert.Equal(t, WarningLevelWarning, w.Level)
	})

	t.Run("resolve closes the warning", func(t *testing.T) {
		m := testMaterial(t, 3, "M003", 4)
		w := NewStockWarning(m, WarningTypeLow, WarningLevelDanger)

		require.NoError(t, w.Resolve())
		assert.Equal(t, WarningStatusResolved, w.Status)
		assert.NotNil(t, w.ResolvedAt)

		require.Error(t, w.Resolve())
		require.Error(t, w.Refresh(m, WarningTypeLow, WarningLevelWarning))
	})
}
