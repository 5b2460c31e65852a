package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMovement(t *testing.T, direction MovementDirection, movementType MovementType) *StockMovement {
	t.Helper()
	m := testMaterial(t, 1, "M001", 100)
	billNo := "IN-20260831-0001"
	if direction == MovementDirectionOut {
		billNo = "OUT-20260831-0001"
	}
	sm, err := NewStockMovement(billNo, direction, movementType, m, 10, decimal.NewFromInt(50), "bob", "", time.Now())
	require.NoError(t, err)
	return sm
}

func TestMovementType_ValidFor(t *testing.T) {
	tests := []struct {
		name      string
		mt        MovementType
		direction MovementDirection
		expected  bool
	}{
		{"purchase in", MovementTypePurchase, MovementDirectionIn, true},
		{"adjust gain in", MovementTypeAdjustGain, MovementDirectionIn, true},
		{"sales in", MovementTypeSales, MovementDirectionIn, false},
		{"adjust loss in", MovementTypeAdjustLoss, MovementDirectionIn, false},
		{"sales out", MovementTypeSales, MovementDirectionOut, true},
		{"adjust loss out", MovementTypeAdjustLoss, MovementDirectionOut, true},
		{"purchase out", MovementTypePurchase, MovementDirectionOut, false},
		{"production both", MovementTypeProduction, MovementDirectionOut, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mt.ValidFor(tt.direction))
		})
	}
}

func TestNewStockMovement(t *testing.T) {
	t.Run("snapshots material identity", func(t *testing.T) {
		m := testMaterial(t, 7, "M007", 100)
		sm, err := NewStockMovement("IN-20260831-0002", MovementDirectionIn, MovementTypePurchase, m, 25, decimal.NewFromInt(125), "bob", "po 42", time.Now())
		require.NoError(t, err)

		assert.Equal(t, int64(7), sm.MaterialID)
		assert.Equal(t, "M007", sm.MaterialCode)
		assert.Equal(t, m.MaterialName, sm.MaterialName)
		assert.Equal(t, MovementStatusNormal, sm.Status)
		assert.Equal(t, int64(25), sm.SignedQty())
	})

	t.Run("out movement has negative signed quantity", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionOut, MovementTypeSales)
		assert.Equal(t, int64(-10), sm.SignedQty())
		assert.True(t, sm.SignedValue().Equal(decimal.NewFromInt(-50)))
	})

	t.Run("validation failures", func(t *testing.T) {
		m := testMaterial(t, 1, "M001", 100)

		_, err := NewStockMovement("", MovementDirectionIn, MovementTypePurchase, m, 10, decimal.NewFromInt(50), "bob", "", time.Now())
		require.Error(t, err)

		_, err = NewStockMovement("IN-1", MovementDirectionIn, MovementTypeSales, m, 10, decimal.NewFromInt(50), "bob", "", time.Now())
		require.Error(t, err)

		_, err = NewStockMovement("IN-1", MovementDirectionIn, MovementTypePurchase, m, 0, decimal.NewFromInt(50), "bob", "", time.Now())
		require.Error(t, err)

		_, err = NewStockMovement("IN-1", MovementDirectionIn, MovementTypePurchase, m, 10, decimal.NewFromInt(-1), "bob", "", time.Now())
		require.Error(t, err)
	})
}

func TestStockMovement_Amend(t *testing.T) {
	t.Run("amend updates quantity and value", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionIn, MovementTypePurchase)

		require.NoError(t, sm.Amend(15, decimal.NewFromInt(75), "corrected"))
		assert.Equal(t, int64(15), sm.Quantity)
		assert.True(t, sm.Value.Equal(decimal.NewFromInt(75)))
		assert.Equal(t, "corrected", sm.Remark)
	})

	t.Run("adjustment movements are immutable", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionIn, MovementTypeAdjustGain)
		require.Error(t, sm.Amend(15, decimal.NewFromInt(75), ""))
	})

	t.Run("voided movements cannot be amended", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionIn, MovementTypePurchase)
		require.NoError(t, sm.Void())
		require.Error(t, sm.Amend(15, decimal.NewFromInt(75), ""))
	})
}

func TestStockMovement_Void(t *testing.T) {
	t.Run("void marks status", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionOut, MovementTypeSales)
		require.NoError(t, sm.Void())
		assert.Equal(t, MovementStatusVoided, sm.Status)
	})

	t.Run("void twice rejected", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionOut, MovementTypeSales)
		require.NoError(t, sm.Void())
		require.Error(t, sm.Void())
	})

	t.Run("adjustment movements cannot be voided", func(t *testing.T) {
		sm := testMovement(t, MovementDirectionOut, MovementTypeAdjustLoss)
		require.Error(t, sm.Void())
	})
}
