package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty starts at one", "", 1},
		{"increments last sequence", "IN-20260831-0007", 8},
		{"rolls into four digits", "ADJ-20260831-0099", 100},
		{"malformed suffix starts over", "IN-20260831-xyz", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextSequence(tt.input))
		})
	}
}

func TestGenerateBillNo(t *testing.T) {
	today := time.Now().Format("20060102")

	t.Run("first bill of the day", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		mock.ExpectQuery(`SELECT "bill_no" FROM "stock_movements" WHERE bill_no LIKE \$1`).
			WithArgs(fmt.Sprintf("IN-%s-", today)+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"bill_no"}))

		billNo, err := repo.GenerateBillNo(context.Background(), "IN")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("IN-%s-0001", today), billNo)
	})

	t.Run("continues the sequence", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStockMovementRepository(db)

		mock.ExpectQuery(`SELECT "bill_no" FROM "stock_movements" WHERE bill_no LIKE \$1`).
			WithArgs(fmt.Sprintf("ADJ-%s-", today)+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"bill_no"}).
				AddRow(fmt.Sprintf("ADJ-%s-0012", today)))

		billNo, err := repo.GenerateBillNo(context.Background(), "ADJ")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ADJ-%s-0013", today), billNo)
	})
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder("DROP TABLE"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "bill_no", ValidateSortField("bill_no", MovementSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("evil; --", MovementSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", MovementSortFields, "created_at"))
}
