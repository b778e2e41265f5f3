package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotal(t *testing.T) {
	catalog := map[int64]decimal.Decimal{
		1: d("120.00"), // popcorn
		2: d("50.00"),  // soda
	}

	tests := []struct {
		name       string
		seatCount  int
		unitPrice  decimal.Decimal
		quantities map[int64]int
		want       string
	}{
		{
			name:      "seats only",
			seatCount: 2,
			unitPrice: d("250.00"),
			want:      "500.00",
		},
		{
			name:       "seats plus extras",
			seatCount:  3,
			unitPrice:  d("250.00"),
			quantities: map[int64]int{2: 2},
			want:       "850.00",
		},
		{
			name:       "kiosk scenario",
			seatCount:  2,
			unitPrice:  d("250.00"),
			quantities: map[int64]int{1: 1},
			want:       "620.00",
		},
		{
			name:       "zero quantity entries are skipped",
			seatCount:  1,
			unitPrice:  d("250.00"),
			quantities: map[int64]int{1: 0, 2: 0},
			want:       "250.00",
		},
		{
			name:      "zero seats",
			seatCount: 0,
			unitPrice: d("250.00"),
			want:      "0.00",
		},
		{
			name:       "fractional prices round to two decimals",
			seatCount:  3,
			unitPrice:  d("99.99"),
			quantities: map[int64]int{2: 3},
			want:       "449.97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ComputeTotal(tt.seatCount, tt.unitPrice, tt.quantities, catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total.StringFixed(2))
		})
	}
}

func TestComputeTotalDeterminism(t *testing.T) {
	catalog := map[int64]decimal.Decimal{
		1: d("120.00"),
		2: d("50.00"),
		3: d("75.50"),
	}
	quantities := map[int64]int{1: 2, 2: 1, 3: 3}

	first, err := ComputeTotal(4, d("250.00"), quantities, catalog)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		total, err := ComputeTotal(4, d("250.00"), quantities, catalog)
		require.NoError(t, err)
		assert.True(t, first.Equal(total), "run %d: got %s, want %s", i, total, first)
	}

	assert.Equal(t, "1516.50", first.StringFixed(2))
}

func TestComputeTotalValidation(t *testing.T) {
	catalog := map[int64]decimal.Decimal{1: d("120.00")}

	tests := []struct {
		name       string
		seatCount  int
		unitPrice  decimal.Decimal
		quantities map[int64]int
	}{
		{
			name:       "unknown extra id",
			seatCount:  1,
			unitPrice:  d("250.00"),
			quantities: map[int64]int{99: 1},
		},
		{
			name:       "negative quantity",
			seatCount:  1,
			unitPrice:  d("250.00"),
			quantities: map[int64]int{1: -2},
		},
		{
			name:      "negative seat count",
			seatCount: -1,
			unitPrice: d("250.00"),
		},
		{
			name:      "negative ticket price",
			seatCount: 1,
			unitPrice: d("-250.00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotal(tt.seatCount, tt.unitPrice, tt.quantities, catalog)
			require.Error(t, err)

			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}
