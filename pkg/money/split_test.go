// pkg/money/split_test.go
package money

import (
	"testing"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		n      int
		want   []float64
	}{
		{
			name:   "even split",
			amount: 100,
			n:      2,
			want:   []float64{50, 50},
		},
		{
			name:   "remainder goes to first debtor",
			amount: 100,
			n:      3,
			want:   []float64{33.34, 33.33, 33.33},
		},
		{
			name:   "two leftover cents",
			amount: 10,
			n:      3,
			want:   []float64{3.34, 3.33, 3.33},
		},
		{
			name:   "single debtor takes everything",
			amount: 42.5,
			n:      1,
			want:   []float64{42.5},
		},
		{
			name:   "fewer cents than debtors",
			amount: 0.02,
			n:      3,
			want:   []float64{0.01, 0.01, 0},
		},
		{
			name:   "sub-cent amount is rounded first",
			amount: 10.005,
			n:      2,
			want:   []float64{5.01, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitEqually(tt.amount, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitEqually_SharesSumToAmount(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 9.99, 100, 123.45, 1000.01} {
		for n := 1; n <= 7; n++ {
			shares, err := SplitEqually(amount, n)
			require.NoError(t, err)
			require.Len(t, shares, n)

			var cents int64
			for i, s := range shares {
				cents += ToCents(s)
				if i > 0 {
					assert.LessOrEqual(t, ToCents(s), ToCents(shares[i-1]), "shares never increase")
				}
			}
			assert.Equal(t, ToCents(amount), cents, "amount=%v n=%d", amount, n)
		}
	}
}

func TestSplitEqually_Invalid(t *testing.T) {
	_, err := SplitEqually(100, 0)
	assert.True(t, errors.IsType(err, errors.ValidationError))

	_, err = SplitEqually(0, 2)
	assert.True(t, errors.IsType(err, errors.ValidationError))

	_, err = SplitEqually(-5, 2)
	assert.True(t, errors.IsType(err, errors.ValidationError))
}
