package money_test

import (
	"testing"

	"github.com/finledger/fin_titles_app/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotal(t *testing.T) {
	total := money.ComputeTotal(dec("100.00"), dec("10.555"), dec("5.00"))
	assert.True(t, total.Equal(dec("105.56")), "got %s", total)

	total = money.ComputeTotal(dec("1500"), decimal.Zero, decimal.Zero)
	assert.True(t, total.Equal(dec("1500")))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, money.WithinTolerance(dec("100.00"), dec("100.01")))
	assert.True(t, money.WithinTolerance(dec("100.00"), dec("99.99")))
	assert.False(t, money.WithinTolerance(dec("100.00"), dec("100.02")))
}

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{"100 in 3", "100", 3, []string{"33.33", "33.33", "33.34"}},
		{"even split", "90", 3, []string{"30", "30", "30"}},
		{"single", "57.31", 1, []string{"57.31"}},
		{"residual on last", "10", 3, []string{"3.33", "3.33", "3.34"}},
		{"cents", "0.05", 2, []string{"0.02", "0.03"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parts := money.SplitInstallments(dec(tc.total), tc.n)
			require.Len(t, parts, tc.n)
			sum := decimal.Zero
			for i, p := range parts {
				assert.True(t, p.Equal(dec(tc.want[i])), "part %d: got %s want %s", i, p, tc.want[i])
				sum = sum.Add(p)
			}
			assert.True(t, sum.Equal(dec(tc.total)), "sum %s != total %s", sum, tc.total)
		})
	}

	assert.Nil(t, money.SplitInstallments(dec("100"), 0))
}
