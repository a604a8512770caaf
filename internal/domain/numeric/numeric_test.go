package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want decimal.Decimal
	}{
		{"12", decimal.NewFromInt(12)},
		{"3.75", decimal.NewFromFloat(3.75)},
		{" 8 ", decimal.NewFromInt(8)},
		{"", decimal.Zero},
		{"abc", decimal.Zero},
		{"12,5", decimal.Zero},
		{"-4", decimal.Zero},
	}

	for _, tc := range cases {
		got := Parse(tc.in)
		assert.True(t, got.Equal(tc.want), "Parse(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestSum(t *testing.T) {
	got := Sum([]string{"1.5", "junk", "2", ""})
	assert.True(t, got.Equal(decimal.NewFromFloat(3.5)))
}
