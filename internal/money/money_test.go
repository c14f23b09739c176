package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{".5", 50, true},
		{" 2.50 ", 250, true},
		{"-12.50", -1250, true},
		{"+7", 700, true},
		{"-0.05", -5, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"1e3", 0, false},
		{"12.345", 0, false},
		{"1.005", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDecimalToCents(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.out, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "3150.00", FromCents(315000).String())
	assert.Equal(t, "-12.50", FromCents(-1250).String())
	assert.Equal(t, "-0.05", FromCents(-5).String())
	assert.Equal(t, "0.00", Money{}.String())
}

func TestSum(t *testing.T) {
	got := Sum(MustParse("1200"), MustParse("300"), MustParse("150"), MustParse("200"))
	assert.Equal(t, "1850.00", got.String())
	assert.Equal(t, "3150.00", MustParse("5000").Sub(got).String())
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{FromCents(-1250)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"-12.50"}`, string(b))

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`42.1`), &fromNumber))
	assert.Equal(t, int64(4210), fromNumber.Cents)

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}
