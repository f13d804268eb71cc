package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "ZERO"},
		{"0.00", "ZERO"},
		{"0.75", "ZERO RUPEES ONLY"},
		{"1", "ONE RUPEES ONLY"},
		{"15", "FIFTEEN RUPEES ONLY"},
		{"40", "FORTY RUPEES ONLY"},
		{"99", "NINETY NINE RUPEES ONLY"},
		{"100", "ONE HUNDRED RUPEES ONLY"},
		{"118", "ONE HUNDRED EIGHTEEN RUPEES ONLY"},
		{"118.99", "ONE HUNDRED EIGHTEEN RUPEES ONLY"},
		{"1000", "ONE THOUSAND RUPEES ONLY"},
		{"1180", "ONE THOUSAND ONE HUNDRED EIGHTY RUPEES ONLY"},
		{"100000", "ONE LAKH RUPEES ONLY"},
		{"1234567", "TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN RUPEES ONLY"},
		{"10000000", "ONE CRORE RUPEES ONLY"},
		{"10000001", "ONE CRORE ONE RUPEES ONLY"},
		{"987654321", "NINETY EIGHT CRORE SEVENTY SIX LAKH FIFTY FOUR THOUSAND THREE HUNDRED TWENTY ONE RUPEES ONLY"},
		{"10000000000", "ONE THOUSAND CRORE RUPEES ONLY"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := gst.AmountToWords(dec(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmountToWords_Negativo(t *testing.T) {
	_, err := gst.AmountToWords(dec("-1"))
	assert.ErrorIs(t, err, gst.ErrNegativeAmount)
}
