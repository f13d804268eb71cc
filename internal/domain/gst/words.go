package gst

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount el total en letras no admite montos negativos.
var ErrNegativeAmount = errors.New("gst: monto negativo no convertible a letras")

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000

	rupeesSuffix = " RUPEES ONLY"
)

var ones = [...]string{"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE"}

var teens = [...]string{"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
	"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN"}

var tens = [...]string{"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY"}

// AmountToWords convierte un monto a letras con el sistema de numeración indio
// (crore = 10^7, lakh = 10^5, thousand, hundred). Trunca los decimales.
//
//	0        → "ZERO"
//	100      → "ONE HUNDRED RUPEES ONLY"
//	1234567  → "TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN RUPEES ONLY"
func AmountToWords(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}
	if amount.IsZero() {
		return "ZERO", nil
	}
	n := amount.Truncate(0).BigInt()
	if !n.IsUint64() {
		return "", errors.New("gst: monto fuera de rango para conversión a letras")
	}
	words := integerToWords(n.Uint64())
	if words == "" {
		words = "ZERO"
	}
	return words + rupeesSuffix, nil
}

// integerToWords agrupa crore → lakh → thousand → resto. El grupo de crores puede
// superar 999 y se expresa recursivamente (1000 crore → "ONE THOUSAND CRORE").
func integerToWords(n uint64) string {
	var parts []string
	if n >= crore {
		parts = append(parts, integerToWords(n/crore), "CRORE")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, belowThousand(int(n/lakh)), "LAKH")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, belowThousand(int(n/thousand)), "THOUSAND")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(int(n)))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " HUNDRED"
		}
		return ones[n/100] + " HUNDRED " + belowThousand(n%100)
	}
}
