// Package gst: cálculo de GST (India) para la factura: reparto CGST/SGST vs IGST,
// descuento, totales y el total en letras con numeración india.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Rates tasas GST en porcentaje (9 = 9%).
type Rates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// DefaultRates 9% CGST + 9% SGST intraestatal, 18% IGST interestatal.
func DefaultRates() Rates {
	return Rates{
		CGST: decimal.NewFromInt(9),
		SGST: decimal.NewFromInt(9),
		IGST: decimal.NewFromInt(18),
	}
}

// SameState compara estados ignorando espacios en los extremos y mayúsculas (case folding Unicode).
// Dos estados vacíos se consideran iguales; el rechazo de estados vacíos se hace antes de llegar aquí.
func SameState(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// ComputeTax reparte el impuesto sobre la base gravable:
// mismo estado → CGST y SGST; estados distintos → solo IGST.
// Función pura; los montos no se redondean.
func ComputeTax(taxable decimal.Decimal, sellerState, buyerState string, rates Rates) entity.TaxBreakdown {
	if SameState(sellerState, buyerState) {
		return entity.TaxBreakdown{
			CGSTRate:   rates.CGST,
			CGSTAmount: percentOf(taxable, rates.CGST),
			SGSTRate:   rates.SGST,
			SGSTAmount: percentOf(taxable, rates.SGST),
			IGSTRate:   decimal.Zero,
			IGSTAmount: decimal.Zero,
		}
	}
	return entity.TaxBreakdown{
		CGSTRate:   decimal.Zero,
		CGSTAmount: decimal.Zero,
		SGSTRate:   decimal.Zero,
		SGSTAmount: decimal.Zero,
		IGSTRate:   rates.IGST,
		IGSTAmount: percentOf(taxable, rates.IGST),
	}
}

func percentOf(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred)
}
