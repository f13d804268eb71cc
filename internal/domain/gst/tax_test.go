package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSameState_IgnoraEspaciosYMayusculas(t *testing.T) {
	assert.True(t, gst.SameState("Karnataka", "  karnataka "))
	assert.True(t, gst.SameState("TAMIL NADU", "Tamil Nadu"))
	assert.False(t, gst.SameState("Karnataka", "Maharashtra"))
	// Comportamiento heredado: dos vacíos cuentan como el mismo estado.
	assert.True(t, gst.SameState("", "   "))
}

func TestComputeTax_MismoEstado_CGSTySGST(t *testing.T) {
	tax := gst.ComputeTax(dec("100"), "Karnataka", "KARNATAKA", gst.DefaultRates())

	assert.True(t, tax.CGSTAmount.Equal(dec("9")), "cgst = %s", tax.CGSTAmount)
	assert.True(t, tax.SGSTAmount.Equal(dec("9")), "sgst = %s", tax.SGSTAmount)
	assert.True(t, tax.IGSTAmount.IsZero())
	assert.True(t, tax.IGSTRate.IsZero())
	assert.True(t, tax.CGSTRate.Equal(dec("9")))
}

func TestComputeTax_DistintoEstado_SoloIGST(t *testing.T) {
	tax := gst.ComputeTax(dec("100"), "Karnataka", "Maharashtra", gst.DefaultRates())

	assert.True(t, tax.IGSTAmount.Equal(dec("18")))
	assert.True(t, tax.IGSTRate.Equal(dec("18")))
	assert.True(t, tax.CGSTAmount.IsZero())
	assert.True(t, tax.SGSTAmount.IsZero())
	assert.True(t, tax.CGSTRate.IsZero())
	assert.True(t, tax.SGSTRate.IsZero())
}

func TestComputeTax_Excluyentes(t *testing.T) {
	rates := gst.Rates{CGST: dec("2.5"), SGST: dec("2.5"), IGST: dec("5")}
	for _, states := range [][2]string{{"Goa", "goa"}, {"Goa", "Kerala"}, {"Delhi", " delhi"}, {"Bihar", "Assam"}} {
		tax := gst.ComputeTax(dec("1234.56"), states[0], states[1], rates)
		intra := !tax.CGSTAmount.IsZero() || !tax.SGSTAmount.IsZero()
		inter := !tax.IGSTAmount.IsZero()
		assert.NotEqual(t, intra, inter, "estados %v: CGST/SGST e IGST deben ser excluyentes", states)
	}
}

func TestComputeTax_TasasPersonalizadas(t *testing.T) {
	rates := gst.Rates{CGST: dec("6"), SGST: dec("6"), IGST: dec("12")}
	tax := gst.ComputeTax(dec("250.50"), "Goa", "Goa", rates)
	assert.Equal(t, "15.03", tax.CGSTAmount.StringFixed(2))
	assert.Equal(t, "15.03", tax.SGSTAmount.StringFixed(2))
	assert.Equal(t, "30.06", tax.Total().StringFixed(2))
}
