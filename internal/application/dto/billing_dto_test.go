package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

func TestGenerateInvoiceRequest_Decodifica(t *testing.T) {
	body := `{
		"company_info": {"name": "Fascino", "state": "Karnataka", "pincode": 560001},
		"buyer_info": {"name": "Acme", "state": "Goa", "pincode": "403001"},
		"items": [{"description": "Widget", "hsn_code": 8471, "quantity": 2, "rate": 50.5}],
		"invoice_number": 42,
		"invoice_date": "2025-01-15",
		"discount_type": "percentage",
		"discount_value": "10",
		"cgst_rate": null
	}`
	var req dto.GenerateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, dto.FlexString("560001"), req.CompanyInfo.Pincode)
	assert.Equal(t, dto.FlexString("403001"), req.BuyerInfo.Pincode)
	assert.Equal(t, "8471", req.Items[0].HSNCode.String())
	assert.Equal(t, "42", req.InvoiceNumber.String())
	assert.Equal(t, "50.5", req.Items[0].Rate.String())
	assert.True(t, req.DiscountValue.Valid)
	assert.Equal(t, "10", req.DiscountValue.Decimal.String())
	assert.False(t, req.CGSTRate.Valid, "null debe quedar como no informado")
	assert.False(t, req.IGSTRate.Valid, "ausente debe quedar como no informado")
	assert.False(t, req.ShippingCharges.Valid)
}

func TestFlexString_RechazaObjetos(t *testing.T) {
	var f dto.FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}
