package billing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

func validRequest() dto.GenerateInvoiceRequest {
	return dto.GenerateInvoiceRequest{
		CompanyInfo: &dto.PartyRequest{
			Name: "Fascino Health Care", Address: "12 MG Road", City: "Bengaluru",
			State: "Karnataka", Pincode: "560001", GSTIN: "29AAGCB7383J1Z4",
		},
		BuyerInfo: &dto.PartyRequest{
			Name: "Acme Traders", Address: "Residency Road", City: "Bengaluru",
			State: " karnataka ", Pincode: "560025",
		},
		Items: []dto.InvoiceItemRequest{
			{Description: "Widget", HSNCode: "8471", Quantity: 2, Rate: decimal.NewFromInt(50)},
		},
		InvoiceNumber: "INV 001",
		InvoiceDate:   "2025-01-15",
	}
}

func newUseCase(r billing.DocumentRenderer, store billing.InvoiceStore, cfg billing.GenerateInvoiceConfig) *billing.GenerateInvoiceUseCase {
	return billing.NewGenerateInvoiceUseCase(r, missingLogo, store, cfg, zerolog.Nop())
}

func TestGenerate_MismoEstado(t *testing.T) {
	r, store := &fakeRenderer{}, newMemStore()
	uc := newUseCase(r, store, billing.GenerateInvoiceConfig{BrandName: "Fascino"})

	out, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Invoice_INV_001.pdf", out.Filename)
	assert.Equal(t, "%PDF", string(out.Content[:4]))
	assert.Equal(t, "118.00", out.Totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "9.00", out.Totals.Tax.CGSTAmount.StringFixed(2))
	assert.True(t, out.Totals.Tax.IGSTAmount.IsZero())
	assert.Equal(t, 1, r.calls)

	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.removed, "el PDF temporal se borra tras leerlo")
	assert.Empty(t, store.files)
}

func TestGenerate_ConservaArchivo(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(&fakeRenderer{}, store, billing.GenerateInvoiceConfig{KeepFiles: true})

	_, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, store.files, 1)
	assert.Empty(t, store.removed)
}

func TestGenerate_SinAlmacen(t *testing.T) {
	uc := newUseCase(&fakeRenderer{}, nil, billing.GenerateInvoiceConfig{})
	out, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.Content)
}

func TestGenerate_InterestatalConDescuentoYEnvio(t *testing.T) {
	req := validRequest()
	req.BuyerInfo.State = "Maharashtra"
	req.DiscountType = "amount"
	req.DiscountValue = decimal.NewNullDecimal(decimal.RequireFromString("12.5"))
	req.ShippingCharges = decimal.NewNullDecimal(decimal.RequireFromString("5.66"))

	r := &fakeRenderer{}
	out, err := newUseCase(r, nil, billing.GenerateInvoiceConfig{}).Generate(context.Background(), req)
	require.NoError(t, err)

	// 100 - 12.5 = 87.5; IGST 18% = 15.75; + 5.66
	assert.Equal(t, "87.50", out.Totals.Taxable.StringFixed(2))
	assert.Equal(t, "15.75", out.Totals.Tax.IGSTAmount.StringFixed(2))
	assert.Equal(t, "108.91", out.Totals.GrandTotal.StringFixed(2))
	assert.Contains(t, texts(r.last), "IGST (18%)")
	assert.Contains(t, texts(r.last), "-12.50")
}

func TestGenerate_TasasDeLaPeticionYPorDefecto(t *testing.T) {
	cfg := billing.GenerateInvoiceConfig{DefaultRates: gst.Rates{
		CGST: decimal.NewFromInt(6), SGST: decimal.NewFromInt(6), IGST: decimal.NewFromInt(12),
	}}
	req := validRequest()
	req.SGSTRate = decimal.NewNullDecimal(decimal.NewFromInt(2))

	out, err := newUseCase(&fakeRenderer{}, nil, cfg).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "6.00", out.Totals.Tax.CGSTAmount.StringFixed(2))
	assert.Equal(t, "2.00", out.Totals.Tax.SGSTAmount.StringFixed(2))
	assert.Equal(t, "108.00", out.Totals.GrandTotal.StringFixed(2))
}

func TestGenerate_NumeroDeFacturaNumerico(t *testing.T) {
	body := `{
		"company_info": {"name": "Fascino", "state": "Goa", "pincode": 403001},
		"buyer_info": {"name": "Acme", "state": "Goa"},
		"items": [{"description": "Widget", "hsn_code": 8471, "quantity": 1, "rate": "10"}],
		"invoice_number": 42,
		"invoice_date": "2025-02-01"
	}`
	var req dto.GenerateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	r := &fakeRenderer{}
	out, err := newUseCase(r, nil, billing.GenerateInvoiceConfig{}).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Invoice_42.pdf", out.Filename)
	assert.Contains(t, texts(r.last), "INVOICE 42")
	assert.Contains(t, texts(r.last), "Goa. 403001")
}

func TestGenerate_Validacion(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.GenerateInvoiceRequest)
		msg    string
	}{
		{"sin empresa", func(r *dto.GenerateInvoiceRequest) { r.CompanyInfo = nil }, "company_info es obligatorio"},
		{"sin comprador", func(r *dto.GenerateInvoiceRequest) { r.BuyerInfo = nil }, "buyer_info es obligatorio"},
		{"sin items", func(r *dto.GenerateInvoiceRequest) { r.Items = nil }, "items es obligatorio"},
		{"items vacío", func(r *dto.GenerateInvoiceRequest) { r.Items = []dto.InvoiceItemRequest{} }, "items requiere al menos 1"},
		{"cantidad cero", func(r *dto.GenerateInvoiceRequest) { r.Items[0].Quantity = 0 }, "items[0].quantity debe ser mayor que 0"},
		{"tarifa negativa", func(r *dto.GenerateInvoiceRequest) { r.Items[0].Rate = decimal.NewFromInt(-1) }, "items[0].rate no puede ser negativo"},
		{"descripción en blanco", func(r *dto.GenerateInvoiceRequest) { r.Items[0].Description = "  " }, "items[0].description es obligatorio"},
		{"número en blanco", func(r *dto.GenerateInvoiceRequest) { r.InvoiceNumber = " " }, "invoice_number es obligatorio"},
		{"sin fecha", func(r *dto.GenerateInvoiceRequest) { r.InvoiceDate = "" }, "invoice_date es obligatorio"},
		{"estado del comprador vacío", func(r *dto.GenerateInvoiceRequest) { r.BuyerInfo.State = "" }, "buyer_info.state es obligatorio"},
		{"tipo de descuento", func(r *dto.GenerateInvoiceRequest) { r.DiscountType = "bogo" }, "discount_type debe ser uno de"},
		{"tasa negativa", func(r *dto.GenerateInvoiceRequest) {
			r.IGSTRate = decimal.NewNullDecimal(decimal.NewFromInt(-18))
		}, "igst_rate no puede ser negativo"},
		{"descuento mayor al subtotal", func(r *dto.GenerateInvoiceRequest) {
			r.DiscountType = "amount"
			r.DiscountValue = decimal.NewNullDecimal(decimal.NewFromInt(150))
		}, "supera el subtotal"},
		{"porcentaje mayor a 100", func(r *dto.GenerateInvoiceRequest) {
			r.DiscountType = "percentage"
			r.DiscountValue = decimal.NewNullDecimal(decimal.NewFromInt(120))
		}, "entre 0 y 100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeRenderer{}
			req := validRequest()
			tc.mutate(&req)

			_, err := newUseCase(r, nil, billing.GenerateInvoiceConfig{}).Generate(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.msg)
			assert.Zero(t, r.calls, "no se compone nada si la entrada es inválida")
		})
	}
}

func TestGenerate_GSTIN(t *testing.T) {
	req := validRequest()
	req.BuyerInfo.GSTIN = "29AAGCB7383J1Z5" // carácter de control incorrecto

	_, err := newUseCase(&fakeRenderer{}, nil, billing.GenerateInvoiceConfig{}).Generate(context.Background(), req)
	assert.NoError(t, err, "sin modo estricto solo se registra")

	_, err = newUseCase(&fakeRenderer{}, nil, billing.GenerateInvoiceConfig{StrictGSTIN: true}).Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "buyer_info.gstin")
}

func TestGenerate_FalloDelRenderizador(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(&fakeRenderer{err: errors.New("boom")}, store, billing.GenerateInvoiceConfig{})

	_, err := uc.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Empty(t, store.saved)
}

func TestGenerate_FalloDeAlmacenamiento(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disco lleno")
	uc := newUseCase(&fakeRenderer{}, store, billing.GenerateInvoiceConfig{})

	_, err := uc.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Invoice_INV_2025_01.pdf", billing.SafeFilename("INV/2025 01"))
	assert.Equal(t, "Invoice_A_B.pdf", billing.SafeFilename(` A\B `))
	assert.Equal(t, "Invoice_42.pdf", billing.SafeFilename("42"))
}

func TestTotals_NoRenderiza(t *testing.T) {
	r := &fakeRenderer{}
	req := validRequest()
	req.DiscountType = "percentage"
	req.DiscountValue = decimal.NewNullDecimal(decimal.NewFromInt(10))

	totals, err := newUseCase(r, nil, billing.GenerateInvoiceConfig{}).Totals(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "106.20", totals.GrandTotal.StringFixed(2))
	assert.Zero(t, r.calls)

	req.Items = nil
	_, err = newUseCase(r, nil, billing.GenerateInvoiceConfig{}).Totals(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
