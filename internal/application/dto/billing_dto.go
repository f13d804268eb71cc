package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest body para POST /api/generate-invoice.
// Tasas y envío son opcionales: si no vienen se usan los valores por defecto (9/9/18 y 0).
type GenerateInvoiceRequest struct {
	CompanyInfo     *PartyRequest        `json:"company_info" validate:"required"`
	BuyerInfo       *PartyRequest        `json:"buyer_info" validate:"required"`
	Items           []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	InvoiceNumber   FlexString           `json:"invoice_number" validate:"notblank"`
	InvoiceDate     string               `json:"invoice_date" validate:"notblank"` // YYYY-MM-DD
	PONumber        FlexString           `json:"po_number,omitempty"`
	Agreement       string               `json:"agreement,omitempty"`
	DiscountType    string               `json:"discount_type,omitempty" validate:"omitempty,oneof=none percentage amount"`
	DiscountValue   decimal.NullDecimal  `json:"discount_value"`
	CGSTRate        decimal.NullDecimal  `json:"cgst_rate"`
	SGSTRate        decimal.NullDecimal  `json:"sgst_rate"`
	IGSTRate        decimal.NullDecimal  `json:"igst_rate"`
	ShippingCharges decimal.NullDecimal  `json:"shipping_charges"`
}

// PartyRequest datos de emisor (company_info) o comprador (buyer_info).
type PartyRequest struct {
	Name    string     `json:"name" validate:"notblank"`
	Address string     `json:"address"`
	City    string     `json:"city"`
	State   string     `json:"state" validate:"notblank"`
	Pincode FlexString `json:"pincode"`
	GSTIN   string     `json:"gstin,omitempty"`
	Email   string     `json:"email,omitempty"`
}

// InvoiceItemRequest línea de factura.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"notblank"`
	HSNCode     FlexString      `json:"hsn_code,omitempty"`
	Quantity    int64           `json:"quantity" validate:"gt=0"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceTotalsResponse cuerpo de POST /api/invoice-totals (vista previa sin PDF).
type InvoiceTotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Taxable        decimal.Decimal `json:"taxable_amount"`
	CGSTRate       decimal.Decimal `json:"cgst_rate"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	SGSTRate       decimal.Decimal `json:"sgst_rate"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	IGSTRate       decimal.Decimal `json:"igst_rate"`
	IGSTAmount     decimal.Decimal `json:"igst_amount"`
	Shipping       decimal.Decimal `json:"shipping_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	AmountInWords  string          `json:"amount_in_words"`
}

// FlexString acepta string o número en JSON (pincode, HSN y números de factura
// suelen llegar como número desde el frontend).
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("dto: se esperaba texto o número: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// String devuelve el valor como string.
func (f FlexString) String() string { return string(f) }
