package entity

import "github.com/shopspring/decimal"

// Tipos de descuento aceptados en la petición.
const (
	DiscountNone       DiscountKind = "none"
	DiscountPercentage DiscountKind = "percentage"
	DiscountAmount     DiscountKind = "amount"
)

// DiscountKind tipo de descuento global de la factura.
type DiscountKind string

// DiscountSpec descuento solicitado. Value es porcentaje (0-100) o monto fijo según Kind.
type DiscountSpec struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// Applied indica si el descuento tiene efecto sobre el subtotal.
func (d DiscountSpec) Applied() bool {
	return d.Kind == DiscountPercentage || d.Kind == DiscountAmount
}

// LineItem línea de factura.
type LineItem struct {
	Description string
	HSNCode     string // HSN/SAC, opcional
	Quantity    int64
	Rate        decimal.Decimal
}

// Amount = cantidad × tarifa.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(li.Quantity).Mul(li.Rate)
}

// TaxBreakdown impuestos GST. CGST+SGST (mismo estado) e IGST (interestatal) son excluyentes.
type TaxBreakdown struct {
	CGSTRate   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTRate   decimal.Decimal
	SGSTAmount decimal.Decimal
	IGSTRate   decimal.Decimal
	IGSTAmount decimal.Decimal
}

// Total suma de los tres componentes.
func (t TaxBreakdown) Total() decimal.Decimal {
	return t.CGSTAmount.Add(t.SGSTAmount).Add(t.IGSTAmount)
}

// InvoiceTotals resultado del cálculo de totales.
// GrandTotal = Taxable + CGST + SGST + IGST + Shipping, con Taxable = Subtotal - DiscountAmount.
type InvoiceTotals struct {
	Subtotal       decimal.Decimal
	Discount       DiscountSpec
	DiscountAmount decimal.Decimal
	Taxable        decimal.Decimal
	Tax            TaxBreakdown
	Shipping       decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Invoice agregado de una sola petición: se construye, se renderiza y se descarta.
type Invoice struct {
	Number    string
	Date      string // ISO YYYY-MM-DD; se muestra tal cual si no se puede interpretar
	PONumber  string
	Agreement string
	Seller    Party
	Buyer     Party
	Items     []LineItem
	Discount  DiscountSpec
	Shipping  decimal.Decimal
}
