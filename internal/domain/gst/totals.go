package gst

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
)

// Subtotal = Σ cantidad × tarifa.
func Subtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount())
	}
	return sum
}

// DiscountAmount monto del descuento sobre el subtotal: porcentaje, monto fijo o cero.
func DiscountAmount(subtotal decimal.Decimal, d entity.DiscountSpec) decimal.Decimal {
	switch d.Kind {
	case entity.DiscountPercentage:
		return percentOf(subtotal, d.Value)
	case entity.DiscountAmount:
		return d.Value
	default:
		return decimal.Zero
	}
}

// ComputeTotals aplica el descuento, calcula el impuesto sobre el subtotal ya descontado
// y suma el envío. Rechaza con domain.ErrInvalidInput las combinaciones que producirían
// bases o impuestos negativos.
func ComputeTotals(
	items []entity.LineItem,
	discount entity.DiscountSpec,
	sellerState, buyerState string,
	rates Rates,
	shipping decimal.Decimal,
) (entity.InvoiceTotals, error) {
	if err := validateAmounts(discount, rates, shipping); err != nil {
		return entity.InvoiceTotals{}, err
	}

	subtotal := Subtotal(items)
	discountAmount := DiscountAmount(subtotal, discount)
	if discountAmount.GreaterThan(subtotal) {
		return entity.InvoiceTotals{}, fmt.Errorf("%w: el descuento (%s) supera el subtotal (%s)",
			domain.ErrInvalidInput, discountAmount.StringFixed(2), subtotal.StringFixed(2))
	}
	if !discount.Applied() {
		discount = entity.DiscountSpec{Kind: entity.DiscountNone, Value: decimal.Zero}
	}

	taxable := subtotal.Sub(discountAmount)
	tax := ComputeTax(taxable, sellerState, buyerState, rates)
	grand := taxable.Add(tax.Total()).Add(shipping)

	return entity.InvoiceTotals{
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountAmount: discountAmount,
		Taxable:        taxable,
		Tax:            tax,
		Shipping:       shipping,
		GrandTotal:     grand,
	}, nil
}

func validateAmounts(discount entity.DiscountSpec, rates Rates, shipping decimal.Decimal) error {
	var errs []error
	switch discount.Kind {
	case entity.DiscountPercentage:
		if discount.Value.IsNegative() || discount.Value.GreaterThan(hundred) {
			errs = append(errs, fmt.Errorf("discount_value debe estar entre 0 y 100 para porcentaje, se recibió %s", discount.Value))
		}
	case entity.DiscountAmount:
		if discount.Value.IsNegative() {
			errs = append(errs, fmt.Errorf("discount_value no puede ser negativo, se recibió %s", discount.Value))
		}
	case entity.DiscountNone, "":
	default:
		errs = append(errs, fmt.Errorf("discount_type desconocido %q", discount.Kind))
	}
	for _, r := range []struct {
		name string
		rate decimal.Decimal
	}{{"cgst_rate", rates.CGST}, {"sgst_rate", rates.SGST}, {"igst_rate", rates.IGST}} {
		if r.rate.IsNegative() {
			errs = append(errs, fmt.Errorf("%s no puede ser negativa, se recibió %s", r.name, r.rate))
		}
	}
	if shipping.IsNegative() {
		errs = append(errs, fmt.Errorf("shipping_charges no puede ser negativo, se recibió %s", shipping))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrInvalidInput}, errs...)...)
	}
	return nil
}
