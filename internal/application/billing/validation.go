package billing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
)

// newValidator instancia compartida: validator cachea la metadata de los structs y es
// seguro para uso concurrente.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest aplica las reglas de los tags y las que el validador no expresa
// (importes decimales no negativos). Todos los fallos se devuelven juntos.
func (uc *GenerateInvoiceUseCase) validateRequest(req *dto.GenerateInvoiceRequest) error {
	var errs []error
	if err := uc.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		for _, fe := range verrs {
			errs = append(errs, errors.New(fieldMessage(fe)))
		}
	}

	for i, it := range req.Items {
		if it.Rate.IsNegative() {
			errs = append(errs, fmt.Errorf("items[%d].rate no puede ser negativo", i))
		}
	}
	optional := []struct {
		name  string
		value interface{ IsNegative() bool }
		valid bool
	}{
		{"discount_value", req.DiscountValue.Decimal, req.DiscountValue.Valid},
		{"cgst_rate", req.CGSTRate.Decimal, req.CGSTRate.Valid},
		{"sgst_rate", req.SGSTRate.Decimal, req.SGSTRate.Valid},
		{"igst_rate", req.IGSTRate.Decimal, req.IGSTRate.Valid},
		{"shipping_charges", req.ShippingCharges.Decimal, req.ShippingCharges.Valid},
	}
	for _, o := range optional {
		if o.valid && o.value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s no puede ser negativo", o.name))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{domain.ErrInvalidInput}, errs...)...)
}

// fieldMessage traduce un fallo del validador a un mensaje con la ruta JSON del campo
// (p. ej. "items[0].quantity debe ser mayor que 0").
func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "notblank":
		return field + " es obligatorio"
	case "min":
		return fmt.Sprintf("%s requiere al menos %s elemento(s)", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
