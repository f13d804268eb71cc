package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

// InvoiceGenerator caso de uso que consume el handler (billing.GenerateInvoiceUseCase).
type InvoiceGenerator interface {
	Generate(ctx context.Context, req dto.GenerateInvoiceRequest) (*billing.GeneratedInvoice, error)
	Totals(ctx context.Context, req dto.GenerateInvoiceRequest) (entity.InvoiceTotals, error)
}

// InvoiceHandler maneja la generación de facturas (público).
type InvoiceHandler struct {
	uc  InvoiceGenerator
	log zerolog.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc InvoiceGenerator, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log.With().Str("component", "invoice_handler").Logger()}
}

// Generate genera el PDF y lo devuelve como adjunto.
// POST /api/generate-invoice
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set("X-Invoice-Total", out.Totals.GrandTotal.StringFixed(2))
	return c.Status(fiber.StatusOK).Send(out.Content)
}

// Totals calcula los totales sin generar el PDF.
// POST /api/invoice-totals
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
	}
	totals, err := h.uc.Totals(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	words, err := gst.AmountToWords(totals.GrandTotal)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.InvoiceTotalsResponse{
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Taxable:        totals.Taxable,
		CGSTRate:       totals.Tax.CGSTRate,
		CGSTAmount:     totals.Tax.CGSTAmount,
		SGSTRate:       totals.Tax.SGSTRate,
		SGSTAmount:     totals.Tax.SGSTAmount,
		IGSTRate:       totals.Tax.IGSTRate,
		IGSTAmount:     totals.Tax.IGSTAmount,
		Shipping:       totals.Shipping,
		GrandTotal:     totals.GrandTotal,
		AmountInWords:  words,
	})
}

func (h *InvoiceHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	case errors.Is(err, domain.ErrRender):
		h.log.Error().Err(err).Msg("fallo al renderizar la factura")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER", Message: "no se pudo generar el PDF"})
	default:
		h.log.Error().Err(err).Msg("fallo al generar la factura")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// validationMessage quita el prefijo genérico y une los fallos por campo con "; ".
func validationMessage(err error) string {
	prefix := domain.ErrInvalidInput.Error()
	var parts []string
	for _, l := range strings.Split(err.Error(), "\n") {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), prefix+":"))
		if l == "" || l == prefix {
			continue
		}
		parts = append(parts, l)
	}
	if len(parts) == 0 {
		return "datos inválidos"
	}
	return strings.Join(parts, "; ")
}
