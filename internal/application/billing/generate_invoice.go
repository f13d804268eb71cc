package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/pkg/gstin"
)

// GenerateInvoiceConfig parámetros del caso de uso provenientes de la configuración.
type GenerateInvoiceConfig struct {
	BrandName    string
	Signatory    string
	StrictGSTIN  bool
	KeepFiles    bool
	DefaultRates gst.Rates
}

// GeneratedInvoice resultado listo para enviar al cliente.
type GeneratedInvoice struct {
	Filename string
	Content  []byte
	Totals   entity.InvoiceTotals
}

// GenerateInvoiceUseCase valida la petición, calcula totales, compone y renderiza la factura.
// No guarda estado por petición: puede compartirse entre goroutines.
type GenerateInvoiceUseCase struct {
	renderer DocumentRenderer
	logos    LogoProvider
	store    InvoiceStore
	cfg      GenerateInvoiceConfig
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewGenerateInvoiceUseCase construye el caso de uso. logos y store pueden ser nil:
// sin logo y sin paso por disco respectivamente.
func NewGenerateInvoiceUseCase(
	renderer DocumentRenderer,
	logos LogoProvider,
	store InvoiceStore,
	cfg GenerateInvoiceConfig,
	log zerolog.Logger,
) *GenerateInvoiceUseCase {
	if r := cfg.DefaultRates; r.CGST.IsZero() && r.SGST.IsZero() && r.IGST.IsZero() {
		cfg.DefaultRates = gst.DefaultRates()
	}
	return &GenerateInvoiceUseCase{
		renderer: renderer,
		logos:    logos,
		store:    store,
		cfg:      cfg,
		log:      log.With().Str("component", "generate_invoice").Logger(),
		validate: newValidator(),
		now:      time.Now,
	}
}

// Generate ejecuta el flujo completo para una petición.
//
// Retorna:
//   - domain.ErrInvalidInput  si faltan campos o los importes no son coherentes.
//   - domain.ErrRender        si el renderizador falla.
//   - domain.ErrStorage       si falla la escritura/lectura del PDF temporal.
func (uc *GenerateInvoiceUseCase) Generate(ctx context.Context, req dto.GenerateInvoiceRequest) (*GeneratedInvoice, error) {
	inv, totals, err := uc.prepare(req)
	if err != nil {
		return nil, err
	}

	// ── 3. Composición ───────────────────────────────────────────────────────
	composer := NewInvoiceComposer(uc.renderer, uc.logos, ComposerOptions{
		BrandName: uc.cfg.BrandName,
		Signatory: uc.cfg.Signatory,
		Now:       uc.now,
		Logger:    uc.log,
	})
	if err := composer.AddHeaderAndInvoiceDetails(ctx, inv.Seller, inv.Number, inv.Date, inv.PONumber, inv.Agreement); err != nil {
		return nil, err
	}
	if err := composer.AddPartyDetails(inv.Seller, inv.Buyer); err != nil {
		return nil, err
	}
	if err := composer.AddItems(inv.Items); err != nil {
		return nil, err
	}
	if err := composer.AddTotals(totals); err != nil {
		return nil, err
	}
	content, err := composer.Render(ctx)
	if err != nil {
		return nil, err
	}

	// ── 4. Archivo temporal ──────────────────────────────────────────────────
	filename := SafeFilename(inv.Number)
	if uc.store != nil {
		if content, err = uc.roundTrip(ctx, filename, content); err != nil {
			return nil, err
		}
	}

	uc.log.Info().
		Str("invoice_number", inv.Number).
		Int("items", len(inv.Items)).
		Str("grand_total", totals.GrandTotal.StringFixed(2)).
		Int("bytes", len(content)).
		Msg("factura generada")

	return &GeneratedInvoice{Filename: filename, Content: content, Totals: totals}, nil
}

// Totals valida la petición y calcula los totales sin componer el PDF.
func (uc *GenerateInvoiceUseCase) Totals(_ context.Context, req dto.GenerateInvoiceRequest) (entity.InvoiceTotals, error) {
	_, totals, err := uc.prepare(req)
	return totals, err
}

// prepare cubre validación (paso 1) y totales (paso 2).
func (uc *GenerateInvoiceUseCase) prepare(req dto.GenerateInvoiceRequest) (entity.Invoice, entity.InvoiceTotals, error) {
	// ── 1. Validación ────────────────────────────────────────────────────────
	if err := uc.validateRequest(&req); err != nil {
		return entity.Invoice{}, entity.InvoiceTotals{}, err
	}
	inv := uc.toInvoice(req)
	if err := uc.checkGSTIN("company_info", inv.Seller); err != nil {
		return entity.Invoice{}, entity.InvoiceTotals{}, err
	}
	if err := uc.checkGSTIN("buyer_info", inv.Buyer); err != nil {
		return entity.Invoice{}, entity.InvoiceTotals{}, err
	}

	// ── 2. Totales ───────────────────────────────────────────────────────────
	totals, err := gst.ComputeTotals(inv.Items, inv.Discount, inv.Seller.State, inv.Buyer.State, uc.rates(req), inv.Shipping)
	if err != nil {
		return entity.Invoice{}, entity.InvoiceTotals{}, err
	}
	if totals.GrandTotal.IsNegative() {
		return entity.Invoice{}, entity.InvoiceTotals{}, fmt.Errorf("%w: el total de la factura es negativo", domain.ErrInvalidInput)
	}
	return inv, totals, nil
}

// roundTrip escribe el PDF, lo relee y lo borra salvo que KeepFiles esté activo.
func (uc *GenerateInvoiceUseCase) roundTrip(ctx context.Context, filename string, content []byte) ([]byte, error) {
	path, err := uc.store.Save(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("%w: guardar %s: %w", domain.ErrStorage, filename, err)
	}
	out, err := uc.store.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %w", domain.ErrStorage, path, err)
	}
	if uc.cfg.KeepFiles {
		return out, nil
	}
	if err := uc.store.Remove(ctx, path); err != nil {
		// El PDF ya está en memoria; un archivo huérfano no invalida la respuesta.
		uc.log.Warn().Err(err).Str("path", path).Msg("no se pudo borrar el PDF temporal")
	}
	return out, nil
}

func (uc *GenerateInvoiceUseCase) toInvoice(req dto.GenerateInvoiceRequest) entity.Invoice {
	items := make([]entity.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entity.LineItem{
			Description: strings.TrimSpace(it.Description),
			HSNCode:     strings.TrimSpace(it.HSNCode.String()),
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	kind := entity.DiscountKind(strings.TrimSpace(req.DiscountType))
	if kind == "" {
		kind = entity.DiscountNone
	}
	return entity.Invoice{
		Number:    strings.TrimSpace(req.InvoiceNumber.String()),
		Date:      strings.TrimSpace(req.InvoiceDate),
		PONumber:  strings.TrimSpace(req.PONumber.String()),
		Agreement: strings.TrimSpace(req.Agreement),
		Seller:    toParty(req.CompanyInfo),
		Buyer:     toParty(req.BuyerInfo),
		Items:     items,
		Discount:  entity.DiscountSpec{Kind: kind, Value: orZero(req.DiscountValue)},
		Shipping:  orZero(req.ShippingCharges),
	}
}

func toParty(p *dto.PartyRequest) entity.Party {
	return entity.Party{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		City:    strings.TrimSpace(p.City),
		State:   strings.TrimSpace(p.State),
		Pincode: strings.TrimSpace(p.Pincode.String()),
		GSTIN:   gstin.Normalize(p.GSTIN),
		Email:   strings.TrimSpace(p.Email),
	}
}

func (uc *GenerateInvoiceUseCase) rates(req dto.GenerateInvoiceRequest) gst.Rates {
	r := uc.cfg.DefaultRates
	if req.CGSTRate.Valid {
		r.CGST = req.CGSTRate.Decimal
	}
	if req.SGSTRate.Valid {
		r.SGST = req.SGSTRate.Decimal
	}
	if req.IGSTRate.Valid {
		r.IGST = req.IGSTRate.Decimal
	}
	return r
}

// checkGSTIN valida el GSTIN de una parte. En modo estricto un GSTIN mal formado es un error
// de entrada; si no, solo se registra. También avisa si el estado del GSTIN no coincide
// con el estado declarado.
func (uc *GenerateInvoiceUseCase) checkGSTIN(field string, p entity.Party) error {
	if p.GSTIN == "" {
		return nil
	}
	if err := gstin.Validate(p.GSTIN); err != nil {
		if uc.cfg.StrictGSTIN {
			return errors.Join(domain.ErrInvalidInput, fmt.Errorf("%s.gstin: %w", field, err))
		}
		uc.log.Warn().Err(err).Str("field", field).Str("gstin", p.GSTIN).Msg("GSTIN inválido, se continúa")
		return nil
	}
	if name, ok := gstin.StateName(gstin.StateCode(p.GSTIN)); ok && !gst.SameState(name, p.State) {
		uc.log.Warn().
			Str("field", field).
			Str("gstin_state", name).
			Str("state", p.State).
			Msg("el estado del GSTIN no coincide con el declarado")
	}
	return nil
}

// SafeFilename nombre de descarga: Invoice_<número> con espacios y barras reemplazados por "_".
func SafeFilename(number string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(number))
	return "Invoice_" + safe + ".pdf"
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}
