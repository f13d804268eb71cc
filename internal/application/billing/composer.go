package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/document"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02/01/2006"

	disclaimer = "THIS IS A COMPUTER GENERATED INVOICE THUS SIGNATURE MAY NOT BE REQUIRED"
)

// ComposerOptions parámetros de presentación que no vienen en la petición.
type ComposerOptions struct {
	BrandName string // titular del copyright en el pie; vacío = nombre del emisor
	Signatory string // texto tras "FOR"; vacío = nombre del emisor en mayúsculas
	Now       func() time.Time
	Logger    zerolog.Logger
}

type composerState int

const (
	stateBuilding composerState = iota
	stateRendered
)

// InvoiceComposer arma la factura como lista de bloques neutros y la entrega una única vez
// al renderizador. Vive lo que dura una petición; no es seguro para uso concurrente.
type InvoiceComposer struct {
	renderer DocumentRenderer
	logos    LogoProvider
	opts     ComposerOptions
	log      zerolog.Logger

	doc     document.Document
	state   composerState
	company string
}

// NewInvoiceComposer construye un compositor vacío en estado de construcción.
// logos puede ser nil: la factura sale sin logo.
func NewInvoiceComposer(renderer DocumentRenderer, logos LogoProvider, opts ComposerOptions) *InvoiceComposer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &InvoiceComposer{
		renderer: renderer,
		logos:    logos,
		opts:     opts,
		log:      opts.Logger.With().Str("component", "invoice_composer").Logger(),
		doc:      document.Document{Title: "Invoice"},
	}
}

// Document devuelve una copia del documento acumulado hasta ahora.
func (c *InvoiceComposer) Document() document.Document {
	return c.doc.Clone()
}

func (c *InvoiceComposer) ensureBuilding() error {
	if c.state != stateBuilding {
		return fmt.Errorf("%w: la factura ya fue renderizada", domain.ErrInvalidState)
	}
	return nil
}

// AddHeaderAndInvoiceDetails añade el logo (si existe), la identidad del emisor a la izquierda
// y los datos de la factura a la derecha.
func (c *InvoiceComposer) AddHeaderAndInvoiceDetails(
	ctx context.Context,
	company entity.Party,
	number, date, poNumber, agreement string,
) error {
	if err := c.ensureBuilding(); err != nil {
		return err
	}
	c.company = company.Name
	c.doc.Author = company.Name
	c.doc.Title = "Invoice " + number

	if logo := c.loadLogo(ctx); logo != nil {
		c.doc.Append(
			document.ImageBlock{
				Data:      logo.Data,
				Extension: logo.Extension,
				Width:     logoSize,
				Height:    logoSize,
				Align:     document.AlignCenter,
			},
			document.SpacerBlock{Height: gapSmall},
		)
	}

	left := []document.Text{line(company.Name, fontHeading)}
	if company.Address != "" {
		left = append(left, line(company.Address, fontSmall))
	}
	left = append(left,
		line(cityLine(company, "."), fontSmall),
		line("GST NO: "+company.GSTIN, fontSmall),
	)
	if company.Email != "" {
		left = append(left, line(company.Email, fontSmall))
	}

	right := []document.Text{
		line(FormatDate(date), fontNormal),
		blank(),
		line("INVOICE "+number, fontInvoiceValue),
	}
	if poNumber != "" {
		right = append(right, blank(), line("PO NUMBER", fontInvoiceLabel), line(poNumber, fontNormal))
	}
	if agreement != "" {
		right = append(right, blank(), line("AGREEMENT", fontInvoiceLabel), line(agreement, fontNormal))
	}

	c.doc.Append(
		document.TableBlock{
			Widths: []int{6, 6},
			Rows: []document.Row{{Cells: []document.Cell{
				{Lines: left, Align: document.AlignLeft},
				{Lines: right, Align: document.AlignRight},
			}}},
		},
		document.SpacerBlock{Height: gapHeader},
	)
	return nil
}

func (c *InvoiceComposer) loadLogo(ctx context.Context) *Logo {
	if c.logos == nil {
		return nil
	}
	logo, err := c.logos.Logo(ctx)
	switch {
	case errors.Is(err, domain.ErrResourceMissing):
		c.log.Debug().Err(err).Msg("factura sin logo")
		return nil
	case err != nil:
		c.log.Warn().Err(err).Msg("no se pudo cargar el logo, se omite")
		return nil
	case logo == nil || len(logo.Data) == 0:
		return nil
	}
	return logo
}

// AddPartyDetails añade el recuadro BILL TO (emisor) / SHIP TO (receptor).
func (c *InvoiceComposer) AddPartyDetails(seller, buyer entity.Party) error {
	if err := c.ensureBuilding(); err != nil {
		return err
	}
	partyCell := func(p entity.Party) document.Cell {
		return document.Cell{Lines: []document.Text{
			line(p.Name, fontNormal),
			line(p.Address, fontNormal),
			line(cityLine(p, " -"), fontNormal),
		}}
	}
	gstCell := func(p entity.Party, fallback string) document.Cell {
		return document.Cell{Lines: []document.Text{line("GST NUMBER: "+p.GSTINOr(fallback), fontNormal)}}
	}

	c.doc.Append(
		document.TableBlock{
			Widths:  []int{6, 6},
			Grid:    true,
			Padding: 3,
			Rows: []document.Row{
				{Cells: []document.Cell{
					{Lines: []document.Text{line("BILL TO", fontHeading)}, Border: document.BorderBottom},
					{Lines: []document.Text{line("SHIP TO", fontHeading)}, Border: document.BorderBottom},
				}},
				{Cells: []document.Cell{partyCell(seller), partyCell(buyer)}},
				{Cells: []document.Cell{gstCell(seller, ""), gstCell(buyer, "N/A")}},
			},
		},
		document.SpacerBlock{Height: gapParties},
	)
	return nil
}

// AddItems añade la tabla de productos. Numeración desde 1, importes con 2 decimales.
func (c *InvoiceComposer) AddItems(items []entity.LineItem) error {
	if err := c.ensureBuilding(); err != nil {
		return err
	}
	header := document.Row{Background: &colorItemsHeader}
	for _, h := range []string{"S.No", "Name of Product", "HSN/SAC", "Qty", "Rate", "Amount"} {
		header.Cells = append(header.Cells, document.Cell{
			Lines: []document.Text{line(h, fontTableHeader)},
			Align: document.AlignCenter,
		})
	}

	rows := make([]document.Row, 0, len(items)+1)
	rows = append(rows, header)
	for i, it := range items {
		rows = append(rows, document.Row{
			Background: &colorItemsBody,
			Cells: []document.Cell{
				centered(strconv.Itoa(i + 1)),
				{Lines: []document.Text{line(it.Description, fontSmall)}, Align: document.AlignLeft},
				centered(it.HSNCode),
				centered(strconv.FormatInt(it.Quantity, 10)),
				centered(money(it.Rate)),
				centered(money(it.Amount())),
			},
		})
	}

	c.doc.Append(
		document.TableBlock{
			Widths:  []int{1, 4, 2, 1, 2, 2},
			Rows:    rows,
			Grid:    true,
			Padding: 2,
		},
		document.SpacerBlock{Height: gapMedium},
	)
	return nil
}

// AddTotals añade el importe en letras, el desglose de totales y el bloque de firma.
func (c *InvoiceComposer) AddTotals(totals entity.InvoiceTotals) error {
	if err := c.ensureBuilding(); err != nil {
		return err
	}
	words, err := gst.AmountToWords(totals.GrandTotal)
	if err != nil {
		return fmt.Errorf("%w: total en letras: %w", domain.ErrInvalidInput, err)
	}

	type entry struct{ label, value string }
	entries := []entry{{"SUBTOTAL", money(totals.Subtotal)}}
	if totals.DiscountAmount.IsPositive() {
		label := "DISCOUNT"
		if totals.Discount.Kind == entity.DiscountPercentage {
			label = "DISCOUNT (" + percent(totals.Discount.Value) + ")"
		}
		entries = append(entries,
			entry{label, "-" + money(totals.DiscountAmount)},
			entry{"AFTER DISCOUNT", money(totals.Taxable)},
		)
	}
	tax := totals.Tax
	if tax.CGSTRate.IsPositive() {
		entries = append(entries, entry{"CGST (" + percent(tax.CGSTRate) + ")", money(tax.CGSTAmount)})
	}
	if tax.SGSTRate.IsPositive() {
		entries = append(entries, entry{"SGST (" + percent(tax.SGSTRate) + ")", money(tax.SGSTAmount)})
	}
	if tax.IGSTRate.IsPositive() {
		entries = append(entries, entry{"IGST (" + percent(tax.IGSTRate) + ")", money(tax.IGSTAmount)})
	}
	entries = append(entries, entry{"SHIPPING/HANDLING", money(totals.Shipping)})

	rows := make([]document.Row, 0, len(entries)+1)
	for i, e := range entries {
		var left document.Cell
		switch i {
		case 0:
			left = document.Cell{Lines: []document.Text{line("TOTAL AMOUNT IN WORDS:", fontNormal)}}
		case 1:
			left = document.Cell{Lines: []document.Text{line(words, fontNormal)}}
		}
		rows = append(rows, document.Row{Cells: []document.Cell{
			left,
			{Lines: []document.Text{line(e.label, fontNormal)}, Align: document.AlignLeft},
			{Lines: []document.Text{line(e.value, fontNormal)}, Align: document.AlignRight},
		}})
	}
	// SUBTOTAL y SHIPPING/HANDLING siempre están: hay al menos dos filas para el texto.
	grand := money(totals.GrandTotal)
	rows = append(rows, document.Row{Cells: []document.Cell{
		{},
		{Lines: []document.Text{line("TOTAL", fontGrandTotal)}, Align: document.AlignLeft, Border: document.BorderTop},
		{Lines: []document.Text{line(grand, fontGrandTotal)}, Align: document.AlignRight, Border: document.BorderTop},
	}})

	c.doc.Append(
		document.TableBlock{Widths: []int{6, 4, 2}, Rows: rows, Padding: 1.5},
		document.SpacerBlock{Height: gapTotals},
		document.TableBlock{
			Widths: []int{6, 6},
			Rows: []document.Row{{Cells: []document.Cell{
				{Lines: []document.Text{line(disclaimer, fontNormal)}, Align: document.AlignLeft},
				{Lines: []document.Text{line("FOR "+c.signatory(), fontNormal)}, Align: document.AlignRight},
			}}},
		},
		document.SpacerBlock{Height: gapMedium},
		document.TextBlock{Text: line("AUTHORIZED SIGNATORY", fontHeading)},
	)
	return nil
}

// Render fija los pintores de página y llama al renderizador una sola vez. El compositor
// queda en estado terminal aunque el renderizado falle.
func (c *InvoiceComposer) Render(ctx context.Context) ([]byte, error) {
	if err := c.ensureBuilding(); err != nil {
		return nil, err
	}
	c.state = stateRendered

	now := c.opts.Now()
	footer := document.Text{
		Value: fmt.Sprintf("© %d %s. All rights reserved. | Invoice Generated on %s",
			now.Year(), c.brand(), now.Format(displayDateLayout)),
		Font:  fontFooter,
		Align: document.AlignCenter,
	}
	c.doc.Painters = []document.PagePainter{
		{Region: document.RegionHeader, BarColor: colorBar, BarHeight: barHeight},
		{Region: document.RegionFooter, BarColor: colorBar, BarHeight: barHeight, Text: &footer},
	}

	out, err := c.renderer.Render(ctx, c.doc.Clone())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	c.log.Debug().Int("blocks", len(c.doc.Blocks)).Int("bytes", len(out)).Msg("factura renderizada")
	return out, nil
}

func (c *InvoiceComposer) signatory() string {
	if s := strings.TrimSpace(c.opts.Signatory); s != "" {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(c.company)
}

func (c *InvoiceComposer) brand() string {
	if b := strings.TrimSpace(c.opts.BrandName); b != "" {
		return b
	}
	return c.company
}

// FormatDate convierte YYYY-MM-DD a DD/MM/YYYY; cualquier otro valor se devuelve tal cual.
func FormatDate(raw string) string {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format(displayDateLayout)
}

// cityLine "ciudad, estado<sep> pincode", omitiendo las partes vacías.
func cityLine(p entity.Party, sep string) string {
	var parts []string
	for _, s := range []string{p.City, p.State} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	out := strings.Join(parts, ", ")
	if p.Pincode != "" {
		if out == "" {
			return p.Pincode
		}
		out += sep + " " + p.Pincode
	}
	return out
}

func centered(s string) document.Cell {
	return document.Cell{Lines: []document.Text{line(s, fontSmall)}, Align: document.AlignCenter}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.String() + "%"
}
