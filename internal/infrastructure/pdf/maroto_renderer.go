// Package pdf renderiza el documento neutro de la factura con Maroto v2.
//
// Cada bloque se traduce a filas de la rejilla de 12 columnas de Maroto:
//
//	TextBlock    → fila con una columna de 12
//	TableBlock   → una fila por Row, columnas con fondo y borde por celda
//	ImageBlock   → fila con la imagen centrada (o alineada) dentro de su alto
//	SpacerBlock  → fila vacía
//	PagePainter  → filas registradas como cabecera / pie de cada página
//
// Maroto no calcula el alto de una fila a partir de varios textos apilados, así que
// el alto y el desplazamiento vertical de cada línea se estiman aquí.
package pdf

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gst-invoice-api/internal/domain/document"
)

// ── Página ────────────────────────────────────────────────────────────────────

const (
	pageWidth    = 210.0 // A4, mm
	marginLeft   = 14.0
	marginRight  = 14.0
	marginTop    = 25.0
	marginBottom = 18.0
	contentWidth = pageWidth - marginLeft - marginRight

	defaultFontSize = 9.0
	ptToMM          = 0.3528
	lineSpacing     = 1.25
	avgCharWidth    = 0.5 // fracción del em para Helvetica
	gridColumns     = 12
)

var colorGrid = &props.Color{Red: 128, Green: 128, Blue: 128}

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa billing.DocumentRenderer con Maroto v2. No guarda estado
// entre llamadas; cada Render crea su propia instancia de Maroto.
type MarotoRenderer struct {
	log zerolog.Logger
}

// NewMarotoRenderer construye el renderizador.
func NewMarotoRenderer(log zerolog.Logger) *MarotoRenderer {
	return &MarotoRenderer{log: log.With().Str("component", "pdf_renderer").Logger()}
}

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoRenderer) Render(ctx context.Context, doc document.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(marginLeft).WithRightMargin(marginRight).
		WithTopMargin(marginTop).WithBottomMargin(marginBottom).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: defaultFontSize})
	if doc.Title != "" {
		builder = builder.WithTitle(doc.Title, true)
	}
	if doc.Author != "" {
		builder = builder.WithAuthor(doc.Author, true)
	}
	m := maroto.New(builder.Build())

	if err := registerPainters(m, doc.Painters); err != nil {
		return nil, err
	}

	for i, b := range doc.Blocks {
		rows, err := blockRows(b)
		if err != nil {
			return nil, fmt.Errorf("pdf: bloque %d: %w", i, err)
		}
		m.AddRows(rows...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	pdf := out.GetBytes()
	r.log.Debug().Int("blocks", len(doc.Blocks)).Int("bytes", len(pdf)).Msg("pdf generado")
	return pdf, nil
}

// ── Pintores de página ────────────────────────────────────────────────────────

func registerPainters(m core.Maroto, painters []document.PagePainter) error {
	var header, footer []core.Row
	for _, p := range painters {
		bar := row.New(p.BarHeight).Add(col.New(gridColumns)).WithStyle(&props.Cell{BackgroundColor: toColor(p.BarColor)})
		switch p.Region {
		case document.RegionHeader:
			header = append(header, bar)
			if p.Text != nil {
				header = append(header, textRow(*p.Text))
			}
			header = append(header, row.New(4))
		case document.RegionFooter:
			footer = append(footer, row.New(2), bar)
			if p.Text != nil {
				footer = append(footer, textRow(*p.Text))
			}
		default:
			return fmt.Errorf("pdf: región de página desconocida %q", p.Region)
		}
	}
	if len(header) > 0 {
		if err := m.RegisterHeader(header...); err != nil {
			return fmt.Errorf("pdf: registrar cabecera: %w", err)
		}
	}
	if len(footer) > 0 {
		if err := m.RegisterFooter(footer...); err != nil {
			return fmt.Errorf("pdf: registrar pie: %w", err)
		}
	}
	return nil
}

// ── Bloques ───────────────────────────────────────────────────────────────────

func blockRows(b document.Block) ([]core.Row, error) {
	switch v := b.(type) {
	case document.TextBlock:
		return []core.Row{textRow(v.Text)}, nil
	case document.SpacerBlock:
		return []core.Row{row.New(v.Height)}, nil
	case document.ImageBlock:
		r, err := imageRow(v)
		if err != nil {
			return nil, err
		}
		return []core.Row{r}, nil
	case document.TableBlock:
		return tableRows(v)
	default:
		return nil, fmt.Errorf("tipo de bloque no soportado %T", b)
	}
}

func textRow(t document.Text) core.Row {
	comps, h := cellComponents(document.Cell{Lines: []document.Text{t}}, contentWidth, 0)
	return row.New(h).Add(col.New(gridColumns).Add(comps...))
}

func imageRow(img document.ImageBlock) (core.Row, error) {
	ext, err := imageExtension(img.Extension)
	if err != nil {
		return nil, err
	}
	h := img.Height
	if h <= 0 {
		h = img.Width
	}
	if h <= 0 {
		return nil, fmt.Errorf("imagen sin tamaño")
	}
	pic := image.NewFromBytes(img.Data, ext, props.Rect{Center: true, Percent: 100})

	// La imagen se escala al alto de la fila; la columna que la contiene define la posición.
	switch img.Align {
	case document.AlignLeft:
		return row.New(h).Add(col.New(1).Add(pic), col.New(gridColumns-1)), nil
	case document.AlignRight:
		return row.New(h).Add(col.New(gridColumns-1), col.New(1).Add(pic)), nil
	default:
		return row.New(h).Add(col.New(gridColumns).Add(pic)), nil
	}
}

func imageExtension(s string) (extension.Type, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return extension.Png, nil
	case "jpg":
		return extension.Jpg, nil
	case "jpeg":
		return extension.Jpeg, nil
	default:
		return "", fmt.Errorf("formato de imagen no soportado %q", s)
	}
}

func tableRows(t document.TableBlock) ([]core.Row, error) {
	total := 0
	for _, w := range t.Widths {
		if w <= 0 {
			return nil, fmt.Errorf("ancho de columna inválido %d", w)
		}
		total += w
	}
	if total > gridColumns {
		return nil, fmt.Errorf("los anchos suman %d, máximo %d", total, gridColumns)
	}

	rows := make([]core.Row, 0, len(t.Rows))
	for i, tr := range t.Rows {
		if len(tr.Cells) > len(t.Widths) {
			return nil, fmt.Errorf("fila %d: %d celdas para %d columnas", i, len(tr.Cells), len(t.Widths))
		}

		cols := make([]core.Col, 0, len(t.Widths))
		height := tr.MinHeight
		for j, w := range t.Widths {
			var cell document.Cell
			if j < len(tr.Cells) {
				cell = tr.Cells[j]
			}
			width := contentWidth * float64(w) / gridColumns
			comps, h := cellComponents(cell, width, t.Padding)
			height = math.Max(height, h)

			c := col.New(w).Add(comps...)
			if style := cellStyle(cell, tr, t.Grid); style != nil {
				c = c.WithStyle(style)
			}
			cols = append(cols, c)
		}
		rows = append(rows, row.New(height).Add(cols...))
	}
	return rows, nil
}

func cellStyle(cell document.Cell, tr document.Row, grid bool) *props.Cell {
	bg := cell.Background
	if bg == nil {
		bg = tr.Background
	}
	b := cell.Border
	if grid {
		b = document.BorderFull
	}
	if bg == nil && b == document.BorderNone {
		return nil
	}

	style := &props.Cell{}
	if bg != nil {
		style.BackgroundColor = toColor(*bg)
	}
	if b != document.BorderNone {
		style.BorderType = borderType(b)
		style.BorderColor = colorGrid
		style.BorderThickness = 0.3
		if b == document.BorderTop && !grid {
			// Regla sobre el total: más gruesa y negra.
			style.BorderColor = &props.Color{}
			style.BorderThickness = 0.6
		}
	}
	return style
}

func borderType(b document.Border) border.Type {
	switch b {
	case document.BorderTop:
		return border.Top
	case document.BorderBottom:
		return border.Bottom
	case document.BorderFull:
		return border.Full
	default:
		return border.None
	}
}

// cellComponents apila las líneas de la celda y devuelve los componentes y el alto
// estimado (mm) que ocupan, incluido el relleno.
func cellComponents(cell document.Cell, width, padding float64) ([]core.Component, float64) {
	top := padding
	inner := math.Max(width-2*padding, 1)
	comps := make([]core.Component, 0, len(cell.Lines))
	for _, l := range cell.Lines {
		size := fontSize(l.Font)
		a := l.Align
		if a == "" {
			a = cell.Align
		}
		if l.Value != "" {
			comps = append(comps, text.New(l.Value, textProps(l.Font, a, top, padding)))
		}
		top += float64(wrappedLines(l.Value, size, inner)) * lineHeight(size)
	}
	if top == padding {
		top += lineHeight(defaultFontSize)
	}
	return comps, top + padding
}

func textProps(f document.Font, a document.Align, top, padding float64) props.Text {
	p := props.Text{
		Top:   top,
		Left:  padding,
		Right: padding,
		Size:  fontSize(f),
		Align: toAlign(a),
		Style: fontstyle.Normal,
	}
	if f.Bold {
		p.Style = fontstyle.Bold
	}
	if f.Color != nil {
		p.Color = toColor(*f.Color)
	}
	return p
}

func fontSize(f document.Font) float64 {
	if f.Size > 0 {
		return f.Size
	}
	return defaultFontSize
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

// wrappedLines estima cuántas líneas ocupa s en un ancho dado con un ancho medio de carácter.
func wrappedLines(s string, size, width float64) int {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 1
	}
	perLine := width / (size * ptToMM * avgCharWidth)
	if perLine < 1 {
		perLine = 1
	}
	return int(math.Ceil(float64(n) / perLine))
}

func toAlign(a document.Align) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func toColor(c document.Color) *props.Color {
	return &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
}
