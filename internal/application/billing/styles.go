package billing

import "github.com/jhoicas/gst-invoice-api/internal/domain/document"

// ── Paleta y tipografía de la factura ─────────────────────────────────────────

var (
	colorHeading     = document.Hex("#34495E")
	colorLabel       = document.Hex("#2C3E50")
	colorItemsHeader = document.Hex("#A23034")
	colorItemsBody   = document.Hex("#F9F9F9")
	colorBar         = document.Hex("#B02415")
	colorFooterText  = document.Hex("#666666")
	colorWhite       = document.Hex("#F5F5F5")
)

var (
	fontHeading      = document.Font{Size: 12, Bold: true, Color: &colorHeading}
	fontNormal       = document.Font{Size: 10}
	fontSmall        = document.Font{Size: 9}
	fontTableHeader  = document.Font{Size: 10, Bold: true, Color: &colorWhite}
	fontInvoiceLabel = document.Font{Size: 9, Bold: true, Color: &colorLabel}
	fontInvoiceValue = document.Font{Size: 11, Bold: true, Color: &colorLabel}
	fontGrandTotal   = document.Font{Size: 12, Bold: true}
	fontFooter       = document.Font{Size: 8, Color: &colorFooterText}
)

// Espacios verticales (mm).
const (
	gapSmall   = 4.0
	gapMedium  = 5.0
	gapHeader  = 6.0
	gapParties = 8.0
	gapTotals  = 10.0

	logoSize  = 10.0
	barHeight = 4.0
)

func line(value string, font document.Font) document.Text {
	return document.Text{Value: value, Font: font}
}

func blank() document.Text {
	return document.Text{Font: fontSmall}
}
