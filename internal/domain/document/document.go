// Package document define la representación intermedia de la factura: una lista ordenada
// de bloques neutros (texto, tabla, imagen, espacio) más los pintores de cabecera y pie
// que el renderizador aplica en cada página. No depende de ningún motor PDF.
package document

// Align alineación horizontal del contenido.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Border borde de una celda.
type Border string

const (
	BorderNone   Border = ""
	BorderFull   Border = "full"
	BorderTop    Border = "top"
	BorderBottom Border = "bottom"
)

// Color RGB.
type Color struct {
	R, G, B uint8
}

// Hex construye un color desde "#RRGGBB". Valores mal formados devuelven negro.
func Hex(s string) Color {
	if len(s) == 7 && s[0] == '#' {
		return Color{R: hexByte(s[1:3]), G: hexByte(s[3:5]), B: hexByte(s[5:7])}
	}
	return Color{}
}

func hexByte(s string) uint8 {
	var v uint8
	for i := 0; i < len(s); i++ {
		c := s[i]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		}
	}
	return v
}

// Font estilo tipográfico de un texto. Size en puntos; cero = tamaño por defecto del renderizador.
type Font struct {
	Size  float64
	Bold  bool
	Color *Color
}

// Block bloque de layout. Conjunto cerrado: TextBlock, TableBlock, ImageBlock, SpacerBlock.
type Block interface {
	isBlock()
}

// Text línea o párrafo con estilo propio.
type Text struct {
	Value string
	Font  Font
	Align Align
}

// TextBlock párrafo suelto a todo el ancho.
type TextBlock struct {
	Text
}

// Cell celda de tabla: varias líneas de texto apiladas.
type Cell struct {
	Lines      []Text
	Align      Align // por defecto de las líneas sin alineación propia
	Background *Color
	Border     Border
}

// Row fila de tabla.
type Row struct {
	Cells      []Cell
	Background *Color  // se aplica a las celdas sin fondo propio
	MinHeight  float64 // mm; cero = calculado por el renderizador
}

// TableBlock tabla con anchos de columna en unidades de una rejilla de 12.
type TableBlock struct {
	Widths  []int
	Rows    []Row
	Grid    bool    // borde completo en todas las celdas
	Padding float64 // mm alrededor del contenido de cada celda
}

// ImageBlock imagen embebida (logo). Width/Height en mm.
type ImageBlock struct {
	Data      []byte
	Extension string // png, jpg, jpeg
	Width     float64
	Height    float64
	Align     Align
}

// SpacerBlock espacio vertical en mm.
type SpacerBlock struct {
	Height float64
}

func (TextBlock) isBlock()   {}
func (TableBlock) isBlock()  {}
func (ImageBlock) isBlock()  {}
func (SpacerBlock) isBlock() {}

// Region zona de la página donde actúa un pintor.
type Region string

const (
	RegionHeader Region = "header"
	RegionFooter Region = "footer"
)

// PagePainter decoración repetida en cada página: una barra de color y, opcionalmente, un texto.
type PagePainter struct {
	Region    Region
	BarColor  Color
	BarHeight float64 // mm
	Text      *Text
}

// Document lista ordenada de bloques (de arriba hacia abajo) más los pintores de página.
type Document struct {
	Title    string
	Author   string
	Blocks   []Block
	Painters []PagePainter
}

// Append añade bloques al final.
func (d *Document) Append(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Clone copia superficial de las listas (los bloques son valores).
func (d Document) Clone() Document {
	out := d
	out.Blocks = append([]Block(nil), d.Blocks...)
	out.Painters = append([]PagePainter(nil), d.Painters...)
	return out
}
