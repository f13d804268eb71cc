package billing

import (
	"context"

	"github.com/jhoicas/gst-invoice-api/internal/domain/document"
)

// DocumentRenderer convierte la lista de bloques en los bytes del PDF.
// Se invoca una sola vez por documento compuesto.
type DocumentRenderer interface {
	Render(ctx context.Context, doc document.Document) ([]byte, error)
}

// Logo imagen del emisor ya cargada.
type Logo struct {
	Data      []byte
	Extension string // png, jpg, jpeg
}

// LogoProvider entrega el logo configurado. Si no existe devuelve domain.ErrResourceMissing
// y la factura se genera sin logo.
type LogoProvider interface {
	Logo(ctx context.Context) (*Logo, error)
}

// InvoiceStore almacenamiento temporal del PDF generado (escritura, lectura, borrado).
type InvoiceStore interface {
	Save(ctx context.Context, name string, content []byte) (path string, err error)
	Read(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}
