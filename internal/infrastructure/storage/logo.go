// Package storage adaptadores de archivos sobre afero: el logo del emisor y el
// directorio donde se escribe temporalmente cada PDF.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
)

var logoExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true}

// FileLogoProvider lee el logo desde una ruta fija resuelta al arrancar.
type FileLogoProvider struct {
	fs   afero.Fs
	path string
}

// NewFileLogoProvider construye el proveedor. Una ruta vacía equivale a "sin logo".
func NewFileLogoProvider(fsys afero.Fs, path string) *FileLogoProvider {
	return &FileLogoProvider{fs: fsys, path: strings.TrimSpace(path)}
}

// Logo devuelve el logo o domain.ErrResourceMissing si no hay ruta, el archivo no existe
// o su extensión no es png/jpg/jpeg.
func (p *FileLogoProvider) Logo(_ context.Context) (*billing.Logo, error) {
	if p.path == "" {
		return nil, fmt.Errorf("%w: logo no configurado", domain.ErrResourceMissing)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p.path), "."))
	if !logoExtensions[ext] {
		return nil, fmt.Errorf("%w: formato de logo no soportado %q", domain.ErrResourceMissing, ext)
	}

	data, err := afero.ReadFile(p.fs, p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrResourceMissing, p.path)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer logo %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s está vacío", domain.ErrResourceMissing, p.path)
	}
	return &billing.Logo{Data: data, Extension: ext}, nil
}
