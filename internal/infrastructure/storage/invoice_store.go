package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/gst-invoice-api/internal/domain"
)

// FileInvoiceStore escribe los PDF generados en un directorio. Cada archivo lleva un sufijo
// uuid, de modo que dos peticiones con el mismo número de factura no colisionan.
type FileInvoiceStore struct {
	fs  afero.Fs
	dir string
}

// NewFileInvoiceStore crea el directorio si no existe.
func NewFileInvoiceStore(fsys afero.Fs, dir string) (*FileInvoiceStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: directorio de salida vacío", domain.ErrStorage)
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: crear %s: %w", domain.ErrStorage, dir, err)
	}
	return &FileInvoiceStore{fs: fsys, dir: dir}, nil
}

// Save escribe content como <base>_<uuid>.pdf y devuelve la ruta.
func (s *FileInvoiceStore) Save(_ context.Context, name string, content []byte) (string, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "invoice"
	}
	path := filepath.Join(s.dir, base+"_"+uuid.NewString()+".pdf")
	if err := afero.WriteFile(s.fs, path, content, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", path, err)
	}
	return path, nil
}

// Read lee un archivo previamente guardado.
func (s *FileInvoiceStore) Read(_ context.Context, path string) ([]byte, error) {
	if err := s.owns(path); err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", path, err)
	}
	return b, nil
}

// Remove borra un archivo previamente guardado.
func (s *FileInvoiceStore) Remove(_ context.Context, path string) error {
	if err := s.owns(path); err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("storage: borrar %s: %w", path, err)
	}
	return nil
}

// owns rechaza rutas fuera del directorio de salida.
func (s *FileInvoiceStore) owns(path string) error {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("storage: %s está fuera de %s", path, s.dir)
	}
	return nil
}
