package billing_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/document"
)

// fakeRenderer registra el documento recibido y devuelve un PDF mínimo.
type fakeRenderer struct {
	calls int
	last  document.Document
	err   error
}

func (r *fakeRenderer) Render(_ context.Context, doc document.Document) ([]byte, error) {
	r.calls++
	r.last = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type fakeLogos struct {
	logo *billing.Logo
	err  error
}

func (f fakeLogos) Logo(context.Context) (*billing.Logo, error) { return f.logo, f.err }

var missingLogo = fakeLogos{err: fmt.Errorf("%w: logo.png", domain.ErrResourceMissing)}

// memStore almacén en memoria que recuerda las operaciones realizadas.
type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saved   []string
	removed []string
	saveErr error
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) Save(_ context.Context, name string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	path := "out/" + strings.TrimSuffix(name, ".pdf") + "_1.pdf"
	s.files[path] = append([]byte(nil), content...)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *memStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[path]
	if !ok {
		return nil, errors.New("no existe")
	}
	return b, nil
}

func (s *memStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.removed = append(s.removed, path)
	return nil
}

// texts aplana todos los textos del documento en orden de aparición.
func texts(doc document.Document) []string {
	var out []string
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case document.TextBlock:
			out = append(out, v.Value)
		case document.TableBlock:
			for _, r := range v.Rows {
				for _, c := range r.Cells {
					for _, l := range c.Lines {
						if l.Value != "" {
							out = append(out, l.Value)
						}
					}
				}
			}
		}
	}
	return out
}

func tables(doc document.Document) []document.TableBlock {
	var out []document.TableBlock
	for _, b := range doc.Blocks {
		if t, ok := b.(document.TableBlock); ok {
			out = append(out, t)
		}
	}
	return out
}
