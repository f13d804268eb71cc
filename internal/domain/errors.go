package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrInvalidInput faltan campos obligatorios o los valores no son coherentes.
	// Se detecta antes de componer cualquier bloque del documento.
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrRender el renderizador no pudo producir el documento.
	ErrRender = errors.New("no se pudo generar el documento")
	// ErrResourceMissing recurso opcional ausente (logo); se recupera localmente.
	ErrResourceMissing = errors.New("recurso no disponible")
	// ErrInvalidState operación sobre un documento que ya fue renderizado.
	ErrInvalidState = errors.New("estado inválido del documento")
	// ErrStorage fallo al escribir, leer o borrar el PDF generado.
	ErrStorage = errors.New("error de almacenamiento")
)
