package entity

import "strings"

// Party identifica a emisor o receptor de la factura. Valor inmutable construido desde la petición.
type Party struct {
	Name    string
	Address string
	City    string
	State   string
	Pincode string
	GSTIN   string // vacío si la parte no está registrada
	Email   string
}

// GSTINOr devuelve el GSTIN o el valor alterno si está vacío.
func (p Party) GSTINOr(fallback string) string {
	if g := strings.TrimSpace(p.GSTIN); g != "" {
		return g
	}
	return fallback
}
