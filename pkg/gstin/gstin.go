// Package gstin valida el GSTIN (Goods and Services Tax Identification Number) de India:
// 15 caracteres = código de estado (2) + PAN (10) + número de entidad (1) + 'Z' + carácter de control.
package gstin

import (
	"errors"
	"fmt"
	"strings"
)

const (
	length  = 15
	charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ErrInvalid agrupa todos los errores de formato o dígito de control.
var ErrInvalid = errors.New("gstin inválido")

// Normalize elimina espacios y pasa a mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// Validate comprueba longitud, estructura (estado + PAN + entidad + 'Z') y el carácter
// de control módulo 36.
func Validate(raw string) error {
	g := Normalize(raw)
	if len(g) != length {
		return fmt.Errorf("%w: debe tener %d caracteres, se recibieron %d", ErrInvalid, length, len(g))
	}
	if _, ok := StateName(g[:2]); !ok {
		return fmt.Errorf("%w: código de estado desconocido %q", ErrInvalid, g[:2])
	}
	if err := validatePAN(g[2:12]); err != nil {
		return err
	}
	if strings.IndexByte(charset[1:], g[12]) < 0 {
		return fmt.Errorf("%w: número de entidad inválido %q", ErrInvalid, g[12])
	}
	if g[13] != 'Z' {
		return fmt.Errorf("%w: el carácter 14 debe ser 'Z'", ErrInvalid)
	}
	expected, err := CheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("%w: carácter de control inválido: esperado %c, recibido %c", ErrInvalid, expected, g[14])
	}
	return nil
}

// CheckChar calcula el carácter de control para los 14 primeros caracteres.
// Cada carácter se convierte a base 36 y se multiplica por 1 o 2 alternadamente;
// se suman cociente y resto de cada producto entre 36.
func CheckChar(first14 string) (byte, error) {
	g := Normalize(first14)
	if len(g) != length-1 {
		return 0, fmt.Errorf("%w: se requieren 14 caracteres para calcular el control", ErrInvalid)
	}
	var sum int
	for i := 0; i < len(g); i++ {
		v := strings.IndexByte(charset, g[i])
		if v < 0 {
			return 0, fmt.Errorf("%w: carácter no permitido %q", ErrInvalid, g[i])
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return charset[(36-sum%36)%36], nil
}

// StateCode devuelve los dos primeros caracteres (código de estado) de un GSTIN.
func StateCode(raw string) string {
	g := Normalize(raw)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

func validatePAN(pan string) error {
	for i := 0; i < len(pan); i++ {
		c := pan[i]
		isLetter := c >= 'A' && c <= 'Z'
		isDigit := c >= '0' && c <= '9'
		switch {
		case i < 5 || i == 9:
			if !isLetter {
				return fmt.Errorf("%w: PAN mal formado %q", ErrInvalid, pan)
			}
		default:
			if !isDigit {
				return fmt.Errorf("%w: PAN mal formado %q", ErrInvalid, pan)
			}
		}
	}
	return nil
}
