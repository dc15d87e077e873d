// Package validation contains the field validators used by the usuarios and
// tareas endpoints. Every validator is a pure function: it receives the raw
// input and returns an empty string when the value is acceptable, or a
// client-facing reason (in Spanish, matching the API contract) when it is not.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	NombreMin   = 2
	NombreMax   = 50
	PasswordMin = 6
	PasswordMax = 128
)

// emailRe accepts local@domain.tld with a TLD of at least two letters.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidarNombre checks a person's name: 2-50 runes of letters (accents
// included), spaces, '.', '-' and '\''.
func ValidarNombre(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "El nombre es requerido"
	}
	n := utf8.RuneCountInString(s)
	if n < NombreMin || n > NombreMax {
		return "El nombre debe tener entre 2 y 50 caracteres"
	}
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '.' || r == '-' || r == '\'' {
			continue
		}
		return "El nombre solo puede contener letras, espacios, puntos, guiones y apóstrofes"
	}
	return ""
}

// ValidarEmail checks the address format. Callers are expected to have
// already trimmed and lower-cased the value.
func ValidarEmail(s string) string {
	if strings.TrimSpace(s) == "" {
		return "El email es requerido"
	}
	if !emailRe.MatchString(s) {
		return "El formato del email no es válido"
	}
	return ""
}

// ValidarPassword enforces length bounds and requires at least one letter
// and one digit.
func ValidarPassword(s string) string {
	if s == "" {
		return "La contraseña es requerida"
	}
	if len(s) < PasswordMin {
		return "La contraseña debe tener al menos 6 caracteres"
	}
	if len(s) > PasswordMax {
		return "La contraseña no puede superar los 128 caracteres"
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "La contraseña debe contener al menos una letra y un número"
	}
	return ""
}

// ValidarDescripcion rejects descriptions that are empty after trimming.
func ValidarDescripcion(s string) string {
	if strings.TrimSpace(s) == "" {
		return "La descripcion es requerida"
	}
	return ""
}
