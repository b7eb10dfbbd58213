package password

import (
	"strings"
	"unicode"
)

// specialCharacters es el set fijo aceptado como "carácter especial".
const specialCharacters = `!@#$%^&*()-_=+[]{}|;:'",.<>?/`

// Mensajes de violación expuestos al cliente. El orden de evaluación no
// importa para el caller; cualquier subset puede co-ocurrir.
const (
	MsgRequired       = "Password is required."
	MsgTooShort       = "Password must be at least 8 characters long."
	MsgMissingDigit   = "Password must contain at least one digit."
	MsgMissingUpper   = "Password must contain at least one uppercase letter."
	MsgMissingLower   = "Password must contain at least one lowercase letter."
	MsgMissingSpecial = "Password must contain at least one special character."
)

type Policy struct {
	MinLength int
}

var DefaultPolicy = Policy{MinLength: 8}

// Validate evalúa TODAS las reglas (sin cortocircuito) y devuelve la lista
// de violaciones. Lista vacía => password aceptado.
// Password vacío o sólo whitespace devuelve únicamente MsgRequired.
func (p Policy) Validate(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{MsgRequired}
	}

	min := p.MinLength
	if min <= 0 {
		min = 8
	}

	var violations []string
	if len([]rune(s)) < min {
		violations = append(violations, MsgTooShort)
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			hasSpecial = true
		}
	}
	if !hasDigit {
		violations = append(violations, MsgMissingDigit)
	}
	if !hasUpper {
		violations = append(violations, MsgMissingUpper)
	}
	if !hasLower {
		violations = append(violations, MsgMissingLower)
	}
	if !hasSpecial {
		violations = append(violations, MsgMissingSpecial)
	}
	return violations
}
