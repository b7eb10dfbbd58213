package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// NewRecoveryToken genera el token opaco de un solo uso que viaja en los
// links de confirmación de email y reset de password (base64url sin padding).
func NewRecoveryToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Equal compara dos tokens en tiempo constante. Un token almacenado vacío
// nunca matchea (cuenta ya confirmada o token nunca emitido).
func Equal(stored, presented string) bool {
	if stored == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
