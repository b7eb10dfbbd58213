package jwt

import (
	"fmt"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// PeekIPAddress decodifica el claim IPAddress SIN verificar la firma.
//
// Es un pre-filtro barato que corre antes de la validación completa: el
// valor leído acá NO es confiable por sí solo y jamás debe usarse para
// autorizar nada. La etapa Parse (firma + exp) sigue siendo obligatoria
// e independiente río abajo.
func PeekIPAddress(raw string) (string, error) {
	claims := jwtv5.MapClaims{}
	parser := jwtv5.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return ClaimString(claims, ClaimIPAddress), nil
}
