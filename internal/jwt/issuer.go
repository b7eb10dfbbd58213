package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ClaimIPAddress es el claim que liga el token a la dirección del cliente
// que lo pidió. Lo chequea el guard de IP binding en cada request.
const ClaimIPAddress = "IPAddress"

var (
	ErrEmptySecret  = errors.New("jwt: signing secret is empty")
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Issuer firma session tokens con HMAC-SHA512 sobre un secret compartido
// tomado de configuración. Se construye una sola vez al arranque.
type Issuer struct {
	iss    string
	aud    string
	secret []byte
	ttl    time.Duration
}

// NewIssuer falla rápido si el secret está vacío: es un error fatal de
// configuración, no algo recuperable por request.
func NewIssuer(iss, aud, secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{iss: iss, aud: aud, secret: []byte(secret), ttl: ttl}, nil
}

// Issue emite un token para la identidad verificada, ligado a clientAddr.
// sub = id del usuario (string-encoded), exp = ahora + TTL (default 1h).
func (i *Issuer) Issue(userID int64, email, clientAddr string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.ttl)

	claims := jwtv5.MapClaims{
		"iss":          i.iss,
		"aud":          i.aud,
		"sub":          strconv.FormatInt(userID, 10),
		"email":        email,
		ClaimIPAddress: clientAddr,
		"iat":          now.Unix(),
		"nbf":          now.Unix(),
		"exp":          exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt sign: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, issuer, audience y expiración. Esta es la etapa de
// validación COMPLETA; el peek del guard de IP binding no la reemplaza.
func (i *Issuer) Parse(raw string) (jwtv5.MapClaims, error) {
	claims := jwtv5.MapClaims{}
	_, err := jwtv5.ParseWithClaims(raw, claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	},
		jwtv5.WithIssuer(i.iss),
		jwtv5.WithAudience(i.aud),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}

// ClaimString lee un claim string de un MapClaims, "" si no está.
func ClaimString(claims jwtv5.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
