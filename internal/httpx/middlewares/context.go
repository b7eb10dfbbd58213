package middlewares

import (
	"context"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyClaims
	ctxKeyUserID
	ctxKeyEmail
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

// GetRequestID devuelve el request id inyectado por WithRequestID, "" si no hay.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// WithClaims guarda las claims validadas en el contexto.
func WithClaims(ctx context.Context, claims jwtv5.MapClaims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

func GetClaims(ctx context.Context) jwtv5.MapClaims {
	v, _ := ctx.Value(ctxKeyClaims).(jwtv5.MapClaims)
	return v
}

func withUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// GetUserID devuelve el id del usuario autenticado, 0 si no hay.
func GetUserID(ctx context.Context) int64 {
	v, _ := ctx.Value(ctxKeyUserID).(int64)
	return v
}

func withEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKeyEmail, email)
}

// GetEmail devuelve el email del claim del usuario autenticado.
func GetEmail(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyEmail).(string)
	return v
}
