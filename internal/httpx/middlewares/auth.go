package middlewares

import (
	"net/http"
	"strconv"

	"github.com/dropDatabas3/dotcart/internal/httpx"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
)

// RequireAuth valida el token completo (firma, issuer, audience, exp) y
// deja claims, user id y email en el contexto. Sin token o token inválido
// es 401 con envelope JSON. El IP binding ya corrió antes; acá validamos
// lo que el peek no mira.
func RequireAuth(issuer *jwtx.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token.")
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token.")
				return
			}

			userID, err := strconv.ParseInt(jwtx.ClaimString(claims, "sub"), 10, 64)
			if err != nil || userID <= 0 {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token.")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = withUserID(ctx, userID)
			ctx = withEmail(ctx, jwtx.ClaimString(claims, "email"))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
