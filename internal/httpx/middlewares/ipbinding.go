package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/dotcart/internal/httpx"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
)

// IPBinding corre una vez por request, ANTES de cualquier autorización,
// para todo request que traiga bearer token. Compara el claim IPAddress
// del token contra la dirección observada del cliente y rechaza 401 si no
// matchean exacto. Un request sin Authorization pasa sin tocar: este
// chequeo nunca bloquea acceso anónimo por sí mismo.
//
// El claim se lee con un decode SIN verificar firma (peek barato); la
// validación completa de firma/expiración ocurre después, en RequireAuth,
// y sigue siendo obligatoria. Un token malformado acá es 401, nunca un
// crash del pipeline.
//
// Tradeoff asumido: un token robado no se puede replayar desde otra red,
// a costa de romper sesiones legítimas detrás de NAT/proxies que cambian
// de dirección.
func IPBinding() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenIP, err := jwtx.PeekIPAddress(raw)
			if err != nil {
				reject(w, "Invalid token")
				return
			}

			observed := httpx.ClientAddress(r)
			if strings.TrimSpace(tokenIP) == "" || tokenIP != observed {
				logger.Named("ipbinding").Warn("token ip mismatch",
					logger.ClientIP(observed),
					logger.String("token_ip", tokenIP),
					logger.Path(r.URL.Path),
				)
				httpx.RecordTokenIPMismatch()
				reject(w, "Token IP mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extrae el token del header Authorization con esquema Bearer,
// "" si no hay.
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}

// reject responde 401 con body de texto plano (sin envelope JSON), tal
// como lo consumen los clientes de este guard.
func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(message))
}
