package httpx

import (
	"net"
	"net/http"
	"strings"
)

// UnknownAddress es el sentinel cuando no hay forma de resolver la
// dirección del cliente. El token queda ligado a este literal igual.
const UnknownAddress = "Unknown"

// ClientAddress resuelve la dirección observada del cliente:
//  1. primera entrada (trimmed) de X-Forwarded-For, si está y no es vacía
//  2. peer address del transporte (RemoteAddr sin puerto)
//  3. el literal "Unknown"
//
// La emisión del token y el guard de IP binding usan exactamente esta
// misma preferencia; si divergieran, ningún token matchearía.
func ClientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return UnknownAddress
}
