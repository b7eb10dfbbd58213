package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// ClientIP crea un campo para la IP del cliente.
func ClientIP(v string) zap.Field {
	return zap.String("client_ip", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// UserID crea un campo para el ID del usuario.
func UserID(v int64) zap.Field {
	return zap.Int64("user_id", v)
}

// Email crea un campo para el email del usuario.
// OJO: nunca loguear password ni hashes; el email sí es aceptable acá.
func Email(v string) zap.Field {
	return zap.String("email", v)
}

// StoreID crea un campo para el ID de la tienda.
func StoreID(v int64) zap.Field {
	return zap.Int64("store_id", v)
}

// String re-exporta zap.String para no importar zap en los call sites.
func String(k, v string) zap.Field { return zap.String(k, v) }

// Int re-exporta zap.Int.
func Int(k string, v int) zap.Field { return zap.Int(k, v) }

// Err crea un campo de error estándar.
func Err(err error) zap.Field { return zap.Error(err) }
