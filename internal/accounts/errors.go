package accounts

import "strings"

// Kind clasifica los fallos del flujo de cuentas para que la capa HTTP
// elija el status sin inspeccionar strings. Reemplaza el uso de
// excepciones-para-control-de-flujo del diseño anterior.
type Kind int

const (
	// KindValidation input inválido (campos en blanco, policy de password).
	KindValidation Kind = iota + 1
	// KindConflict el email ya está registrado.
	KindConflict
	// KindNotFound usuario inexistente o token que no matchea. A propósito
	// no distingue cuál de los dos, para no permitir enumeración.
	KindNotFound
	// KindDenied credenciales rechazadas (login, current password).
	KindDenied
)

type Error struct {
	Kind       Kind
	Msg        string
	Violations []string // sólo KindValidation por policy
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		return strings.Join(e.Violations, " ")
	}
	return e.Msg
}

func errValidation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

func errPolicy(violations []string) *Error {
	return &Error{Kind: KindValidation, Msg: "password policy", Violations: violations}
}

var (
	errEmailExists  = &Error{Kind: KindConflict, Msg: "Email already exists."}
	errUserNotFound = &Error{Kind: KindNotFound, Msg: "User not found."}
	errInvalidCreds = &Error{Kind: KindDenied, Msg: "Invalid credentials."}
)

// KindOf devuelve el Kind si err es un *Error del paquete, 0 si no.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
