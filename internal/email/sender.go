package email

// Sender es la interfaz para enviar emails.
// Implementada por SMTPSender; los tests usan un double en memoria.
type Sender interface {
	// Send envía un email con contenido HTML y texto plano.
	// El destinatario recibe ambas versiones como multipart/alternative.
	Send(to string, subject string, htmlBody string, textBody string) error
}

// Noop descarta los emails. Se usa cuando smtp.enabled = false (dev).
type Noop struct{}

func (Noop) Send(to, subject, htmlBody, textBody string) error { return nil }
