package email

import (
	"fmt"
	"net/url"
	"strings"
)

// Notifier arma y envía los mails de confirmación y reset. Los links llevan
// email y token como query params URL-encoded; los consumen los endpoints
// /api/users/confirm-email y /api/users/reset-password.
type Notifier struct {
	Sender  Sender
	BaseURL string
}

// ConfirmLink construye el link de confirmación de email.
func (n *Notifier) ConfirmLink(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return strings.TrimRight(n.BaseURL, "/") + "/api/users/confirm-email?" + q.Encode()
}

// ResetLink construye el link de reset de password.
func (n *Notifier) ResetLink(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return strings.TrimRight(n.BaseURL, "/") + "/api/users/reset-password?" + q.Encode()
}

// SendConfirmation envía el mail de verificación de cuenta.
func (n *Notifier) SendConfirmation(email, token string) error {
	link := n.ConfirmLink(email, token)
	html := fmt.Sprintf(
		`<h1>Confirm Your Email</h1><p>Click <a href="%s">here</a> to verify your email.</p>`, link)
	text := "Confirm your email: " + link
	return n.Sender.Send(email, "Confirm Your Email", html, text)
}

// SendPasswordReset envía el mail con la clave de reset.
func (n *Notifier) SendPasswordReset(email, token string) error {
	link := n.ResetLink(email, token)
	html := fmt.Sprintf(
		`<h1>Reset Your Password</h1><p>Click <a href="%s">here</a> to reset your password.</p>`, link)
	text := "Resetting password key: " + token + "\nOr follow: " + link
	return n.Sender.Send(email, "Reset Your Password", html, text)
}
