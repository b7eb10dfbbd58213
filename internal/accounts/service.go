// Package accounts implementa el flujo de registro, login y recuperación
// de cuentas sobre el campo recovery_token de un solo uso.
//
// El token está multiplexado entre confirmación de email y reset de
// password: emitir uno pisa cualquier otro pendiente. Cada operación es
// una unidad de trabajo corta por request; la atomicidad del
// read-modify-write del token la gobierna la capa de persistencia (dos
// RequestPasswordReset concurrentes compiten y gana el último, aceptado
// como benigno: el token es de un solo uso y ambos pedidos vinieron de
// quien controla el mail).
package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/dotcart/internal/email"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/security/password"
	"github.com/dropDatabas3/dotcart/internal/security/token"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type Service struct {
	Users    core.UserRepository
	Policy   password.Policy
	Hash     password.Params
	Notifier *email.Notifier
}

func NewService(users core.UserRepository, policy password.Policy, notifier *email.Notifier) *Service {
	return &Service{Users: users, Policy: policy, Hash: password.Default, Notifier: notifier}
}

// Register da de alta una identidad sin confirmar, con un token fresco, y
// manda el mail de confirmación. Falla con conflict si el email existe y
// con validation si el password viola la policy (todas las violaciones
// juntas, sin cortocircuito).
func (s *Service) Register(ctx context.Context, emailAddr, plain string) (*core.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return nil, errValidation("Email is required.")
	}
	if strings.TrimSpace(plain) == "" {
		return nil, errValidation(password.MsgRequired)
	}

	exists, err := s.Users.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("email exists: %w", err)
	}
	if exists {
		return nil, errEmailExists
	}

	if v := s.Policy.Validate(plain); len(v) > 0 {
		return nil, errPolicy(v)
	}

	phc, err := password.Hash(s.Hash, plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	tk, err := token.NewRecoveryToken()
	if err != nil {
		return nil, fmt.Errorf("recovery token: %w", err)
	}

	u := &core.User{
		Email:          emailAddr,
		PasswordHash:   phc,
		EmailConfirmed: false,
		RecoveryToken:  tk,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if err == core.ErrConflict {
			return nil, errEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.Notifier.SendConfirmation(u.Email, tk); err != nil {
		// El usuario ya quedó persistido; el mail puede reintentarse vía
		// RequestPasswordReset o un reenvío manual.
		logger.Named("accounts").Warn("confirmation email failed",
			logger.UserID(u.ID), logger.Err(err))
	}

	logger.Named("accounts").Info("user registered", logger.UserID(u.ID))
	return u, nil
}

// Login verifica credenciales. Usuario inexistente, email sin confirmar y
// password incorrecto devuelven el mismo denied, sin distinguir el motivo.
func (s *Service) Login(ctx context.Context, emailAddr, plain string) (*core.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || plain == "" {
		return nil, errInvalidCreds
	}

	u, err := s.Users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if err == core.ErrNotFound {
			return nil, errInvalidCreds
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !u.EmailConfirmed {
		return nil, errInvalidCreds
	}
	if !password.Verify(plain, u.PasswordHash) {
		return nil, errInvalidCreds
	}
	return u, nil
}

// ConfirmEmail consume el token de confirmación: lo limpia y marca la
// cuenta confirmada. Un token ya consumido (campo vacío) nunca matchea,
// así que confirmar dos veces falla.
func (s *Service) ConfirmEmail(ctx context.Context, emailAddr, presented string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == core.ErrNotFound {
			return errUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !token.Equal(u.RecoveryToken, presented) {
		return errUserNotFound
	}

	u.RecoveryToken = ""
	u.EmailConfirmed = true
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	logger.Named("accounts").Info("email confirmed", logger.UserID(u.ID))
	return nil
}

// RequestPasswordReset emite un token nuevo, pisando cualquier token
// pendiente (incluido uno de confirmación de email todavía sin usar), y
// manda el mail de reset.
func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == core.ErrNotFound {
			return errUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}

	tk, err := token.NewRecoveryToken()
	if err != nil {
		return fmt.Errorf("recovery token: %w", err)
	}
	u.RecoveryToken = tk
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if err := s.Notifier.SendPasswordReset(u.Email, tk); err != nil {
		return fmt.Errorf("reset email: %w", err)
	}
	logger.Named("accounts").Info("password reset requested", logger.UserID(u.ID))
	return nil
}

// ResetPassword consume el token de reset: valida la policy del password
// nuevo, hashea y limpia el token.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, presented, newPlain string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == core.ErrNotFound {
			return errUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !token.Equal(u.RecoveryToken, presented) {
		return errUserNotFound
	}
	if v := s.Policy.Validate(newPlain); len(v) > 0 {
		return errPolicy(v)
	}

	phc, err := password.Hash(s.Hash, newPlain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = phc
	u.RecoveryToken = ""
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	logger.Named("accounts").Info("password reset", logger.UserID(u.ID))
	return nil
}

// ChangePassword cambia el password de un caller ya autenticado. No toca
// el recovery_token.
func (s *Service) ChangePassword(ctx context.Context, emailAddr, current, newPlain string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == core.ErrNotFound {
			return errInvalidCreds
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !password.Verify(current, u.PasswordHash) {
		return errInvalidCreds
	}
	if v := s.Policy.Validate(newPlain); len(v) > 0 {
		return errPolicy(v)
	}

	phc, err := password.Hash(s.Hash, newPlain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = phc
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	logger.Named("accounts").Info("password changed", logger.UserID(u.ID))
	return nil
}

// UpdateProfile actualiza sólo los campos provistos (nil = sin cambio).
func (s *Service) UpdateProfile(ctx context.Context, emailAddr string, first, last, avatarURL *string) (*core.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == core.ErrNotFound {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if first != nil {
		u.FirstName = *first
	}
	if last != nil {
		u.LastName = *last
	}
	if avatarURL != nil {
		u.AvatarURL = *avatarURL
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// GetUser lookup por id (para el Location del register y GET /users/{id}).
func (s *Service) GetUser(ctx context.Context, id int64) (*core.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if err == core.ErrNotFound {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
