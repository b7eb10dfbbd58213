package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dotcart/internal/accounts"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type UserHandlers struct {
	Accounts *accounts.Service
	Issuer   *jwtx.Issuer
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // segundos
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

// userDTO nunca expone password_hash ni recovery_token.
type userDTO struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

func toUserDTO(u *core.User) userDTO {
	return userDTO{
		ID:             u.ID,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmed,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		AvatarURL:      u.AvatarURL,
	}
}

// Register: POST /api/users/register
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !readJSON(w, r, &req) {
		return
	}

	u, err := h.Accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAccountsErr(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", u.ID))
	httpx.WriteJSON(w, http.StatusCreated, toUserDTO(u))
}

// Login: POST /api/users/login. Emite el token ligado a la dirección
// observada del cliente en ESTE request.
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}

	u, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if accounts.KindOf(err) == accounts.KindDenied {
			httpx.RecordLoginReject("credentials")
		}
		writeAccountsErr(w, err)
		return
	}

	signed, exp, err := h.Issuer.Issue(u.ID, u.Email, httpx.ClientAddress(r))
	if err != nil {
		logger.Named("handlers").Error("token issue failed", logger.UserID(u.ID), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Could not issue token.")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	})
}

// ConfirmEmail: GET /api/users/confirm-email?email=..&token=..
// GET porque el link llega por mail y se abre en el browser.
func (h *UserHandlers) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.Accounts.ConfirmEmail(r.Context(), q.Get("email"), q.Get("token")); err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

// ResetPasswordRequest: GET /api/users/reset-password-request?email=..
func (h *UserHandlers) ResetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.RequestPasswordReset(r.Context(), r.URL.Query().Get("email")); err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ResetPassword: POST /api/users/reset-password?email=..&token=..
// El password nuevo viaja en el body, nunca en la URL.
func (h *UserHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !readJSON(w, r, &req) {
		return
	}
	q := r.URL.Query()
	if err := h.Accounts.ResetPassword(r.Context(), q.Get("email"), q.Get("token"), req.Password); err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ChangePassword: PUT /api/users/change-password (autenticado). El email
// sale del claim, no del body.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !readJSON(w, r, &req) {
		return
	}
	emailAddr := middlewares.GetEmail(r.Context())
	if err := h.Accounts.ChangePassword(r.Context(), emailAddr, req.CurrentPassword, req.NewPassword); err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "changed"})
}

// UpdateProfile: PUT /api/users/profile (autenticado). Campos ausentes no
// se tocan.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !readJSON(w, r, &req) {
		return
	}
	emailAddr := middlewares.GetEmail(r.Context())
	u, err := h.Accounts.UpdateProfile(r.Context(), emailAddr, req.FirstName, req.LastName, req.AvatarURL)
	if err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

// GetByID: GET /api/users/{id} (autenticado).
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_id", "User id must be a positive integer.")
		return
	}
	u, err := h.Accounts.GetUser(r.Context(), id)
	if err != nil {
		writeAccountsErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserDTO(u))
}

// writeAccountsErr mapea el Kind del error de cuentas al status HTTP. El
// texto del error viaja tal cual: los mensajes son parte del contrato de
// la API.
func writeAccountsErr(w http.ResponseWriter, err error) {
	var ae *accounts.Error
	if e, ok := err.(*accounts.Error); ok {
		ae = e
	}
	if ae == nil {
		logger.Named("handlers").Error("accounts op failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Unexpected error.")
		return
	}

	switch ae.Kind {
	case accounts.KindValidation:
		if len(ae.Violations) > 0 {
			httpx.RecordPasswordViolation()
			httpx.WriteErrorViolations(w, http.StatusBadRequest, "validation_failed", "Password does not meet the policy.", ae.Violations)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", ae.Msg)
	case accounts.KindConflict:
		httpx.WriteError(w, http.StatusConflict, "conflict", ae.Msg)
	case accounts.KindNotFound:
		httpx.WriteError(w, http.StatusNotFound, "not_found", ae.Msg)
	case accounts.KindDenied:
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", ae.Msg)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Unexpected error.")
	}
}
