package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dotcart/internal/accounts"
	"github.com/dropDatabas3/dotcart/internal/cache"
	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/email"
	"github.com/dropDatabas3/dotcart/internal/httpx/handlers"
	"github.com/dropDatabas3/dotcart/internal/httpx/router"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
	"github.com/dropDatabas3/dotcart/internal/security/password"
	"github.com/dropDatabas3/dotcart/internal/store/memory"
)

type app struct {
	handler http.Handler
	repo    *memory.Store
}

func newApp(t *testing.T) *app {
	t.Helper()

	repo := memory.New()
	cc := cache.NewMemory("test", time.Minute)

	issuer, err := jwtx.NewIssuer("dotcart", "dotcart-api", "test-secret", time.Hour)
	require.NoError(t, err)

	accountsSvc := accounts.NewService(repo.Users(), password.DefaultPolicy,
		&email.Notifier{Sender: email.Noop{}, BaseURL: "http://localhost:8080"})
	accountsSvc.Hash = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

	h := router.New(router.Deps{
		Issuer:    issuer,
		Users:     &handlers.UserHandlers{Accounts: accountsSvc, Issuer: issuer},
		Stores:    &handlers.StoreHandlers{Stores: &catalog.StoreService{Stores: repo.Stores()}},
		Products:  &handlers.ProductHandlers{Products: &catalog.ProductService{Products: repo.Products(), Stores: repo.Stores(), Brands: repo.Brands()}},
		Brands:    &handlers.BrandHandlers{Brands: &catalog.BrandService{Brands: repo.Brands(), Stores: repo.Stores(), StoreBrands: repo.StoreBrands(), Cache: cc}},
		Addresses: &handlers.AddressHandlers{Addresses: &catalog.AddressService{Addresses: repo.Addresses(), Stores: repo.Stores()}},
		Health:    &handlers.HealthHandlers{Repo: repo, Cache: cc},
	})
	return &app{handler: h, repo: repo}
}

func (a *app) do(t *testing.T, method, path, body, addr, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	r.RemoteAddr = addr + ":5555"
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func (a *app) recoveryToken(t *testing.T, emailAddr string) string {
	t.Helper()
	u, err := a.repo.Users().GetByEmail(context.Background(), emailAddr)
	require.NoError(t, err)
	return u.RecoveryToken
}

func TestFullAccountFlow(t *testing.T) {
	a := newApp(t)
	const ip = "203.0.113.7"

	// register
	w := a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/users/1", w.Header().Get("Location"))

	// login antes de confirmar: denegado
	w = a.do(t, "POST", "/api/users/login", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// confirmar con el link del mail
	tk := a.recoveryToken(t, "ana@example.com")
	q := url.Values{"email": {"ana@example.com"}, "token": {tk}}
	w = a.do(t, "GET", "/api/users/confirm-email?"+q.Encode(), "", ip, "")
	require.Equal(t, http.StatusOK, w.Code)

	// login ahora sí
	w = a.do(t, "POST", "/api/users/login", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	require.Equal(t, http.StatusOK, w.Code)
	var lr struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lr))
	require.Equal(t, "Bearer", lr.TokenType)
	require.InDelta(t, 3600, lr.ExpiresIn, 5)

	// con el token, desde la misma IP, opera el catálogo
	w = a.do(t, "POST", "/api/stores", `{"name":"Kiosco Centro","active":true}`, ip, lr.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// el mismo token desde otra IP: rechazado por el guard, texto plano
	w = a.do(t, "POST", "/api/stores", `{"name":"Otra","active":true}`, "198.51.100.9", lr.AccessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Token IP mismatch", w.Body.String())

	// sin token las rutas protegidas devuelven el envelope JSON
	w = a.do(t, "GET", "/api/stores", "", ip, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), `"error"`)
}

func TestRegisterValidationSurface(t *testing.T) {
	a := newApp(t)

	w := a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"abc"}`, "10.0.0.1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Violations []string `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 4)
	require.Contains(t, resp.Violations, "Password must be at least 8 characters long.")

	// duplicado
	w = a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, "10.0.0.1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, "10.0.0.1", "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Email already exists.")
}

func TestPasswordResetOverHTTP(t *testing.T) {
	a := newApp(t)
	const ip = "203.0.113.7"

	a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	tk := a.recoveryToken(t, "ana@example.com")
	a.do(t, "GET", "/api/users/confirm-email?email=ana%40example.com&token="+url.QueryEscape(tk), "", ip, "")

	// pedir reset emite token nuevo
	w := a.do(t, "GET", "/api/users/reset-password-request?email=ana%40example.com", "", ip, "")
	require.Equal(t, http.StatusOK, w.Code)
	reset := a.recoveryToken(t, "ana@example.com")
	require.NotEmpty(t, reset)

	q := url.Values{"email": {"ana@example.com"}, "token": {reset}}
	w = a.do(t, "POST", "/api/users/reset-password?"+q.Encode(), `{"password":"N3w-Secure!"}`, ip, "")
	require.Equal(t, http.StatusOK, w.Code)

	// password viejo muerto, nuevo vivo
	w = a.do(t, "POST", "/api/users/login", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.do(t, "POST", "/api/users/login", `{"email":"ana@example.com","password":"N3w-Secure!"}`, ip, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBrandAssignmentOverHTTP(t *testing.T) {
	a := newApp(t)
	const ip = "203.0.113.7"

	a.do(t, "POST", "/api/users/register", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	tk := a.recoveryToken(t, "ana@example.com")
	a.do(t, "GET", "/api/users/confirm-email?email=ana%40example.com&token="+url.QueryEscape(tk), "", ip, "")
	w := a.do(t, "POST", "/api/users/login", `{"email":"ana@example.com","password":"S3cure-Pass!"}`, ip, "")
	require.Equal(t, http.StatusOK, w.Code)
	var lr struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lr))

	w = a.do(t, "POST", "/api/stores", `{"name":"Kiosco Centro","active":true}`, ip, lr.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var st struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))

	w = a.do(t, "POST", "/api/brands", `{"name":"Acme"}`, ip, lr.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var br struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &br))

	body := fmt.Sprintf(`{"store_id":%d,"brand_id":%d}`, st.ID, br.ID)
	w = a.do(t, "POST", "/api/brands/store-assignment", body, ip, lr.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, "GET", fmt.Sprintf("/api/stores/%d/brands", st.ID), "", ip, lr.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Acme")

	w = a.do(t, "DELETE", "/api/brands/store-assignment", body, ip, lr.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	// la relación ya no existe
	w = a.do(t, "DELETE", "/api/brands/store-assignment", body, ip, lr.AccessToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	a := newApp(t)
	require.Equal(t, http.StatusOK, a.do(t, "GET", "/healthz", "", "10.0.0.1", "").Code)
	require.Equal(t, http.StatusOK, a.do(t, "GET", "/readyz", "", "10.0.0.1", "").Code)
}
