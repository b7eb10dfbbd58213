package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type StoreHandlers struct {
	Stores *catalog.StoreService
}

type storeRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Active  bool   `json:"active"`
}

type storeDTO struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
	Active  bool   `json:"active"`
}

func toStoreDTO(st *core.Store) storeDTO {
	return storeDTO{ID: st.ID, UserID: st.UserID, Name: st.Name, LogoURL: st.LogoURL, Active: st.Active}
}

func toStoreDTOs(sts []*core.Store) []storeDTO {
	out := make([]storeDTO, 0, len(sts))
	for _, st := range sts {
		out = append(out, toStoreDTO(st))
	}
	return out
}

// List: GET /api/stores — todas las tiendas; ?mine=true sólo las del caller.
func (h *StoreHandlers) List(w http.ResponseWriter, r *http.Request) {
	var (
		sts []*core.Store
		err error
	)
	if r.URL.Query().Get("mine") == "true" {
		sts, err = h.Stores.ListByUser(r.Context(), middlewares.GetUserID(r.Context()))
	} else {
		sts, err = h.Stores.ListAll(r.Context())
	}
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStoreDTOs(sts))
}

// Get: GET /api/stores/{id}
func (h *StoreHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.Stores.Get(r.Context(), id)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStoreDTO(st))
}

// Create: POST /api/stores
func (h *StoreHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if !readJSON(w, r, &req) {
		return
	}
	st, err := h.Stores.Create(r.Context(), middlewares.GetUserID(r.Context()), req.Name, req.LogoURL, req.Active)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toStoreDTO(st))
}

// Update: PUT /api/stores/{id}
func (h *StoreHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req storeRequest
	if !readJSON(w, r, &req) {
		return
	}
	st, err := h.Stores.Update(r.Context(), id, middlewares.GetUserID(r.Context()), req.Name, req.LogoURL, req.Active)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStoreDTO(st))
}

// Delete: DELETE /api/stores/{id}
func (h *StoreHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Stores.Delete(r.Context(), id, middlewares.GetUserID(r.Context())); err != nil {
		writeCatalogErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parsea el {id} de la ruta; escribe el 400 si no es un entero
// positivo.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_id", "Id must be a positive integer.")
		return 0, false
	}
	return id, true
}

// writeCatalogErr mapea los errores de catálogo al status HTTP. Ownership
// ajeno ya llega como ErrNotFound desde el servicio.
func writeCatalogErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Resource not found.")
	case errors.Is(err, catalog.ErrNameTaken):
		httpx.WriteError(w, http.StatusConflict, "conflict", "Name already exists.")
	case errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrProductNameRequired),
		errors.Is(err, catalog.ErrBrandNameRequired):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, catalog.ErrInvalidRefs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "Store or brand reference is invalid.")
	default:
		logger.Named("handlers").Error("catalog op failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Unexpected error.")
	}
}
