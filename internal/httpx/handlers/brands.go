package handlers

import (
	"net/http"

	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
)

type BrandHandlers struct {
	Brands *catalog.BrandService
}

type brandRequest struct {
	Name string `json:"name"`
}

type brandDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type storeBrandRequest struct {
	StoreID int64 `json:"store_id"`
	BrandID int64 `json:"brand_id"`
}

type storeBrandDTO struct {
	StoreID int64 `json:"store_id"`
	BrandID int64 `json:"brand_id"`
}

// List: GET /api/brands — catálogo completo, cacheado.
func (h *BrandHandlers) List(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Brands.ListAll(r.Context())
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	out := make([]brandDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, brandDTO{ID: b.ID, Name: b.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create: POST /api/brands
func (h *BrandHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if !readJSON(w, r, &req) {
		return
	}
	b, err := h.Brands.Create(r.Context(), req.Name)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, brandDTO{ID: b.ID, Name: b.Name})
}

// Assign: POST /api/brands/store-assignment — asigna una marca a una tienda
// del caller.
func (h *BrandHandlers) Assign(w http.ResponseWriter, r *http.Request) {
	var req storeBrandRequest
	if !readJSON(w, r, &req) {
		return
	}
	sb, err := h.Brands.Assign(r.Context(), middlewares.GetUserID(r.Context()), req.StoreID, req.BrandID)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storeBrandDTO{StoreID: sb.StoreID, BrandID: sb.BrandID})
}

// Unassign: DELETE /api/brands/store-assignment
func (h *BrandHandlers) Unassign(w http.ResponseWriter, r *http.Request) {
	var req storeBrandRequest
	if !readJSON(w, r, &req) {
		return
	}
	sb, err := h.Brands.Unassign(r.Context(), middlewares.GetUserID(r.Context()), req.StoreID, req.BrandID)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, storeBrandDTO{StoreID: sb.StoreID, BrandID: sb.BrandID})
}

// ListByStore: GET /api/stores/{id}/brands — marcas que lleva la tienda.
func (h *BrandHandlers) ListByStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	bs, err := h.Brands.ListByStore(r.Context(), id)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	out := make([]brandDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, brandDTO{ID: b.ID, Name: b.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
