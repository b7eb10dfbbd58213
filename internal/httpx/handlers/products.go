package handlers

import (
	"net/http"
	"strconv"

	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type ProductHandlers struct {
	Products *catalog.ProductService
}

type productRequest struct {
	StoreID  int64   `json:"store_id"`
	BrandID  int64   `json:"brand_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Deleted  bool    `json:"deleted"`
}

type productDTO struct {
	ID       int64   `json:"id"`
	StoreID  int64   `json:"store_id"`
	BrandID  int64   `json:"brand_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
	Deleted  bool    `json:"deleted"`
}

type deletionStatusRequest struct {
	Deleted bool `json:"deleted"`
}

func toProductDTO(p *core.Product) productDTO {
	return productDTO{
		ID:       p.ID,
		StoreID:  p.StoreID,
		BrandID:  p.BrandID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Deleted:  p.Deleted,
	}
}

func (req productRequest) toProduct() *core.Product {
	return &core.Product{
		StoreID:  req.StoreID,
		BrandID:  req.BrandID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Deleted:  req.Deleted,
	}
}

// List: GET /api/products?store_id=&deleted=&mine=true
// store_id filtra por tienda, deleted por estado de soft delete, mine
// restringe a las tiendas del caller.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f core.ProductFilter

	if raw := q.Get("store_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_filter", "store_id must be a positive integer.")
			return
		}
		f.StoreID = &id
	}
	if raw := q.Get("deleted"); raw != "" {
		d, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_filter", "deleted must be a boolean.")
			return
		}
		f.Deleted = &d
	}
	if q.Get("mine") == "true" {
		uid := middlewares.GetUserID(r.Context())
		f.UserID = &uid
	}

	ps, err := h.Products.List(r.Context(), f)
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	out := make([]productDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create: POST /api/products
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !readJSON(w, r, &req) {
		return
	}
	p, err := h.Products.Create(r.Context(), middlewares.GetUserID(r.Context()), req.toProduct())
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProductDTO(p))
}

// Update: PUT /api/products/{id}
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productRequest
	if !readJSON(w, r, &req) {
		return
	}
	p, err := h.Products.Update(r.Context(), id, middlewares.GetUserID(r.Context()), req.toProduct())
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductDTO(p))
}

// SetDeletionStatus: PUT /api/products/{id}/deletion-status
// Borra o recupera (soft delete) un producto del caller.
func (h *ProductHandlers) SetDeletionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req deletionStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	p, err := h.Products.SetDeletionStatus(r.Context(), id, req.Deleted, middlewares.GetUserID(r.Context()))
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductDTO(p))
}
