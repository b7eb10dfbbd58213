package handlers

import (
	"net/http"
	"strconv"

	"github.com/dropDatabas3/dotcart/internal/catalog"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type AddressHandlers struct {
	Addresses *catalog.AddressService
}

type addressRequest struct {
	StoreID int64  `json:"store_id"`
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Active  bool   `json:"active"`
}

type addressDTO struct {
	ID      int64  `json:"id"`
	StoreID int64  `json:"store_id"`
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Active  bool   `json:"active"`
}

func toAddressDTO(a *core.Address) addressDTO {
	return addressDTO{
		ID:      a.ID,
		StoreID: a.StoreID,
		Line:    a.Line,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Active:  a.Active,
	}
}

func (req addressRequest) toAddress() *core.Address {
	return &core.Address{
		StoreID: req.StoreID,
		Line:    req.Line,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Active:  req.Active,
	}
}

// List: GET /api/addresses?store_id=.. — direcciones de una tienda del caller.
func (h *AddressHandlers) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(r.URL.Query().Get("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_filter", "store_id must be a positive integer.")
		return
	}
	as, err := h.Addresses.ListByStore(r.Context(), storeID, middlewares.GetUserID(r.Context()))
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	out := make([]addressDTO, 0, len(as))
	for _, a := range as {
		out = append(out, toAddressDTO(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Create: POST /api/addresses
func (h *AddressHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if !readJSON(w, r, &req) {
		return
	}
	a, err := h.Addresses.Create(r.Context(), middlewares.GetUserID(r.Context()), req.toAddress())
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAddressDTO(a))
}

// Update: PUT /api/addresses/{id}
func (h *AddressHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req addressRequest
	if !readJSON(w, r, &req) {
		return
	}
	a, err := h.Addresses.Update(r.Context(), id, middlewares.GetUserID(r.Context()), req.toAddress())
	if err != nil {
		writeCatalogErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAddressDTO(a))
}

// Delete: DELETE /api/addresses/{id}
func (h *AddressHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Addresses.Delete(r.Context(), id, middlewares.GetUserID(r.Context())); err != nil {
		writeCatalogErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
