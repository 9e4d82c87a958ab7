package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vdraganov/go-shop-api/internal/shop"
)

const maxProductNameLen = 150

type ProductsHandler struct {
	Store ProductStore
}

type CreateProductReq struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	QuantityInStock *int     `json:"quantity_in_stock"`
}

type UpdateProductReq struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	QuantityInStock *int     `json:"quantity_in_stock"`
}

type ProductListResp struct {
	Products []shop.Product `json:"products"`
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Post("/products", h.create)
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == nil || *req.Name == "" || len(*req.Name) > maxProductNameLen {
		writeDetail(w, http.StatusUnprocessableEntity, "name is required and must be at most 150 characters")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "price is required and must be >= 0")
		return
	}
	if req.QuantityInStock == nil || *req.QuantityInStock < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "quantity_in_stock is required and must be >= 0")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.Create(ctx, shop.ProductInput{
		Name:            *req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		QuantityInStock: *req.QuantityInStock,
	})
	if err != nil {
		writeDomainErr(w, err, "create product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	ps, err := h.Store.List(ctx)
	if err != nil {
		writeDomainErr(w, err, "list products")
		return
	}
	writeJSON(w, http.StatusOK, ProductListResp{Products: ps})
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err, "get product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name != nil && (*req.Name == "" || len(*req.Name) > maxProductNameLen) {
		writeDetail(w, http.StatusUnprocessableEntity, "name must be non-empty and at most 150 characters")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "price must be >= 0")
		return
	}
	if req.QuantityInStock != nil && *req.QuantityInStock < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "quantity_in_stock must be >= 0")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Store.Update(ctx, chi.URLParam(r, "id"), shop.ProductPatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
	})
	if err != nil {
		writeDomainErr(w, err, "update product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		writeDomainErr(w, err, "delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}
