package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uniblox/ecommerce-store/internal/catalog"
)

type ProductsHandler struct {
	Catalog *catalog.Store
}

type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

func (h *ProductsHandler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProductsResponse{Products: h.Catalog.List()})
}
