package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verakita/verakita-api/internal/mockdata"
)

// MarketplaceHandler serves the product simulation.
type MarketplaceHandler struct{}

func (h *MarketplaceHandler) Products(w http.ResponseWriter, r *http.Request) {
	products := mockdata.Products()
	JSONSuccess(w, map[string]any{"products": products, "total": len(products)})
}

func (h *MarketplaceHandler) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range mockdata.Products() {
		if p.ID == id {
			JSONSuccess(w, p)
			return
		}
	}
	JSONError(w, "Product not found", http.StatusNotFound)
}
