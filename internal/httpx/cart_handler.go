package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/cart"
	"github.com/uniblox/ecommerce-store/internal/money"
)

type CartHandler struct {
	Carts *cart.Store
	Log   *zap.SugaredLogger
}

type AddToCartRequest struct {
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  *int    `json:"quantity" validate:"omitempty,gt=0"` // nil defaults to 1
}

type UpdateCartRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

type CartResponse struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	Subtotal   float64     `json:"subtotal"`
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.getCart)
	r.Post("/cart/add", h.addToCart)
	r.Put("/cart/update", h.updateItem)
	r.Delete("/cart/remove/{product_id}", h.removeItem)
	r.Delete("/cart", h.clearCart)
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	lines := h.Carts.Get(SessionID(r))
	writeJSON(w, http.StatusOK, buildCartResponse(lines))
}

func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	lines := h.Carts.Add(SessionID(r), cart.Line{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     money.Round2Float(req.Price),
		Quantity:  quantity,
	})
	writeJSON(w, http.StatusCreated, buildCartResponse(lines))
}

func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lines, err := h.Carts.UpdateQuantity(SessionID(r), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartResponse(lines))
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "product_id"))
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	lines, err := h.Carts.Remove(SessionID(r), productID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, buildCartResponse(lines))
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Carts.Clear(SessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func buildCartResponse(lines []cart.Line) CartResponse {
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Items:      lines,
		TotalItems: cart.TotalQuantity(lines),
		Subtotal:   money.Round2(cart.Subtotal(lines)),
	}
}
