package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/checkout"
)

type CheckoutHandler struct {
	Workflow *checkout.Workflow
	Log      *zap.SugaredLogger
}

type CheckoutRequest struct {
	DiscountCode string `json:"discount_code"`
}

func (h *CheckoutHandler) Register(r chi.Router) {
	r.Post("/checkout", h.checkout)
}

func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.Workflow.Checkout(r.Context(), SessionID(r), req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrInvalidDiscountCode),
			errors.Is(err, checkout.ErrDiscountAlreadyUsed):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Errorw("checkout failed", "session_id", SessionID(r), "error", err)
			writeError(w, http.StatusInternalServerError, "an error occurred during checkout")
		}
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
