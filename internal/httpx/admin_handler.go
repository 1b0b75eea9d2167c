package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/uniblox/ecommerce-store/internal/admin"
	"github.com/uniblox/ecommerce-store/internal/discount"
)

type AdminHandler struct {
	Reporter  *admin.Reporter
	Discounts *discount.Store
	Log       *zap.SugaredLogger

	DiscountPercent float64
	DiscountPrefix  string
	DiscountCodeLen int
}

type GenerateDiscountRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type GenerateDiscountResponse struct {
	DiscountCode string `json:"discount_code"`
	Message      string `json:"message"`
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Post("/admin/generate-discount", h.generateDiscount)
	r.Get("/admin/stats", h.stats)
	r.Get("/admin/users", h.users)
}

// generateDiscount mints a code outside the nth-order flow. The
// issue-once-per-session rule still applies: an unused code already on the
// session is returned instead of a fresh one.
func (h *AdminHandler) generateDiscount(w http.ResponseWriter, r *http.Request) {
	var req GenerateDiscountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	code := discount.GenerateCode(h.DiscountPrefix, h.DiscountCodeLen)
	issued := h.Discounts.Issue(req.SessionID, code, h.DiscountPercent)
	h.Log.Infow("discount code issued", "session_id", req.SessionID, "code", issued)

	writeJSON(w, http.StatusCreated, GenerateDiscountResponse{
		DiscountCode: issued,
		Message:      "Discount code generated successfully",
	})
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Reporter.Statistics())
}

func (h *AdminHandler) users(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Reporter.Users())
}
