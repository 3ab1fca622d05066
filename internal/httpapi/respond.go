package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/vadimdav12/TestTGBOT/internal/cart"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps service errors onto HTTP status codes.
func handleError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	var validationErrs validatorv10.ValidationErrors

	switch {
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:   stockErr.Error(),
			Code:    "insufficient_stock",
			Details: "reduce the quantity or remove the item",
		})
	case errors.As(err, &validationErrs):
		respondError(w, http.StatusBadRequest, "invalid_contact", validationErrs.Error())
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, domain.ErrInvalidOrderState):
		respondError(w, http.StatusConflict, "invalid_order_state", err.Error())
	case errors.Is(err, domain.ErrPaymentGateway):
		respondError(w, http.StatusBadGateway, "payment_gateway_unavailable", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
