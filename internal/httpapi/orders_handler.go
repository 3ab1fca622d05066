package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadimdav12/TestTGBOT/internal/checkout"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/order"
	"github.com/vadimdav12/TestTGBOT/internal/payment"
)

type OrdersHandler struct {
	checkout    *checkout.Service
	orders      order.Repository
	coordinator *payment.Coordinator
	timeout     time.Duration
}

func NewOrdersHandler(
	checkoutSvc *checkout.Service,
	orders order.Repository,
	coordinator *payment.Coordinator,
	timeout time.Duration,
) *OrdersHandler {
	return &OrdersHandler{
		checkout:    checkoutSvc,
		orders:      orders,
		coordinator: coordinator,
		timeout:     timeout,
	}
}

type CheckoutRequestDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItemDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

type OrderResponseDTO struct {
	ID            int64          `json:"id"`
	Items         []OrderItemDTO `json:"items"`
	Subtotal      string         `json:"subtotal"`
	PromoCode     string         `json:"promo_code,omitempty"`
	PromoDiscount string         `json:"promo_discount"`
	RuleDiscount  string         `json:"rule_discount"`
	Total         string         `json:"total"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"created_at"`
}

type PaymentSessionResponseDTO struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
}

// POST /api/v1/checkout
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	newOrder, err := h.checkout.CreateOrder(ctx, userID, domain.ContactData{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderDTO(newOrder))
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	ord, ok := h.loadOwnOrder(ctx, w, r, userID)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, toOrderDTO(ord))
}

// POST /api/v1/orders/{order_id}/payment-session
func (h *OrdersHandler) CreatePaymentSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	ord, ok := h.loadOwnOrder(ctx, w, r, userID)
	if !ok {
		return
	}

	session, err := h.coordinator.CreatePaymentSession(ctx, ord.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, PaymentSessionResponseDTO{
		SessionID:  session.SessionID,
		PaymentURL: session.PaymentURL,
	})
}

// loadOwnOrder fetches the order from the path and hides other users'
// orders behind 404.
func (h *OrdersHandler) loadOwnOrder(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) (*domain.Order, bool) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be an integer")
		return nil, false
	}

	ord, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	if ord.UserID != userID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return nil, false
	}
	return ord, true
}

func toOrderDTO(o *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.String(),
			Quantity:  item.Quantity,
		})
	}
	return OrderResponseDTO{
		ID:            o.ID,
		Items:         items,
		Subtotal:      o.Subtotal.String(),
		PromoCode:     o.PromoCode,
		PromoDiscount: o.PromoDiscount.String(),
		RuleDiscount:  o.RuleDiscount.String(),
		Total:         o.Total.String(),
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}
