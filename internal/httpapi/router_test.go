package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/cart"
	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/checkout"
	"github.com/vadimdav12/TestTGBOT/internal/discount"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/events"
	"github.com/vadimdav12/TestTGBOT/internal/favorites"
	"github.com/vadimdav12/TestTGBOT/internal/notify"
	"github.com/vadimdav12/TestTGBOT/internal/order"
	"github.com/vadimdav12/TestTGBOT/internal/payment"
	"github.com/vadimdav12/TestTGBOT/internal/receipt"
	"github.com/vadimdav12/TestTGBOT/internal/search"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
	"github.com/vadimdav12/TestTGBOT/internal/validation"
)

type gatewayStub struct{}

func (gatewayStub) CreateSession(context.Context, *domain.Order) (*payment.Session, error) {
	return &payment.Session{SessionID: "sess-1", PaymentURL: "https://pay.example/sess-1"}, nil
}

// newTestRouter wires the whole backend on in-memory stores.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()
	timeout := 5 * time.Second

	products := catalog.NewMemoryProductRepository()
	ledger := stock.NewMemoryLedger()
	catalogSvc := catalog.NewService(products, ledger)

	products.PutCategory(domain.Category{ID: 1, Name: "Phones"})
	seed := []domain.Product{
		{Name: "Samsung Galaxy S24", Price: decimal.NewFromInt(79990), Stock: 10, CategoryID: 1, IsActive: true},
		{Name: "iPhone 15", Price: decimal.NewFromInt(99990), Stock: 5, CategoryID: 1, IsActive: true},
	}
	for i := range seed {
		_, err := catalogSvc.CreateProduct(ctx, &seed[i])
		require.NoError(t, err)
	}

	cartSvc := cart.NewService(cart.NewMemoryRepository(), cart.NopCache{}, products, ledger)
	engine := discount.NewEngine(discount.NewMemoryPromoRepository())
	orders := order.NewMemoryRepository()
	notifier := notify.NewService(notify.LogSink{}, nil)
	publisher := events.NopPublisher{}

	checkoutSvc := checkout.NewService(cartSvc, engine, ledger, orders, notifier, publisher, validation.New())

	receipts, err := receipt.NewPDFGenerator(t.TempDir())
	require.NoError(t, err)
	coordinator := payment.NewCoordinator(orders, gatewayStub{}, receipts, notifier, publisher)

	return NewRouter(Handlers{
		Catalog:   NewCatalogHandler(catalogSvc, search.NewService(products), timeout),
		Cart:      NewCartHandler(cartSvc, timeout),
		Orders:    NewOrdersHandler(checkoutSvc, orders, coordinator, timeout),
		Favorites: NewFavoritesHandler(favorites.NewService(favorites.NewMemoryRepository(), products), timeout),
		Webhooks:  NewWebhookHandler(coordinator, timeout),
	}, 30*time.Second)
}

func doRequest(router http.Handler, method, target string, userID int64, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	if userID != 0 {
		request.Header.Set("X-User-ID", fmt.Sprint(userID))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_Categories(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/v1/categories", 0, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var categories []CategoryDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Phones", categories[0].Name)
}

func TestRouter_SearchCyrillic(t *testing.T) {
	router := newTestRouter(t)

	target := "/api/v1/products/search?q=" + url.QueryEscape("самсунг")
	recorder := doRequest(router, http.MethodGet, target, 0, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var products []ProductDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Samsung Galaxy S24", products[0].Name)
}

func TestRouter_CartRequiresUser(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/v1/cart", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_CheckoutAndPaymentFlow(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/cart/items", 1,
		AddItemRequestDTO{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/v1/checkout", 1, CheckoutRequestDTO{
		Name:    "Test",
		Phone:   "+7 999 111-11-11",
		Address: "Moscow, Testovaya st. 1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))
	assert.Equal(t, "created", created.Status)
	assert.Equal(t, "159980", created.Total)

	// Cart is cleared after checkout.
	recorder = doRequest(router, http.MethodGet, "/api/v1/cart", 1, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var userCart CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&userCart))
	assert.Empty(t, userCart.Items)

	target := fmt.Sprintf("/api/v1/orders/%d/payment-session", created.ID)
	recorder = doRequest(router, http.MethodPost, target, 1, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var session PaymentSessionResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&session))
	assert.Equal(t, "sess-1", session.SessionID)

	recorder = doRequest(router, http.MethodPost, "/api/v1/payments/webhook", 0,
		map[string]interface{}{"order_id": created.ID, "status": "paid"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var hook webhookResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&hook))
	assert.True(t, hook.OK)

	recorder = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", created.ID), 1, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var paid OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&paid))
	assert.Equal(t, "paid", paid.Status)
}

func TestRouter_OrderHiddenFromOtherUsers(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/cart/items", 1,
		AddItemRequestDTO{ProductID: 1, Quantity: 1})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/v1/checkout", 1, CheckoutRequestDTO{
		Name:    "Test",
		Phone:   "+7 999 111-11-11",
		Address: "Moscow, Testovaya st. 1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))

	recorder = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", created.ID), 2, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRouter_AdminCreateProduct(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/admin/products", 0,
		UpsertProductRequestDTO{Name: "Pixel 9", Price: "64990", Stock: 3, CategoryID: 1, IsActive: true})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var product ProductDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&product))

	recorder = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), 0, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched ProductDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&fetched))
	assert.Equal(t, "Pixel 9", fetched.Name)
	assert.Equal(t, 3, fetched.Stock)
}

func TestRouter_Favorites(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/favorites/1", 1, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/api/v1/favorites", 1, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var products []ProductDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Samsung Galaxy S24", products[0].Name)

	recorder = doRequest(router, http.MethodDelete, "/api/v1/favorites/1", 1, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRouter_InsufficientStockConflict(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/cart/items", 1,
		AddItemRequestDTO{ProductID: 2, Quantity: 6})
	require.Equal(t, http.StatusConflict, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "insufficient_stock", resp.Code)
}
