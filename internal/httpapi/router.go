package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Catalog   *CatalogHandler
	Cart      *CartHandler
	Orders    *OrdersHandler
	Favorites *FavoritesHandler
	Webhooks  *WebhookHandler
}

// NewRouter assembles the HTTP surface consumed by the bot frontend plus
// the payment webhook the gateway calls back on.
func NewRouter(h Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(UserIDMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", h.Catalog.GetCategories)
		r.Get("/categories/{category_id}/products", h.Catalog.GetProductsByCategory)
		r.Get("/products/search", h.Catalog.SearchProducts)
		r.Get("/products/{product_id}", h.Catalog.GetProduct)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products", h.Catalog.CreateProduct)
			r.Put("/products/{product_id}", h.Catalog.UpdateProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Post("/promo", h.Cart.AttachPromo)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.Favorites.List)
			r.Post("/{product_id}", h.Favorites.Add)
			r.Delete("/{product_id}", h.Favorites.Remove)
		})

		r.Post("/checkout", h.Orders.Checkout)
		r.Get("/orders", h.Orders.ListOrders)
		r.Get("/orders/{order_id}", h.Orders.GetOrder)
		r.Post("/orders/{order_id}/payment-session", h.Orders.CreatePaymentSession)

		r.Post("/payments/webhook", h.Webhooks.HandleWebhook)
	})

	return otelhttp.NewHandler(r, "http.server")
}
