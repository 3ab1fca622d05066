package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/search"
)

type CatalogHandler struct {
	catalog *catalog.Service
	search  *search.Service
	timeout time.Duration
}

func NewCatalogHandler(catalogSvc *catalog.Service, searchSvc *search.Service, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogSvc,
		search:  searchSvc,
		timeout: timeout,
	}
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Stock      int    `json:"stock"`
	CategoryID int64  `json:"category_id"`
	IsActive   bool   `json:"is_active"`
}

type UpsertProductRequestDTO struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Stock      int    `json:"stock"`
	CategoryID int64  `json:"category_id"`
	IsActive   bool   `json:"is_active"`
}

// GET /api/v1/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.GetCategories(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/categories/{category_id}/products
func (h *CatalogHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "category_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be an integer")
		return
	}

	products, err := h.catalog.GetProductsByCategory(ctx, categoryID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toProductDTOs(ctx, products))
}

// GET /api/v1/products/{product_id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be an integer")
		return
	}

	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		handleError(w, err)
		return
	}
	stock, err := h.catalog.GetProductStock(ctx, productID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product, stock))
}

// GET /api/v1/products/search?q=...
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "q is required")
		return
	}

	products, err := h.search.SearchProducts(ctx, query)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.toProductDTOs(ctx, products))
}

// POST /api/v1/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	created, err := h.catalog.CreateProduct(ctx, product)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductDTO(created, created.Stock))
}

// PUT /api/v1/admin/products/{product_id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be an integer")
		return
	}

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = productID

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product, product.Stock))
}

func (h *CatalogHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	var req UpsertProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return nil, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "missing_name", "name is required")
		return nil, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative decimal")
		return nil, false
	}
	if req.Stock < 0 {
		respondError(w, http.StatusBadRequest, "invalid_stock", "stock must not be negative")
		return nil, false
	}

	return &domain.Product{
		Name:       req.Name,
		Price:      price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		IsActive:   req.IsActive,
	}, true
}

func (h *CatalogHandler) toProductDTOs(ctx context.Context, products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		stock, err := h.catalog.GetProductStock(ctx, products[i].ID)
		if err != nil {
			stock = 0
		}
		dtos = append(dtos, toProductDTO(&products[i], stock))
	}
	return dtos
}

func toProductDTO(p *domain.Product, stock int) ProductDTO {
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price.String(),
		Stock:      stock,
		CategoryID: p.CategoryID,
		IsActive:   p.IsActive,
	}
}
