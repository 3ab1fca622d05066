package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
)

// Service manages per-user carts. Product name and unit price are captured
// at add time; the catalog is consulted only when an item enters the cart.
type Service struct {
	repo     CartRepository
	cache    CartCache
	products catalog.ProductRepository
	ledger   stock.Ledger
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(repo CartRepository, cache CartCache, products catalog.ProductRepository, ledger stock.Ledger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		products: products,
		ledger:   ledger,
	}
}

func (s *Service) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(fmt.Sprintf("%d", userID), func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil {
			if errors.Is(errGet, ErrCartNotFound) {
				// carts are created lazily on first add
				return &domain.Cart{UserID: userID}, nil
			}
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// CheckStock reports whether qty units of the product can currently be
// added.
func (s *Service) CheckStock(productID int64, qty int) bool {
	return s.ledger.CheckAvailable(productID, qty)
}

// AddItem puts qty units of a product into the user's cart, capturing the
// product's current name and price. Adding the same product again increases
// its quantity. The combined quantity is checked against available stock.
func (s *Service) AddItem(ctx context.Context, userID int64, productID int64, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", qty)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrProductNotFound
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	wanted := qty
	itemIdx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			wanted += item.Quantity
			itemIdx = i
			break
		}
	}

	if !s.ledger.CheckAvailable(productID, wanted) {
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Available: s.ledger.Available(productID),
		}
	}

	now := time.Now()
	if itemIdx >= 0 {
		cart.Items[itemIdx].Quantity = wanted
		cart.Items[itemIdx].AddedAt = now
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
			AddedAt:   now,
		})
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.invalidateCache(userID)
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", qty)
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	itemIdx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			itemIdx = i
			break
		}
	}
	if itemIdx < 0 {
		return ErrItemNotFound
	}

	if !s.ledger.CheckAvailable(productID, qty) {
		return &domain.InsufficientStockError{
			ProductID: productID,
			Available: s.ledger.Available(productID),
		}
	}

	cart.Items[itemIdx].Quantity = qty
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, userID int64, productID int64) error {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// AttachPromo stores a promo code on the cart. The code is validated at
// discount time, not here; attaching an unknown code is allowed and simply
// yields no discount later.
func (s *Service) AttachPromo(ctx context.Context, userID int64, code string) error {
	if err := s.repo.SetPromoCode(ctx, userID, strings.ToUpper(code)); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) ClearCart(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteCart(ctx, userID); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *Service) loadOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return &domain.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
