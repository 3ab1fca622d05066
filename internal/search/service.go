package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Service finds products by free-text queries. Matching is
// case-insensitive and tolerant to the script the user types in: a
// Cyrillic query matches Latin product names through transliteration,
// and vice versa.
type Service struct {
	products catalog.ProductRepository
}

func NewService(products catalog.ProductRepository) *Service {
	return &Service{products: products}
}

// SearchProducts returns active products whose name contains the query.
// Empty and whitespace-only queries match nothing.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var matched []domain.Product
	for _, product := range products {
		if !product.IsActive {
			continue
		}
		if strings.Contains(fold(product.Name), needle) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

// translit maps Cyrillic letters onto their usual Latin spellings, so
// "самсунг" and "samsung" fold to the same string.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

func fold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
