package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type mongoPromoRepository struct {
	collection *mongo.Collection
}

func NewMongoPromoRepository(db *mongo.Database) PromoRepository {
	return &mongoPromoRepository{collection: db.Collection("promocodes")}
}

// promoDoc is the storage shape. Decimal values are stored as strings to
// keep them exact.
type promoDoc struct {
	Code        string     `bson:"code"`
	Kind        string     `bson:"kind"`
	Value       string     `bson:"value"`
	StartsAt    *time.Time `bson:"starts_at,omitempty"`
	EndsAt      *time.Time `bson:"ends_at,omitempty"`
	IsActive    bool       `bson:"is_active"`
	MinSubtotal string     `bson:"min_subtotal"`
}

func (m *mongoPromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var doc promoDoc

	filter := bson.M{"code": strings.ToUpper(code)}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return docToPromo(&doc)
}

func docToPromo(doc *promoDoc) (*domain.PromoCode, error) {
	value, err := decimal.NewFromString(doc.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid promo value %q: %w", doc.Value, err)
	}

	minSubtotal := decimal.Zero
	if doc.MinSubtotal != "" {
		minSubtotal, err = decimal.NewFromString(doc.MinSubtotal)
		if err != nil {
			return nil, fmt.Errorf("invalid promo min subtotal %q: %w", doc.MinSubtotal, err)
		}
	}

	return &domain.PromoCode{
		Code:        doc.Code,
		Kind:        domain.PromoKind(doc.Kind),
		Value:       value,
		StartsAt:    doc.StartsAt,
		EndsAt:      doc.EndsAt,
		IsActive:    doc.IsActive,
		MinSubtotal: minSubtotal,
	}, nil
}
