package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type mongoProductRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		counters:   db.Collection("counters"),
	}
}

type productDoc struct {
	ID         int64     `bson:"_id"`
	Name       string    `bson:"name"`
	Price      string    `bson:"price"`
	Stock      int       `bson:"stock"`
	CategoryID int64     `bson:"category_id"`
	IsActive   bool      `bson:"is_active"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

type categoryDoc struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (m *mongoProductRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := m.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	out := make([]domain.Category, len(docs))
	for i, doc := range docs {
		out[i] = domain.Category{ID: doc.ID, Name: doc.Name}
	}
	return out, nil
}

func (m *mongoProductRepository) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return m.find(ctx, bson.M{"category_id": categoryID})
}

func (m *mongoProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoProductRepository) find(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	cursor, err := m.products.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	out := make([]domain.Product, 0, len(docs))
	for i := range docs {
		product, err := docToProduct(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *product)
	}
	return out, nil
}

func (m *mongoProductRepository) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var doc productDoc

	err := m.products.FindOne(ctx, bson.M{"_id": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return docToProduct(&doc)
}

func (m *mongoProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	id, err := m.nextID(ctx, "products")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	doc := productDoc{
		ID:         id,
		Name:       product.Name,
		Price:      product.Price.String(),
		Stock:      product.Stock,
		CategoryID: product.CategoryID,
		IsActive:   product.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := m.products.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = id
	product.CreatedAt = now
	product.UpdatedAt = now
	return id, nil
}

func (m *mongoProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"price":       product.Price.String(),
		"stock":       product.Stock,
		"category_id": product.CategoryID,
		"is_active":   product.IsActive,
		"updated_at":  time.Now(),
	}}

	result, err := m.products.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// nextID allocates a sequential id from the counters collection.
func (m *mongoProductRepository) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}
	return counter.Seq, nil
}

func docToProduct(doc *productDoc) (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid product price %q: %w", doc.Price, err)
	}
	return &domain.Product{
		ID:         doc.ID,
		Name:       doc.Name,
		Price:      price,
		Stock:      doc.Stock,
		CategoryID: doc.CategoryID,
		IsActive:   doc.IsActive,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}
