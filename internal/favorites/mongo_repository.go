package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("favorites")}
}

type favoritesDoc struct {
	UserID     int64     `bson:"user_id"`
	ProductIDs []int64   `bson:"product_ids"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (m mongoRepository) Add(ctx context.Context, userID, productID int64) error {
	filter := bson.M{"user_id": userID}

	var doc favoritesDoc
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to get favorites: %w", err)
	}
	for _, id := range doc.ProductIDs {
		if id == productID {
			return ErrAlreadyFavorite
		}
	}

	update := bson.M{
		"$addToSet": bson.M{"product_ids": productID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (m mongoRepository) Remove(ctx context.Context, userID, productID int64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$pull": bson.M{"product_ids": productID},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	if _, err := m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (m mongoRepository) List(ctx context.Context, userID int64) ([]int64, error) {
	var doc favoritesDoc

	err := m.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return doc.ProductIDs, nil
}
