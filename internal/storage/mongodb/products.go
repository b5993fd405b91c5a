package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// ListProducts возвращает товары по возрастанию названия.
func (s *Storage) ListProducts(ctx context.Context, includeInactive bool) ([]*models.Product, error) {
	const op = "storage.mongodb.ListProducts"

	filter := bson.M{}
	if !includeInactive {
		filter = bson.M{"is_active": true, "stock": bson.M{"$gt": 0}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := make([]*models.Product, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.model())
	}
	return res, nil
}

func (s *Storage) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "storage.mongodb.GetProduct"

	var doc productDoc
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.model(), nil
}

func (s *Storage) CreateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.mongodb.CreateProduct"

	if _, err := s.products.InsertOne(ctx, newProductDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProduct заменяет документ целиком.
func (s *Storage) UpdateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.mongodb.UpdateProduct"

	res, err := s.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, newProductDoc(p))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	const op = "storage.mongodb.DeleteProduct"

	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
