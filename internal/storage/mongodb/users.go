package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

var withoutPassword = bson.M{"password": 0}

// CreateUser сохраняет нового пользователя и возвращает его ObjectID в hex.
func (s *Storage) CreateUser(ctx context.Context, email, name, passwordHash string) (string, error) {
	const op = "storage.mongodb.CreateUser"

	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Password:  passwordHash,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return doc.ID.Hex(), nil
}

// FindByEmail ищет пользователя. Поле password читается только по запросу.
func (s *Storage) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	const op = "storage.mongodb.FindByEmail"

	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(withoutPassword)
	}

	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.model(), nil
}

// ListUsers возвращает пользователей без паролей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.mongodb.ListUsers"

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(withoutPassword)
	cur, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := make([]*models.User, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.model())
	}
	return res, nil
}

// UpsertAdmin выдаёт права администратора, создавая пользователя при необходимости.
func (s *Storage) UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	const op = "storage.mongodb.UpsertAdmin"

	update := bson.M{
		"$set": bson.M{
			"name":     name,
			"password": passwordHash,
			"is_admin": true,
		},
		"$setOnInsert": bson.M{"created_at": s.now().UTC()},
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.UpsertedCount > 0, nil
}
