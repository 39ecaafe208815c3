package mongostore

import (
	"context"
	"time"

	"users-admin/internal/shared/model"
	"users-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return insertOne(ctx, s.col(ColUsers), user)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "_id", Value: oid}})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (s *Store) ListUsers(ctx context.Context, role model.Role) ([]*model.User, error) {
	filter := bson.D{}
	if role != "" {
		filter = bson.D{{Key: "role", Value: role}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findMany[model.User](ctx, s.col(ColUsers), filter, opts)
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch storage.UserPatch) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if patch.FirstName != nil {
		set = append(set, bson.E{Key: "firstName", Value: *patch.FirstName})
	}
	if patch.LastName != nil {
		set = append(set, bson.E{Key: "lastName", Value: *patch.LastName})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *patch.Role})
	}

	return findOneAndUpdate[model.User](ctx, s.col(ColUsers), oid, set)
}

func (s *Store) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	return findOneAndDelete[model.User](ctx, s.col(ColUsers), oid)
}
