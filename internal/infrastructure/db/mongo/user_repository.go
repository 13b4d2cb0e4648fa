package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edison/video-portal/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	Roles         []string           `bson:"roles"`
	EmailVerified bool               `bson:"email_verified"`
	LastLogin     *time.Time         `bson:"last_login,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *toDomainUser(mu))
	}
	return users, cursor.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountWithRole(ctx context.Context, role domain.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"roles": string(role)})
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":           user.Name,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"roles":          rolesToStrings(user.Roles),
		"email_verified": user.EmailVerified,
		"last_login":     user.LastLogin,
		"updated_at":     user.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roles", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Roles:         rolesToStrings(u.Roles),
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toDomainUser(mu mongoUser) *domain.User {
	roles := make([]domain.Role, len(mu.Roles))
	for i, r := range mu.Roles {
		roles[i] = domain.Role(r)
	}
	return &domain.User{
		ID:            mu.ID.Hex(),
		Name:          mu.Name,
		Email:         mu.Email,
		PasswordHash:  mu.PasswordHash,
		Roles:         roles,
		EmailVerified: mu.EmailVerified,
		LastLogin:     mu.LastLogin,
		CreatedAt:     mu.CreatedAt.UTC(),
		UpdatedAt:     mu.UpdatedAt.UTC(),
	}
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
