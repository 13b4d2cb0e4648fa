package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edison/video-portal/internal/core/domain"
)

const collectionVideos = "videos"

type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(collectionVideos)}
}

type mongoVideo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	URL         string             `bson:"url"`
	Tags        []string           `bson:"tags,omitempty"`
	Status      string             `bson:"status"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoVideo{
		Title:       video.Title,
		Description: video.Description,
		URL:         video.URL,
		Tags:        video.Tags,
		Status:      string(video.Status),
		OwnerID:     video.OwnerID,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	created := *video
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mv mongoVideo
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return toDomainVideo(mv), nil
}

func (r *VideoRepository) List(ctx context.Context) ([]domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	for cursor.Next(ctx) {
		var mv mongoVideo
		if err := cursor.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode video: %w", err)
		}
		videos = append(videos, *toDomainVideo(mv))
	}
	return videos, cursor.Err()
}

func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *VideoRepository) Update(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(video.ID)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       video.Title,
		"description": video.Description,
		"url":         video.URL,
		"tags":        video.Tags,
		"status":      string(video.Status),
		"updated_at":  video.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVideoNotFound
	}
	return video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the videos collection.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainVideo(mv mongoVideo) *domain.Video {
	return &domain.Video{
		ID:          mv.ID.Hex(),
		Title:       mv.Title,
		Description: mv.Description,
		URL:         mv.URL,
		Tags:        mv.Tags,
		Status:      domain.VideoStatus(mv.Status),
		OwnerID:     mv.OwnerID,
		CreatedAt:   mv.CreatedAt.UTC(),
		UpdatedAt:   mv.UpdatedAt.UTC(),
	}
}
