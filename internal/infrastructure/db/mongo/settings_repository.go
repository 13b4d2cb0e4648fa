package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edison/video-portal/internal/core/domain"
)

const collectionSettings = "settings"

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type mongoSetting struct {
	Category    string    `bson:"category"`
	Key         string    `bson:"key"`
	Value       any       `bson:"value"`
	Description string    `bson:"description,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (r *SettingsRepository) GetAll(ctx context.Context) ([]domain.Setting, error) {
	return r.find(ctx, bson.M{})
}

func (r *SettingsRepository) GetByCategory(ctx context.Context, category domain.SettingCategory) ([]domain.Setting, error) {
	return r.find(ctx, bson.M{"category": string(category)})
}

func (r *SettingsRepository) find(ctx context.Context, filter bson.M) ([]domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []domain.Setting
	for cursor.Next(ctx) {
		var ms mongoSetting
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode setting: %w", err)
		}
		settings = append(settings, domain.Setting{
			Category:    domain.SettingCategory(ms.Category),
			Key:         ms.Key,
			Value:       ms.Value,
			Description: ms.Description,
			UpdatedAt:   ms.UpdatedAt.UTC(),
		})
	}
	return settings, cursor.Err()
}

// Upsert writes the value for a (category, key) pair, creating it when
// missing. The description is only set on first insert.
func (r *SettingsRepository) Upsert(ctx context.Context, setting domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"category": string(setting.Category), "key": setting.Key}
	update := bson.M{
		"$set": bson.M{
			"value":      setting.Value,
			"updated_at": setting.UpdatedAt,
		},
	}
	if setting.Description != "" {
		update["$setOnInsert"] = bson.M{"description": setting.Description}
	}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert setting %s/%s: %w", setting.Category, setting.Key, err)
	}
	return nil
}

// SeedDefaults inserts each default only when its (category, key) pair does
// not exist yet. $setOnInsert keeps re-initialisation from clobbering
// values an admin already changed.
func (r *SettingsRepository) SeedDefaults(ctx context.Context, defaults []domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, setting := range defaults {
		filter := bson.M{"category": string(setting.Category), "key": setting.Key}
		update := bson.M{"$setOnInsert": mongoSetting{
			Category:    string(setting.Category),
			Key:         setting.Key,
			Value:       setting.Value,
			Description: setting.Description,
			UpdatedAt:   time.Now().UTC(),
		}}
		if _, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed setting %s/%s: %w", setting.Category, setting.Key, err)
		}
	}
	return nil
}

// EnsureIndexes creates the unique (category, key) index.
func (r *SettingsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
