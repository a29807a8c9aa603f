package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"archatara/internal/domain/settings"
)

// SettingsCollection is the fixed collection name for venue settings.
const SettingsCollection = "archatara_settings"

var ErrSettingsMissing = errors.New("mongo: settings document not found")

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database, prefix string) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(prefix + SettingsCollection)}
}

// Load fetches the singleton settings document.
func (r *SettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	var doc settingsDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": settings.DocumentKey}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return settings.Settings{}, ErrSettingsMissing
		}
		return settings.Settings{}, err
	}
	return settings.Settings{
		WeekendOnlyMode:        doc.WeekendOnly,
		AdminNotificationEmail: doc.AdminEmail,
	}, nil
}

// Save upserts the full settings object under the fixed key.
func (r *SettingsRepository) Save(ctx context.Context, value settings.Settings) error {
	doc := settingsDocument{
		ID:          settings.DocumentKey,
		WeekendOnly: value.WeekendOnlyMode,
		AdminEmail:  value.AdminNotificationEmail,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": settings.DocumentKey}, doc, opts)
	return err
}

type settingsDocument struct {
	ID          string `bson:"_id"`
	WeekendOnly bool   `bson:"weekendOnly"`
	AdminEmail  string `bson:"adminEmail"`
}
