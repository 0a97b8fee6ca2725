package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/Tnmoxa/epg-task/internal/cache"
	"github.com/Tnmoxa/epg-task/internal/config"
	"github.com/Tnmoxa/epg-task/internal/notify"
	"github.com/Tnmoxa/epg-task/internal/storage"
)

// AppContext holds shared dependencies (DB, Redis, Notifier, Logger, etc.).
// Collaborators are constructed once and passed in explicitly; nothing here
// is a module-level global. Avatars and RedisCache may be nil when the
// corresponding collaborator is not configured, both are optional.
type AppContext struct {
	Cfg        *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Avatars    storage.BlobStore
	Notifier   notify.Notifier
	Logger     *slog.Logger
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, avatars storage.BlobStore, notifier notify.Notifier, logger *slog.Logger) *AppContext {
	return &AppContext{
		Cfg:        cfg,
		DB:         db,
		RedisCache: rdb,
		Avatars:    avatars,
		Notifier:   notifier,
		Logger:     logger,
	}
}
