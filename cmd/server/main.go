package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"

	"github.com/Tnmoxa/epg-task/internal/app"
	"github.com/Tnmoxa/epg-task/internal/cache"
	"github.com/Tnmoxa/epg-task/internal/config"
	"github.com/Tnmoxa/epg-task/internal/db"
	"github.com/Tnmoxa/epg-task/internal/logger"
	"github.com/Tnmoxa/epg-task/internal/notify"
	"github.com/Tnmoxa/epg-task/internal/server"
	"github.com/Tnmoxa/epg-task/internal/service/clients"
	"github.com/Tnmoxa/epg-task/internal/service/listing"
	"github.com/Tnmoxa/epg-task/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.New()

	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis. The distance cache is advisory: an unreachable Redis is
	// logged and the server keeps going.
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Warn("redis unreachable, distance caching disabled", "err", err)
	}

	// Avatar storage is optional in local setups
	var avatars storage.BlobStore
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewAvatarStore(context.Background(), cfg)
		if err != nil {
			log.Error("failed to init avatar store", "err", err)
			return
		}
		avatars = store
	} else {
		log.Warn("minio not configured, avatars stored by filename only")
	}

	// Worker pool for fire-and-forget notification delivery
	pool, err := ants.NewPool(64)
	if err != nil {
		log.Error("failed to init worker pool", "err", err)
		return
	}
	defer pool.Release()

	notifier := notify.NewMailer(cfg, pool, log)

	appCtx := app.New(cfg, database, redisCache, avatars, notifier, log)

	registrars := []server.Registrar{
		clients.NewRegistrar(appCtx),
		listing.NewRegistrar(appCtx),
	}

	if cfg.App.Env == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, log, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
