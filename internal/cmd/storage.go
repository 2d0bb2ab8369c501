package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cineticket/portal/internal/core/ports"
	"github.com/cineticket/portal/internal/infrastructure/storage/memory"
	mongostore "github.com/cineticket/portal/internal/infrastructure/storage/mongo"
	redisstore "github.com/cineticket/portal/internal/infrastructure/storage/redis"
	"github.com/cineticket/portal/internal/pkg/config"
)

type closeFunc func(context.Context) error

func noopClose(context.Context) error { return nil }

// openStorage connects the session storage driver selected by cfg.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStorage, closeFunc, error) {
	switch cfg.Session.Store {
	case config.StoreMemory:
		log.Warn().Msg("session storage is in-memory; sessions are lost on restart")
		return memory.New(), noopClose, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session storage: redis")
		return redisstore.NewStorage(client, cfg.Session.TTL), func(context.Context) error {
			return client.Close()
		}, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		storage := mongostore.NewStorage(db, cfg.Session.TTL)
		if err := storage.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("session storage: mongo")
		return storage, client.Disconnect, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}
