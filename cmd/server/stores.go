package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/readtrack/books-api/internal/api/handler"
	"github.com/readtrack/books-api/internal/core/ports"
	"github.com/readtrack/books-api/internal/infrastructure/db/memory"
	mongodb "github.com/readtrack/books-api/internal/infrastructure/db/mongo"
	redisdb "github.com/readtrack/books-api/internal/infrastructure/db/redis"
	"github.com/readtrack/books-api/internal/pkg/config"
)

const (
	connectAttempts = 5
	connectBackoff  = 500 * time.Millisecond
)

// stores holds the repositories picked by STORE_DRIVER plus whatever clients
// must be closed on shutdown.
type stores struct {
	users  ports.UserRepository
	books  ports.BookRepository
	audit  ports.AuditRepository
	health map[string]handler.Pinger

	closers []func(ctx context.Context) error
}

func (s *stores) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i](ctx)
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	s := &stores{health: map[string]handler.Pinger{}}

	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory stores, data is lost on restart")
		s.users = memory.NewUserRepository()
		s.books = memory.NewBookRepository()
		s.audit = memory.NewAuditRepository()
		return s, nil
	}

	client, db, err := connectMongo(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, client.Disconnect)
	s.health["mongo"] = handler.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		s.Close(ctx)
		return nil, err
	}
	s.books = mongodb.NewBookRepository(db)
	s.audit = mongodb.NewAuditRepository(db)
	s.users = mongodb.NewUserRepository(db)

	if cfg.StoreDriver == config.DriverRedis {
		rdb, err := connectRedis(ctx, cfg, log)
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
		s.health["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		s.users = redisdb.NewUserRepository(rdb)
	}

	return s, nil
}

func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	var (
		client *mongo.Client
		db     *mongo.Database
	)
	err := retry.Do(ctx, connectPolicy(), func(ctx context.Context) error {
		var err error
		client, db, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	return client, db, nil
}

func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	var client *goredis.Client
	err := retry.Do(ctx, connectPolicy(), func(ctx context.Context) error {
		var err error
		client, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return client, nil
}

func connectPolicy() retry.Backoff {
	return retry.WithMaxRetries(connectAttempts-1, retry.NewExponential(connectBackoff))
}
