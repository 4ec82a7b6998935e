package data

import (
	"context"
	"fmt"

	"github.com/jsonshare/jsonshare-backend/internal/conf"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/database"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	sharedata "github.com/jsonshare/jsonshare-backend/internal/share/data"
	"github.com/redis/go-redis/v9"
)

// Data holds the shared infrastructure resources
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	Logger      *logger.Logger
}

// NewData initializes all data resources and returns a cleanup function
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := db.AutoMigrate(&sharedata.ContentPO{}, &sharedata.FilePO{}); err != nil {
		return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	redisClient := initRedis(config)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Warn("failed to close database connection")
		}

		if redisClient != nil {
			redisClient.Close()
		}
	}

	return d, cleanup, nil
}

func initRedis(config *conf.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr(),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
}
