package main

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/api"
	"city-fetch/internal/city_fetch/helper"
	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/scheduler"
	"city-fetch/internal/middleware/logger"
	"city-fetch/pkg/mongodb"
)

func main() {

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	ctx := context.Background()

	log.Info("Starting City Fetch Service...")

	cfg, err := mongodb.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	stores := helper.MustMongo(
		ctx,
		cfg.Mongo.Host,
		cfg.Mongo.DBName,
		cfg.Mongo.Username,
		cfg.Mongo.Password,
		cfg.Mongo.AuthSource,
	)

	if err := stores.SeedSources(ctx, model.DefaultSources()); err != nil {
		panic(err)
	}

	worker := &scheduler.Worker{
		Log:      log,
		Stores:   stores,
		Client:   resty.New().SetTimeout(30 * time.Second),
		Location: helper.LoadTimezone(cfg.Timezone),
	}
	go worker.Run(context.Background())

	srv := &api.Server{Stores: stores}
	r := srv.Router()
	_ = r.SetTrustedProxies(nil)
	log.Info("City Fetch Service is running", zap.String("address", cfg.Server.Listen))
	_ = r.Run(cfg.Server.Listen)
}
