package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/widescope/api/internal/repository"
	"github.com/widescope/api/pkg/config"
	"github.com/widescope/api/pkg/database"
	"github.com/widescope/api/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, err := database.OpenMongo(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal("user index creation failed", zap.Error(err))
	}
	if err := repository.EnsureProjectIndexes(ctx, db); err != nil {
		log.Fatal("project index creation failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "indexes ensured")
}
