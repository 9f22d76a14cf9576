package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gamehub/party-games-backend/internal/config"
	"github.com/gamehub/party-games-backend/internal/game"
	"github.com/gamehub/party-games-backend/internal/httpapi"
	"github.com/gamehub/party-games-backend/internal/hub"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	h := hub.NewHub(ctx, logger, game.DefaultRules())

	handler := httpapi.SetupRoutes(h, cfg, logger)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
