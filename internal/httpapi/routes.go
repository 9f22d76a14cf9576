package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gamehub/party-games-backend/internal/config"
	"github.com/gamehub/party-games-backend/internal/hub"
	"github.com/gamehub/party-games-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, cfg config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/api/room/create", CreateRoom(h, logger))
	r.Get("/api/room/{roomCode}", RoomInfo(h))
	r.Get("/api/ping", Ping(cfg))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, cfg, logger))
	return r
}
