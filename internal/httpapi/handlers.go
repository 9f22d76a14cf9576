package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gamehub/party-games-backend/internal/config"
	"github.com/gamehub/party-games-backend/internal/game"
	"github.com/gamehub/party-games-backend/internal/hub"
	"github.com/gamehub/party-games-backend/internal/room"
)

const actorReplyTimeout = 5 * time.Second

type createRoomRequest struct {
	GameType string `json:"gameType"`
}

type createRoomResponse struct {
	RoomCode string `json:"roomCode"`
}

type roomInfoResponse struct {
	RoomCode    string `json:"roomCode"`
	GameType    string `json:"gameType"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	IsFull      bool   `json:"isFull"`
}

// CreateRoom allocates a room with a fresh code. Creation is explicit:
// joining or looking up an unknown code never creates one.
func CreateRoom(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}
		gameType, ok := game.ParseType(req.GameType)
		if !ok {
			http.Error(w, "unknown game type", http.StatusBadRequest)
			return
		}

		reply := make(chan hub.CreateResult, 1)
		h.Inbox() <- hub.CreateRoom{GameType: gameType, Reply: reply}

		select {
		case res := <-reply:
			if res.Err != nil {
				logger.Error("room creation failed", zap.Error(res.Err))
				http.Error(w, "failed to create room", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusCreated, createRoomResponse{RoomCode: res.Code})
		case <-time.After(actorReplyTimeout):
			http.Error(w, "registry unavailable", http.StatusServiceUnavailable)
		}
	}
}

// RoomInfo reports a room's occupancy, or 404 for unknown codes.
func RoomInfo(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "roomCode")

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		stateReply := make(chan room.View, 1)
		rm.Inbox() <- room.GetState{Reply: stateReply}
		select {
		case view := <-stateReply:
			writeJSON(w, http.StatusOK, roomInfoResponse{
				RoomCode:    view.Code,
				GameType:    string(view.GameType),
				PlayerCount: view.PlayerCount,
				MaxPlayers:  view.MaxPlayers,
				IsFull:      view.IsFull,
			})
		case <-time.After(actorReplyTimeout):
			// The room emptied between lookup and the state request.
			http.Error(w, "room not found", http.StatusNotFound)
		}
	}
}

func Ping(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": cfg.PingMessage})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
