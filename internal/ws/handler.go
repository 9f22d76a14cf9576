// Package ws is the connection gateway: it upgrades HTTP requests,
// runs the join handshake and pumps frames between one websocket and
// one room for the life of the connection.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"

	"github.com/gamehub/party-games-backend/internal/config"
	"github.com/gamehub/party-games-backend/internal/hub"
	"github.com/gamehub/party-games-backend/internal/protocol"
	"github.com/gamehub/party-games-backend/internal/room"
)

const (
	outboxSize   = 32
	writeTimeout = 3 * time.Second
	idleTimeout  = 5 * time.Minute
	// Stroke relays are the chattiest legitimate traffic; anything
	// past this is a misbehaving client.
	inboundRate  = rate.Limit(50)
	inboundBurst = 100
)

func Handler(h *hub.Hub, cfg config.Config, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		conn.SetReadLimit(cfg.ReadLimit)
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		// The first frame must be join-room, within the grace period.
		joinCtx, cancel := context.WithTimeout(r.Context(), cfg.JoinGrace)
		_, data, err := conn.Read(joinCtx)
		cancel()
		if err != nil {
			conn.Close(websocket.StatusPolicyViolation, "no join within grace period")
			return
		}

		frame, err := protocol.Decode(data)
		if err != nil || frame.Type != protocol.TypeJoinRoom {
			writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeJoinError, "",
				protocol.JoinError{Message: "expected join-room"}))
			return
		}
		var join protocol.JoinRoom
		if err := json.Unmarshal(frame.Data, &join); err != nil {
			writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeJoinError, "",
				protocol.JoinError{Message: "malformed join-room"}))
			return
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: join.RoomCode, Reply: reply}
		rm := <-reply
		if rm == nil {
			writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeJoinError, join.RoomCode,
				protocol.JoinError{Message: "room not found"}))
			return
		}

		playerID := uuid.NewString()
		outbox := make(chan protocol.Message, outboxSize)
		res, ok := joinRoom(rm, room.Join{
			PlayerID: playerID,
			Username: join.Username,
			Outbox:   outbox,
			Reply:    make(chan room.JoinResult, 1),
		}, cfg.JoinGrace)
		if !ok {
			writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeJoinError, join.RoomCode,
				protocol.JoinError{Message: "room not found"}))
			return
		}
		if !res.OK {
			writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeJoinError, join.RoomCode,
				protocol.JoinError{Message: res.Reason}))
			return
		}

		log := logger.With(zap.String("room", join.RoomCode), zap.String("player", playerID))
		log.Info("connection joined")

		// The read-error and close paths can both fire for one socket;
		// this makes sure the room sees a single leave.
		var leaveOnce sync.Once
		leave := func() {
			leaveOnce.Do(func() {
				select {
				case rm.Inbox() <- room.Leave{PlayerID: playerID}:
				case <-time.After(writeTimeout):
					log.Warn("leave not delivered, room already gone")
				}
			})
		}
		defer leave()

		success := protocol.Outbound(protocol.TypeJoinSuccess, join.RoomCode,
			protocol.JoinSuccess{PlayerID: playerID, RoomCode: join.RoomCode})
		if !writeFrame(r.Context(), conn, success) {
			return
		}

		// Writer: drains the room's fan-out queue. The room closing the
		// outbox (shutdown or forced drop) ends it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range outbox {
				if !writeFrame(writeCtx, conn, msg) {
					return
				}
			}
			conn.Close(websocket.StatusNormalClosure, "room closed")
		}()

		limiter := rate.NewLimiter(inboundRate, inboundBurst)
		warned := false
		for {
			readCtx, cancel := context.WithTimeout(r.Context(), idleTimeout)
			_, data, err := conn.Read(readCtx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Debug("connection closed")
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			if !limiter.Allow() {
				continue
			}

			frame, err := protocol.Decode(data)
			if err != nil {
				if !warned {
					warned = true
					writeFrame(r.Context(), conn, protocol.Outbound(protocol.TypeError, join.RoomCode,
						protocol.ErrorData{Message: "malformed frame"}))
				}
				continue
			}
			if frame.Type == protocol.TypeJoinRoom {
				continue // already bound to a room
			}

			// The connection, not the client, is the identity.
			frame.PlayerID = playerID
			select {
			case rm.Inbox() <- room.Dispatch{PlayerID: playerID, Frame: frame}:
			case <-r.Context().Done():
				return
			}
		}
	}
}

// joinRoom delivers the join and waits for the actor's verdict, both
// within timeout. A room whose last player left between the registry
// lookup and this send has already stopped and never answers, so the
// wait must be bounded.
func joinRoom(rm *room.Room, msg room.Join, timeout time.Duration) (room.JoinResult, bool) {
	deadline := time.After(timeout)
	select {
	case rm.Inbox() <- msg:
	case <-deadline:
		return room.JoinResult{}, false
	}
	select {
	case res := <-msg.Reply:
		return res, true
	case <-deadline:
		return room.JoinResult{}, false
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, msg protocol.Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		return false
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, payload) == nil
}
