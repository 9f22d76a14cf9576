// Package room runs one actor goroutine per live room. The actor is
// the sole writer of the player set, the game phase and the scores;
// joins, leaves, inbound events and timer ticks all arrive as messages
// on its inbox.
package room

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gamehub/party-games-backend/internal/game"
	"github.com/gamehub/party-games-backend/internal/protocol"
)

const (
	maxUsernameLen = 24
	inboxSize      = 64
	tickInterval   = time.Second
)

type Msg interface{ isRoomMsg() }

type Join struct {
	PlayerID string
	Username string
	Outbox   chan protocol.Message
	Reply    chan JoinResult
}

type JoinResult struct {
	OK     bool
	Reason string
}

type Leave struct{ PlayerID string }

// Dispatch carries one post-join client frame into the actor.
type Dispatch struct {
	PlayerID string
	Frame    protocol.Message
}

// Tick forces a deadline check. The actor's own ticker sends these
// once per second; tests inject them with an arbitrary clock.
type Tick struct{ Now time.Time }

type GetState struct{ Reply chan View }

type Shutdown struct{}

func (Join) isRoomMsg()     {}
func (Leave) isRoomMsg()    {}
func (Dispatch) isRoomMsg() {}
func (Tick) isRoomMsg()     {}
func (GetState) isRoomMsg() {}
func (Shutdown) isRoomMsg() {}

// View is a consistent snapshot of room state for lookups and tests.
type View struct {
	Code        string
	GameType    game.Type
	Phase       int
	PlayerCount int
	MaxPlayers  int
	IsFull      bool
	Finished    bool
	CreatedAt   time.Time
	Deadline    time.Time
	Scores      map[string]int
	Usernames   map[string]string
}

type player struct {
	id       string
	username string
	score    int
	ready    bool
	role     string
	outbox   chan protocol.Message
}

type Room struct {
	code      string
	variant   game.Variant
	logger    *zap.Logger
	inbox     chan Msg
	players   map[string]*player
	order     []string // join order
	phase     int      // 0 lobby, 1..Phases() play, Phases()+1 finished
	deadline  time.Time
	createdAt time.Time
	onEmpty   func(code string)
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewRoom starts the actor. onEmpty is called exactly once when the
// last player leaves, so the registry can drop the code.
func NewRoom(parent context.Context, logger *zap.Logger, code string, v game.Variant, onEmpty func(code string)) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		code:      code,
		variant:   v,
		logger:    logger.With(zap.String("room", code), zap.String("game", string(v.Type()))),
		inbox:     make(chan Msg, inboxSize),
		players:   map[string]*player{},
		createdAt: time.Now(),
		onEmpty:   onEmpty,
		ctx:       ctx,
		cancel:    cancel,
	}
	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	// A broken invariant takes down this room, never the process.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("room session aborted", zap.Any("panic", rec))
			r.shutdown()
			if r.onEmpty != nil {
				r.onEmpty(r.code)
			}
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case now := <-ticker.C:
			r.handleTick(now)

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)
			case Leave:
				if r.handleLeave(msg.PlayerID) {
					return
				}
			case Dispatch:
				r.handleDispatch(msg)
			case Tick:
				r.handleTick(msg.Now)
			case GetState:
				msg.Reply <- r.view()
			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) {
	if reason := r.joinReason(msg); reason != "" {
		msg.Reply <- JoinResult{Reason: reason}
		return
	}

	r.players[msg.PlayerID] = &player{
		id:       msg.PlayerID,
		username: strings.TrimSpace(msg.Username),
		outbox:   msg.Outbox,
	}
	r.order = append(r.order, msg.PlayerID)
	msg.Reply <- JoinResult{OK: true}

	r.logger.Info("player joined",
		zap.String("player", msg.PlayerID),
		zap.Int("count", len(r.players)))

	// Full list so clients resync membership without replay.
	r.broadcast(protocol.Outbound(protocol.TypePlayerJoined, r.code, protocol.RoomUpdate{
		PlayerCount: len(r.players),
		Players:     r.playerList(),
	}), "", "")
}

func (r *Room) joinReason(msg Join) string {
	if r.phase > r.variant.Phases() {
		return "game already finished"
	}
	if len(r.players) >= r.variant.MaxPlayers() {
		return "room is full"
	}
	name := strings.TrimSpace(msg.Username)
	if name == "" || len(name) > maxUsernameLen {
		return "invalid username"
	}
	for _, p := range r.players {
		if strings.EqualFold(p.username, name) {
			return "username already taken"
		}
	}
	return ""
}

// handleLeave removes a player; reports true when the room emptied and
// the actor must stop. Idempotent: a second leave for the same id is a
// no-op.
func (r *Room) handleLeave(playerID string) bool {
	p, ok := r.players[playerID]
	if !ok {
		return false
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	close(p.outbox)

	r.logger.Info("player left",
		zap.String("player", playerID),
		zap.Int("count", len(r.players)))

	if len(r.players) == 0 {
		if r.onEmpty != nil {
			r.onEmpty(r.code)
		}
		r.shutdown()
		return true
	}

	r.broadcast(protocol.Outbound(protocol.TypePlayerLeft, r.code, protocol.RoomUpdate{
		PlayerCount: len(r.players),
		Players:     r.playerList(),
	}), "", "")

	if t := r.variant.PlayerLeft(playerID, r.phase, append([]string(nil), r.order...)); t != nil {
		r.applyTransition(*t)
	}
	r.syncRoles()
	return false
}

func (r *Room) handleDispatch(msg Dispatch) {
	if _, ok := r.players[msg.PlayerID]; !ok {
		r.logger.Debug("event from unknown player", zap.String("player", msg.PlayerID))
		return
	}

	switch msg.Frame.Type {
	case protocol.TypeGameStart:
		r.handleGameStart(msg.PlayerID)
		return
	case protocol.TypeChat:
		r.handleChat(msg)
		return
	}

	ev, err := protocol.ToGameEvent(msg.Frame)
	if err != nil {
		r.logger.Debug("dropping frame", zap.String("type", msg.Frame.Type), zap.Error(err))
		return
	}
	if r.phase < 1 || r.phase > r.variant.Phases() {
		r.logger.Debug("game event outside play", zap.String("type", msg.Frame.Type))
		return
	}
	if ev.Phase != 0 && ev.Phase != r.phase {
		// Benign race: the client had not seen the transition yet.
		r.logger.Debug("stale event",
			zap.String("type", msg.Frame.Type),
			zap.Int("eventPhase", ev.Phase),
			zap.Int("phase", r.phase))
		return
	}
	ev.Remaining = max(time.Until(r.deadline), 0)

	t, err := r.variant.OnEvent(r.phase, msg.PlayerID, ev)
	if err != nil {
		r.logger.Debug("event rejected",
			zap.String("player", msg.PlayerID),
			zap.String("type", msg.Frame.Type),
			zap.Error(err))
		return
	}
	r.applyTransition(t)
}

func (r *Room) handleGameStart(playerID string) {
	if r.phase != 0 {
		r.logger.Debug("game-start while running", zap.String("player", playerID))
		return
	}
	if len(r.players) < game.MinPlayersToStart {
		r.logger.Debug("game-start with too few players", zap.Int("count", len(r.players)))
		return
	}
	r.logger.Info("game starting", zap.Int("players", len(r.players)))
	r.broadcast(protocol.Outbound(protocol.TypeGameStart, r.code, struct{}{}), "", "")
	r.advance()
}

func (r *Room) handleChat(msg Dispatch) {
	var chat protocol.Chat
	if err := decodeData(msg.Frame.Data, &chat); err != nil || strings.TrimSpace(chat.Message) == "" {
		r.logger.Debug("dropping chat frame", zap.String("player", msg.PlayerID))
		return
	}
	relay := protocol.Outbound(protocol.TypeChat, r.code, chat)
	relay.PlayerID = msg.PlayerID
	r.broadcast(relay, "", "")
}

func (r *Room) handleTick(now time.Time) {
	if r.phase < 1 || r.phase > r.variant.Phases() || r.deadline.IsZero() {
		return
	}
	if now.Before(r.deadline) {
		return
	}
	r.applyTransition(r.variant.OnExpiry(r.phase))
}

func (r *Room) applyTransition(t game.Transition) {
	for id, delta := range t.Deltas {
		if p, ok := r.players[id]; ok {
			p.score = max(p.score+delta, 0)
		}
	}
	for _, n := range t.Notices {
		r.broadcastNotice(n)
	}
	if t.Advance {
		r.advance()
	}
}

// advance leaves the current phase. From the lobby it enters phase 1;
// past the last play phase it finishes the game.
func (r *Room) advance() {
	if r.phase >= 1 {
		r.broadcast(protocol.Outbound(protocol.TypePhaseEnd, r.code, protocol.PhaseEnd{
			Phase:  r.phase,
			Scores: r.scores(),
		}), "", "")
	}
	// A fan-out above (or one earlier in this transition) can evict the
	// last member, which already tore the room down. Nobody is left to
	// enter the next phase.
	if len(r.players) == 0 {
		return
	}
	r.phase++

	if r.phase > r.variant.Phases() {
		r.deadline = time.Time{}
		r.logger.Info("game over")
		r.broadcast(protocol.Outbound(protocol.TypeGameOver, r.code, protocol.GameOver{
			Scores: r.scores(),
		}), "", "")
		return
	}

	enter := r.variant.OnEnter(r.phase, append([]string(nil), r.order...))
	r.deadline = time.Now().Add(enter.Duration)
	r.broadcast(protocol.Outbound(protocol.TypePhaseStart, r.code, protocol.PhaseStart{
		Phase:    r.phase,
		Deadline: r.deadline.UnixMilli(),
		Payload:  enter.Payload,
	}), "", "")
	for _, n := range enter.Notices {
		r.broadcastNotice(n)
	}
	r.syncRoles()
}

func (r *Room) broadcastNotice(n game.Notice) {
	r.broadcast(protocol.Outbound(n.Type, r.code, n.Data), n.Exclude, n.Only)
}

// broadcast fans a frame out to every member, minus exclude, or to
// only one. Sends never block: a member whose outbox is full is
// treated as disconnected and removed, without holding up the rest.
func (r *Room) broadcast(msg protocol.Message, exclude, only string) {
	var dropped []string
	for _, id := range r.order {
		if exclude != "" && id == exclude {
			continue
		}
		if only != "" && id != only {
			continue
		}
		p := r.players[id]
		select {
		case p.outbox <- msg:
		default:
			r.logger.Warn("outbox full, dropping player", zap.String("player", id))
			dropped = append(dropped, id)
		}
	}
	for _, id := range dropped {
		if r.handleLeave(id) {
			return
		}
	}
}

// syncRoles mirrors variant role assignments onto the player records.
func (r *Room) syncRoles() {
	d, ok := r.variant.(*game.Drawing)
	if !ok {
		return
	}
	for _, p := range r.players {
		if p.id == d.Drawer() && r.phase >= 1 && r.phase <= r.variant.Phases() {
			p.role = "drawer"
		} else {
			p.role = ""
		}
	}
}

func (r *Room) shutdown() {
	for id, p := range r.players {
		select {
		case p.outbox <- protocol.Outbound(protocol.TypeRoomClosed, r.code, struct{}{}):
		default:
		}
		close(p.outbox)
		delete(r.players, id)
	}
	r.order = nil
	r.cancel()
}

func (r *Room) view() View {
	return View{
		Code:        r.code,
		GameType:    r.variant.Type(),
		Phase:       r.phase,
		PlayerCount: len(r.players),
		MaxPlayers:  r.variant.MaxPlayers(),
		IsFull:      len(r.players) >= r.variant.MaxPlayers(),
		Finished:    r.phase > r.variant.Phases(),
		CreatedAt:   r.createdAt,
		Deadline:    r.deadline,
		Scores:      r.scores(),
		Usernames:   r.usernames(),
	}
}

func (r *Room) playerList() []protocol.PlayerInfo {
	list := make([]protocol.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		list = append(list, protocol.PlayerInfo{
			ID:       p.id,
			Username: p.username,
			Score:    p.score,
			Ready:    p.ready,
			Role:     p.role,
		})
	}
	return list
}

func (r *Room) scores() map[string]int {
	s := make(map[string]int, len(r.players))
	for id, p := range r.players {
		s[id] = p.score
	}
	return s
}

func (r *Room) usernames() map[string]string {
	u := make(map[string]string, len(r.players))
	for id, p := range r.players {
		u[id] = p.username
	}
	return u
}

func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(raw, v)
}
