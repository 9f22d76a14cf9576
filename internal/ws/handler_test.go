package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/gamehub/party-games-backend/internal/config"
	"github.com/gamehub/party-games-backend/internal/game"
	"github.com/gamehub/party-games-backend/internal/hub"
	"github.com/gamehub/party-games-backend/internal/protocol"
	"github.com/gamehub/party-games-backend/internal/room"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.JoinGrace = 300 * time.Millisecond
	return cfg
}

// newGateway serves the handler over a real listener and returns the
// hub plus the ws:// URL to dial.
func newGateway(t *testing.T, cfg config.Config) (*hub.Hub, string) {
	t.Helper()
	h := hub.NewHub(context.Background(), zap.NewNop(), game.DefaultRules())
	srv := httptest.NewServer(Handler(h, cfg, zap.NewNop()))
	t.Cleanup(srv.Close)
	return h, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func createRoom(t *testing.T, h *hub.Hub, typ game.Type) string {
	t.Helper()
	reply := make(chan hub.CreateResult, 1)
	h.Inbox() <- hub.CreateRoom{GameType: typ, Reply: reply}
	select {
	case res := <-reply:
		require.NoError(t, res.Err)
		return res.Code
	case <-time.After(time.Second):
		t.Fatal("timed out creating room")
		return ""
	}
}

func send(t *testing.T, conn *websocket.Conn, msg protocol.Message) {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	sendRaw(t, conn, payload)
}

func sendRaw(t *testing.T, conn *websocket.Conn, payload []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, payload))
}

func sendJoin(t *testing.T, conn *websocket.Conn, code, username string) {
	t.Helper()
	data, err := json.Marshal(protocol.JoinRoom{RoomCode: code, Username: username})
	require.NoError(t, err)
	send(t, conn, protocol.Message{Type: protocol.TypeJoinRoom, Data: data})
}

// recvWire drains frames off the socket until one of the wanted type
// arrives.
func recvWire(t *testing.T, conn *websocket.Conn, typ string) protocol.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err, "waiting for frame %q", typ)
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		if msg.Type == typ {
			return msg
		}
	}
}

// recvNoWire asserts no frame of the given type arrives within the
// window. A read error (timeout or close) ends the watch.
func recvNoWire(t *testing.T, conn *websocket.Conn, typ string, within time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), within)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		require.NotEqual(t, typ, msg.Type, "unexpected %q frame", typ)
	}
}

func TestHandler_NoJoinWithinGraceClosesConnection(t *testing.T) {
	_, url := newGateway(t, testConfig())
	conn := dial(t, url)

	// Send nothing: the server must hang up on its own.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}

func TestHandler_FirstFrameMustBeJoinRoom(t *testing.T) {
	_, url := newGateway(t, testConfig())
	conn := dial(t, url)

	data, err := json.Marshal(protocol.Chat{Message: "hello?"})
	require.NoError(t, err)
	send(t, conn, protocol.Message{Type: protocol.TypeChat, Data: data})

	msg := recvWire(t, conn, protocol.TypeJoinError)
	var je protocol.JoinError
	require.NoError(t, json.Unmarshal(msg.Data, &je))
	assert.Equal(t, "expected join-room", je.Message)
}

func TestHandler_UnknownRoomRejected(t *testing.T) {
	_, url := newGateway(t, testConfig())
	conn := dial(t, url)

	sendJoin(t, conn, "ZZZZ99", "alice")

	msg := recvWire(t, conn, protocol.TypeJoinError)
	var je protocol.JoinError
	require.NoError(t, json.Unmarshal(msg.Data, &je))
	assert.Equal(t, "room not found", je.Message)
}

func TestHandler_ServerIssuesPlayerIdentity(t *testing.T) {
	h, url := newGateway(t, testConfig())
	code := createRoom(t, h, game.TypeQuiz)
	conn := dial(t, url)

	// A spoofed PlayerID on the join frame must be ignored.
	data, err := json.Marshal(protocol.JoinRoom{RoomCode: code, Username: "alice"})
	require.NoError(t, err)
	send(t, conn, protocol.Message{Type: protocol.TypeJoinRoom, PlayerID: "spoofed", Data: data})

	var js protocol.JoinSuccess
	msg := recvWire(t, conn, protocol.TypeJoinSuccess)
	require.NoError(t, json.Unmarshal(msg.Data, &js))
	assert.NotEqual(t, "spoofed", js.PlayerID)
	_, err = uuid.Parse(js.PlayerID)
	assert.NoError(t, err, "player id is server-issued")

	// Post-join frames carry the server identity too.
	chat, err := json.Marshal(protocol.Chat{Message: "hi"})
	require.NoError(t, err)
	send(t, conn, protocol.Message{Type: protocol.TypeChat, PlayerID: "someone-else", Data: chat})

	relay := recvWire(t, conn, protocol.TypeChat)
	assert.Equal(t, js.PlayerID, relay.PlayerID)
}

func TestHandler_DisconnectReportsSingleLeave(t *testing.T) {
	h, url := newGateway(t, testConfig())
	code := createRoom(t, h, game.TypeQuiz)

	alice := dial(t, url)
	sendJoin(t, alice, code, "alice")
	recvWire(t, alice, protocol.TypeJoinSuccess)

	bob := dial(t, url)
	sendJoin(t, bob, code, "bob")
	recvWire(t, bob, protocol.TypeJoinSuccess)
	recvWire(t, alice, protocol.TypePlayerJoined)

	require.NoError(t, bob.Close(websocket.StatusNormalClosure, "done"))

	recvWire(t, alice, protocol.TypePlayerLeft)
	recvNoWire(t, alice, protocol.TypePlayerLeft, 300*time.Millisecond)
}

func TestHandler_MalformedFrameWarnsOnce(t *testing.T) {
	h, url := newGateway(t, testConfig())
	code := createRoom(t, h, game.TypeQuiz)
	conn := dial(t, url)
	sendJoin(t, conn, code, "alice")
	recvWire(t, conn, protocol.TypeJoinSuccess)

	sendRaw(t, conn, []byte("not json"))
	sendRaw(t, conn, []byte("still not json"))
	chat, err := json.Marshal(protocol.Chat{Message: "still here"})
	require.NoError(t, err)
	send(t, conn, protocol.Message{Type: protocol.TypeChat, Data: chat})

	// The warning is written before the chat is even dispatched, so
	// draining up to the relay sees every warning there will be — and
	// the relay itself proves the connection survived the garbage.
	warnings := 0
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		if msg.Type == protocol.TypeError {
			warnings++
			continue
		}
		if msg.Type == protocol.TypeChat {
			break
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestHandler_JoinToStoppedRoomTimesOut(t *testing.T) {
	rm := room.NewRoom(context.Background(), zap.NewNop(), "ABC123", game.NewQuiz(game.DefaultRules()), nil)

	reply := make(chan room.JoinResult, 1)
	rm.Inbox() <- room.Join{
		PlayerID: "p1",
		Username: "alice",
		Outbox:   make(chan protocol.Message, 8),
		Reply:    reply,
	}
	select {
	case res := <-reply:
		require.True(t, res.OK)
	case <-time.After(time.Second):
		t.Fatal("timed out joining")
	}

	// Last player out: the actor stops, and this second join is queued
	// behind the leave so nobody ever answers it.
	rm.Inbox() <- room.Leave{PlayerID: "p1"}

	start := time.Now()
	_, ok := joinRoom(rm, room.Join{
		PlayerID: "p2",
		Username: "bob",
		Outbox:   make(chan protocol.Message, 8),
		Reply:    make(chan room.JoinResult, 1),
	}, 200*time.Millisecond)
	require.False(t, ok, "a stopped room must not accept the join")
	assert.Less(t, time.Since(start), 2*time.Second, "the wait is bounded")
}
