package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub/party-games-backend/internal/game"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid join", `{"type":"join-room","data":{"roomCode":"ABC123","username":"alice"}}`, false},
		{"not json", `{{{`, true},
		{"missing type", `{"data":{}}`, true},
		{"empty object", `{}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToGameEvent(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want game.Event
	}{
		{
			name: "submit-answer",
			msg:  Message{Type: "submit-answer", Data: json.RawMessage(`{"question":3,"answer":1}`)},
			want: game.Event{Type: game.EvtSubmitAnswer, Phase: 3, Answer: 1},
		},
		{
			name: "guess with round",
			msg:  Message{Type: "guess", Data: json.RawMessage(`{"guess":"cat","round":2}`)},
			want: game.Event{Type: game.EvtGuess, Phase: 2, Guess: "cat"},
		},
		{
			name: "guess without round defaults to current phase",
			msg:  Message{Type: "guess", Data: json.RawMessage(`{"guess":"cat"}`)},
			want: game.Event{Type: game.EvtGuess, Guess: "cat"},
		},
		{
			name: "solve",
			msg:  Message{Type: "solve", Data: json.RawMessage(`{"enigma":5}`)},
			want: game.Event{Type: game.EvtSolve, Phase: 5},
		},
		{
			name: "request-hint",
			msg:  Message{Type: "request-hint"},
			want: game.Event{Type: game.EvtRequestHint},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToGameEvent(tc.msg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToGameEvent_StrokePassesPayloadThrough(t *testing.T) {
	raw := json.RawMessage(`{"points":[[0,0],[4,2]],"color":"#fff"}`)
	got, err := ToGameEvent(Message{Type: "drawing-stroke", Data: raw})
	require.NoError(t, err)
	assert.Equal(t, raw, got.Stroke)
}

func TestToGameEvent_Rejections(t *testing.T) {
	_, err := ToGameEvent(Message{Type: "chat-message"})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = ToGameEvent(Message{Type: "submit-answer", Data: json.RawMessage(`"nope"`)})
	assert.Error(t, err)
}

func TestOutbound_StampsEmissionTime(t *testing.T) {
	msg := Outbound(TypePlayerJoined, "ABC123", RoomUpdate{PlayerCount: 1})
	assert.Equal(t, TypePlayerJoined, msg.Type)
	assert.Equal(t, "ABC123", msg.RoomCode)
	assert.NotZero(t, msg.Timestamp)

	var update RoomUpdate
	require.NoError(t, json.Unmarshal(msg.Data, &update))
	assert.Equal(t, 1, update.PlayerCount)
}
