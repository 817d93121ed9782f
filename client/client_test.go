package client

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDispatcher_Events(t *testing.T) {
	var d Dispatcher

	var identity IdentityEvent
	var roster RosterEvent
	var snapshot SnapshotEvent
	var stroke StrokeEvent
	var undo UndoEvent
	var redo RedoEvent
	var cursor CursorEvent
	var chat ChatEvent
	var errs []error

	d.SetOnIdentity(func(ev IdentityEvent) { identity = ev })
	d.SetOnRoster(func(ev RosterEvent) { roster = ev })
	d.SetOnSnapshot(func(ev SnapshotEvent) { snapshot = ev })
	d.SetOnStroke(func(ev StrokeEvent) { stroke = ev })
	d.SetOnUndo(func(ev UndoEvent) { undo = ev })
	d.SetOnRedo(func(ev RedoEvent) { redo = ev })
	d.SetOnCursor(func(ev CursorEvent) { cursor = ev })
	d.SetOnChat(func(ev ChatEvent) { chat = ev })
	d.SetOnError(func(err error) { errs = append(errs, err) })

	d.Dispatch(Envelope{Type: msgIdentity, Payload: rawPayload(t, IdentityEvent{UserID: "u1", Color: "#e6194b"})})
	d.Dispatch(Envelope{Type: msgRoster, Payload: rawPayload(t, RosterEvent{Users: []User{{UserID: "u1"}}})})
	d.Dispatch(Envelope{Type: msgSnapshot, Payload: rawPayload(t, SnapshotEvent{Strokes: map[string][]Stroke{"u1": {{ID: "s1"}}}})})
	d.Dispatch(Envelope{Type: msgStroke, Payload: rawPayload(t, StrokeEvent{UserID: "u2", Stroke: Stroke{ID: "s2"}})})
	d.Dispatch(Envelope{Type: msgUndo, Payload: rawPayload(t, UndoEvent{UserID: "u1", StrokeID: "s1"})})
	d.Dispatch(Envelope{Type: msgRedo, Payload: rawPayload(t, RedoEvent{UserID: "u1", Stroke: Stroke{ID: "s1"}})})
	d.Dispatch(Envelope{Type: msgCursor, Payload: rawPayload(t, CursorEvent{UserID: "u2", X: 4, Y: 5})})
	d.Dispatch(Envelope{Type: msgChat, Payload: rawPayload(t, ChatEvent{UserID: "u1", Message: "hi"})})

	assert.Equal(t, "u1", identity.UserID)
	assert.Len(t, roster.Users, 1)
	assert.Len(t, snapshot.Strokes["u1"], 1)
	assert.Equal(t, "s2", stroke.Stroke.ID)
	assert.Equal(t, "s1", undo.StrokeID)
	assert.Equal(t, "s1", redo.Stroke.ID)
	assert.Equal(t, 4.0, cursor.X)
	assert.Equal(t, "hi", chat.Message)
	assert.Empty(t, errs)
}

func TestDispatcher_FailureEventsBecomeErrors(t *testing.T) {
	var d Dispatcher
	var errs []error
	d.SetOnError(func(err error) { errs = append(errs, err) })

	d.Dispatch(Envelope{Type: msgUndoFailed, Payload: rawPayload(t, FailureEvent{Reason: "no active stroke to undo"})})
	d.Dispatch(Envelope{Type: msgRedoFailed, Payload: rawPayload(t, FailureEvent{Reason: "nothing to redo"})})

	require.Len(t, errs, 2)
	assert.Equal(t, ErrorUndoFailed, CodeOf(errs[0]))
	assert.Equal(t, ErrorRedoFailed, CodeOf(errs[1]))
	assert.Contains(t, errs[0].Error(), "no active stroke")
}

func TestDispatcher_BadPayloadFiresSerializationError(t *testing.T) {
	var d Dispatcher
	var errs []error
	d.SetOnStroke(func(StrokeEvent) { t.Fatal("callback must not fire") })
	d.SetOnError(func(err error) { errs = append(errs, err) })

	d.Dispatch(Envelope{Type: msgStroke, Payload: json.RawMessage(`"not an object`)})

	require.Len(t, errs, 1)
	assert.Equal(t, ErrorSerialization, CodeOf(errs[0]))
}

func TestDispatcher_UnknownTypeIgnored(t *testing.T) {
	var d Dispatcher
	var errs []error
	d.SetOnError(func(err error) { errs = append(errs, err) })

	d.Dispatch(Envelope{Type: "teleport", Payload: json.RawMessage(`{}`)})

	assert.Empty(t, errs)
}

func TestDispatcher_NilCallbacksIgnored(t *testing.T) {
	var d Dispatcher
	// No callbacks registered; nothing should panic.
	d.Dispatch(Envelope{Type: msgStroke, Payload: rawPayload(t, StrokeEvent{})})
	d.Dispatch(Envelope{Type: msgUndoFailed, Payload: rawPayload(t, FailureEvent{})})
}

func TestClient_SendNotConnected(t *testing.T) {
	c := New(DefaultConfig())

	err := c.SubmitStroke(context.Background(), Stroke{})
	require.Error(t, err)
	assert.Equal(t, ErrorNotConnected, CodeOf(err))
}

func TestClient_ConnectRequiresURLAndRoom(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty config", Config{}},
		{"missing room", Config{URL: "ws://localhost:4000"}},
		{"missing url", Config{Room: "room-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.cfg).Connect(context.Background())
			require.Error(t, err)
			assert.Equal(t, ErrorInvalidConfig, CodeOf(err))
		})
	}
}
