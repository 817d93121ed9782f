package client

import "encoding/json"

// Dispatcher routes server events to registered callbacks. Callbacks
// run on the read loop goroutine; keep them short or hand off.
type Dispatcher struct {
	onIdentity func(IdentityEvent)
	onRoster   func(RosterEvent)
	onSnapshot func(SnapshotEvent)
	onStroke   func(StrokeEvent)
	onUndo     func(UndoEvent)
	onRedo     func(RedoEvent)
	onCursor   func(CursorEvent)
	onChat     func(ChatEvent)
	onError    func(error)
}

func (d *Dispatcher) SetOnIdentity(fn func(IdentityEvent)) { d.onIdentity = fn }
func (d *Dispatcher) SetOnRoster(fn func(RosterEvent))     { d.onRoster = fn }
func (d *Dispatcher) SetOnSnapshot(fn func(SnapshotEvent)) { d.onSnapshot = fn }
func (d *Dispatcher) SetOnStroke(fn func(StrokeEvent))     { d.onStroke = fn }
func (d *Dispatcher) SetOnUndo(fn func(UndoEvent))         { d.onUndo = fn }
func (d *Dispatcher) SetOnRedo(fn func(RedoEvent))         { d.onRedo = fn }
func (d *Dispatcher) SetOnCursor(fn func(CursorEvent))     { d.onCursor = fn }
func (d *Dispatcher) SetOnChat(fn func(ChatEvent))         { d.onChat = fn }
func (d *Dispatcher) SetOnError(fn func(error))            { d.onError = fn }

// Dispatch decodes one server envelope and fires the matching callback.
func (d *Dispatcher) Dispatch(env Envelope) {
	switch env.Type {
	case msgIdentity:
		dispatchAs(d, env, d.onIdentity)
	case msgRoster:
		dispatchAs(d, env, d.onRoster)
	case msgSnapshot:
		dispatchAs(d, env, d.onSnapshot)
	case msgStroke:
		dispatchAs(d, env, d.onStroke)
	case msgUndo:
		dispatchAs(d, env, d.onUndo)
	case msgRedo:
		dispatchAs(d, env, d.onRedo)
	case msgCursor:
		dispatchAs(d, env, d.onCursor)
	case msgChat:
		dispatchAs(d, env, d.onChat)
	case msgUndoFailed:
		d.fireFailure(ErrorUndoFailed, env.Payload)
	case msgRedoFailed:
		d.fireFailure(ErrorRedoFailed, env.Payload)
	}
}

func dispatchAs[T any](d *Dispatcher, env Envelope, fn func(T)) {
	if fn == nil {
		return
	}
	var ev T
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		d.fireError(WrapError(ErrorSerialization, "failed to unmarshal "+env.Type+" event", err))
		return
	}
	fn(ev)
}

func (d *Dispatcher) fireFailure(code ErrorCode, payload json.RawMessage) {
	if d.onError == nil {
		return
	}
	var fail FailureEvent
	if err := json.Unmarshal(payload, &fail); err != nil {
		d.fireError(WrapError(ErrorSerialization, "failed to unmarshal failure event", err))
		return
	}
	d.onError(NewError(code, fail.Reason))
}

func (d *Dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}
