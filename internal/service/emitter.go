package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — frontend notifications without a Wails context
// ─────────────────────────────────────────────────────────────

// EventEmitter delivers document events (document:saving, document:saved) to
// the frontend. The App struct implements it by delegating to
// wailsRuntime.EventsEmit; the save scheduler only ever sees this interface,
// so it runs under test without a Wails runtime.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter records every emission so tests can assert on the document
// event stream.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent is one recorded emission.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
