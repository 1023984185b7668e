package events

import (
	"encoding/json"
	"time"
)

// Change event types published after a mutating cycle.
const (
	TypeApplicationAdded      = "application.added"
	TypeApplicationUpdated    = "application.updated"
	TypeApplicationDeleted    = "application.deleted"
	TypeApplicationDuplicated = "application.duplicated"
	TypeTableSeeded           = "table.seeded"
	TypeConfigUpdated         = "config.updated"
	TypeLogosRefreshed        = "logos.refreshed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// Publisher receives encoded events.
type Publisher interface {
	Publish(evt string)
}

// Fanout publishes each event to every non-nil publisher.
type Fanout []Publisher

func (f Fanout) Publish(evt string) {
	for _, p := range f {
		if p != nil {
			p.Publish(evt)
		}
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(string) {}
