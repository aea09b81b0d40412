package ws

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSessionStarted EventType = "session.started"
	EventFrameAnalyzed  EventType = "frame.analyzed"
	EventFrameFailed    EventType = "frame.failed"
	EventReadoutUpdated EventType = "readout.updated"
)

type Event struct {
	SessionID uuid.UUID `json:"session_id"`
	Type      EventType `json:"type"`
	Frame     uint64    `json:"frame,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionStarted is sent to a client right after it joins a session.
type SessionStarted struct {
	SessionID       uuid.UUID `json:"session_id"`
	ReadoutInterval int       `json:"readout_interval"`
}
