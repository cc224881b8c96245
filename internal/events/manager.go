package events

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	IngestStart     EventType = "INGEST_START"
	IngestComplete  EventType = "INGEST_COMPLETE"
	EventClassified EventType = "EVENT_CLASSIFIED"
	SignalGenerated EventType = "SIGNAL_GENERATED"
	AlertSent       EventType = "ALERT_SENT"
	AlertFailed     EventType = "ALERT_FAILED"
	UniverseSynced  EventType = "UNIVERSE_SYNCED"
	PricesSynced    EventType = "PRICES_SYNCED"
	ErrorOccurred   EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Manager handles event emission and logging
type Manager struct {
	log zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log: log.With().Str("service", "events").Logger(),
	}
}

// Emit records an event as structured log output. Events are observability
// only; no component consumes them as control flow.
func (m *Manager) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Module:    module,
	}

	payload, err := json.Marshal(event.Data)
	if err != nil {
		payload = []byte("{}")
	}

	m.log.Info().
		Str("event", string(event.Type)).
		Str("module", event.Module).
		RawJSON("data", payload).
		Msg("Event emitted")
}
