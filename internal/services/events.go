package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Entities and actions of menu events. The routing key is "<entity>.<action>".
const (
	EntityDish    = "dish"
	EntitySetmeal = "setmeal"

	ActionSaved   = "saved"
	ActionUpdated = "updated"
	ActionStatus  = "status"
	ActionDeleted = "deleted"
)

// MenuEvent is published after a menu write has been committed.
type MenuEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	IDs    []uint    `json:"ids"`
	Status *int      `json:"status,omitempty"`
	At     time.Time `json:"at"`
}

// RoutingKey returns the topic routing key of the event.
func (e MenuEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Publisher sends a message body under a routing key.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// MenuEvents publishes menu events. A nil *MenuEvents, or one without a
// publisher, drops every event.
type MenuEvents struct {
	publisher Publisher
	logger    zerolog.Logger
}

// NewMenuEvents creates a MenuEvents publishing through p.
func NewMenuEvents(p Publisher, logger zerolog.Logger) *MenuEvents {
	return &MenuEvents{
		publisher: p,
		logger:    logger.With().Str("component", "menu_events").Logger(),
	}
}

// emit publishes the event. Failures are logged and never returned: the
// write the event describes is already committed.
func (m *MenuEvents) emit(ctx context.Context, entity, action string, ids []uint, status *int) {
	if m == nil || m.publisher == nil {
		return
	}
	event := MenuEvent{Entity: entity, Action: action, IDs: ids, Status: status, At: time.Now().UTC()}
	body, err := json.Marshal(event)
	if err != nil {
		m.logger.Error().Err(err).Str("routing_key", event.RoutingKey()).Msg("failed to marshal menu event")
		return
	}
	if err := m.publisher.Publish(event.RoutingKey(), body); err != nil {
		m.logger.Warn().Err(err).Ctx(ctx).Str("routing_key", event.RoutingKey()).Msg("failed to publish menu event")
		return
	}
	m.logger.Debug().Str("routing_key", event.RoutingKey()).Uints("ids", ids).Msg("menu event published")
}
