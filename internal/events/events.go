package events

import (
	"context"
	"venue/config"
	"venue/infras/kafka"
	"venue/shared/constant"
	"venue/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TypeSessionStarted = "session_started"
	TypeSessionEnded   = "session_ended"
	TypeSessionExpired = "session_expired"

	TypeBookingRescheduled = "booking_rescheduled"

	TypeTableDeactivated = "table_deactivated"
	TypeTableActivated   = "table_activated"
	TypeZoneDeactivated  = "zone_deactivated"
	TypeZoneActivated    = "zone_activated"
)

// Event is the envelope published to the scheduling topics. Consumers
// (reminder delivery, reporting) live outside this service.
type Event struct {
	Type       string `json:"type"`
	EntityID   string `json:"entity_id"`
	TableID    string `json:"table_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Publisher emits scheduling domain events. Publishing is best-effort: a
// broker outage never fails the staff or guest action that triggered it.
type Publisher interface {
	SessionEvent(ctx context.Context, eventType, sessionID, tableID string)
	BookingEvent(ctx context.Context, eventType, bookingID, tableID string)
	TableEvent(ctx context.Context, eventType, entityID string)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
}

func NewPublisher(client kafka.Client, cfg *config.Config) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
	}
}

func (p *publisherImpl) SessionEvent(ctx context.Context, eventType, sessionID, tableID string) {
	p.send(ctx, p.cfg.Kafka.Topic.Sessions, tableID, Event{
		Type:       eventType,
		EntityID:   sessionID,
		TableID:    tableID,
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	})
}

func (p *publisherImpl) BookingEvent(ctx context.Context, eventType, bookingID, tableID string) {
	p.send(ctx, p.cfg.Kafka.Topic.Bookings, tableID, Event{
		Type:       eventType,
		EntityID:   bookingID,
		TableID:    tableID,
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	})
}

func (p *publisherImpl) TableEvent(ctx context.Context, eventType, entityID string) {
	p.send(ctx, p.cfg.Kafka.Topic.Tables, entityID, Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	})
}

func (p *publisherImpl) send(ctx context.Context, topic, key string, event Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := p.client.SendMessages(c, topic, kafka.Message{Key: key, Value: event})
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Str("type", event.Type).Msg("failed to publish scheduling event")
		}
	}()
}
