package redis

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/history"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultChannel = "marketplace.transitions"

// TransitionEvent is the wire form of an applied transition.
type TransitionEvent struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Transition string    `json:"transition"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	Override   bool      `json:"override"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewTransitionEvent(r history.Record) TransitionEvent {
	return TransitionEvent{
		ID:         r.ID.String(),
		EntityType: r.Entity.String(),
		EntityID:   r.EntityID.String(),
		Transition: r.Transition.String(),
		From:       r.From,
		To:         r.To,
		ActorID:    r.Actor.ID().String(),
		ActorRole:  r.Actor.Role().String(),
		Override:   r.Override,
		Note:       r.Note,
		OccurredAt: r.OccurredAt.UTC(),
	}
}

// Publisher implements ports.NotificationSink with PUBLISH. Subscribers that
// are not connected miss the event; the transition log stays the record.
type Publisher struct {
	rdb     *goredis.Client
	channel string
}

func NewPublisher(rdb *goredis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, record history.Record) error {
	payload, err := json.Marshal(NewTransitionEvent(record))
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}
