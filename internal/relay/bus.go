package relay

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// BusMessage is a delivery request shared between instances. Exactly one of
// Room or ConnID is set.
type BusMessage struct {
	Room     string   `json:"room,omitempty"`
	ConnID   string   `json:"conn_id,omitempty"`
	SenderID string   `json:"sender_id,omitempty"`
	Envelope Envelope `json:"envelope"`
}

// Bus carries deliveries to every instance. Each instance delivers to its own
// local connections only.
type Bus interface {
	Publish(ctx context.Context, m BusMessage) error
	// Subscribe blocks until ctx is done.
	Subscribe(ctx context.Context, fn func(BusMessage)) error
}

const defaultBusChannel = "relay:deliveries"

type RedisBus struct {
	rdb     *redis.Client
	channel string
	log     *logrus.Logger
}

func NewRedisBus(rdb *redis.Client, log *logrus.Logger) *RedisBus {
	return &RedisBus{rdb: rdb, channel: defaultBusChannel, log: log}
}

func (b *RedisBus) Publish(ctx context.Context, m BusMessage) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, fn func(BusMessage)) error {
	ps := b.rdb.Subscribe(ctx, b.channel)
	defer ps.Close()

	// wait for confirmation so publishes right after startup are not lost
	if _, err := ps.Receive(ctx); err != nil {
		return err
	}

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var m BusMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				b.log.WithError(err).Warn("relay bus: malformed payload")
				continue
			}
			fn(m)
		}
	}
}
