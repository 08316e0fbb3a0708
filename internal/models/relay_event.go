package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelayEvent is an archived broadcast from the real-time relay.
type RelayEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Room      string             `bson:"room" json:"room"`
	Event     string             `bson:"event" json:"event"`
	SenderID  string             `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	Payload   string             `bson:"payload" json:"payload"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}
