package relay

import (
	"encoding/json"
	"strings"
	"time"
)

// Client and server event names.
const (
	EventRegister         = "register"
	EventJoinConversation = "join_conversation"
	EventSendMessage      = "send_message"
	EventNewMessage       = "new_message"
	EventMessageRead      = "message_read"
	EventError            = "error"
)

// Envelope is a single websocket frame: {"event": "...", "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(event string, data any) (Envelope, error) {
	if data == nil {
		return Envelope{Event: event}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: b}, nil
}

type MessagePayload struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
}

type ReadPayload struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
}

type ErrorPayload struct {
	ConversationID string `json:"conversationId,omitempty"`
	Message        string `json:"message"`
}

// roomID accepts either a bare JSON string or an object carrying conversationId.
func roomID(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return strings.TrimSpace(obj.ConversationID)
	}
	return ""
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339Nano) }
