package relay

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/models"
)

// Conn is one live client connection.
type Conn interface {
	ID() string
	UserID() string
	Send(env Envelope) error
}

// MembershipChecker reports whether userID takes part in a conversation.
type MembershipChecker interface {
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
}

// Archive stores broadcast events.
type Archive interface {
	Insert(ctx context.Context, ev *models.RelayEvent) error
}

type Option func(*Hub)

func WithBus(b Bus) Option { return func(h *Hub) { h.bus = b } }

func WithMembership(m MembershipChecker) Option { return func(h *Hub) { h.members = m } }

func WithArchive(a Archive, ttl time.Duration) Option {
	return func(h *Hub) { h.archive, h.archiveTTL = a, ttl }
}

const (
	defaultArchiveTTL = 7 * 24 * time.Hour
	sideEffectTimeout = 3 * time.Second
)

// Hub fans events out to conversation rooms and to single users.
// Delivery is best effort and at most once.
type Hub struct {
	log      *logrus.Logger
	registry Registry

	bus        Bus
	members    MembershipChecker
	archive    Archive
	archiveTTL time.Duration

	mu    sync.RWMutex
	conns  map[string]Conn                // conn id -> conn
	rooms  map[string]map[string]struct{} // room -> conn ids
	joined map[string]map[string]struct{} // conn id -> rooms
}

func NewHub(log *logrus.Logger, registry Registry, opts ...Option) *Hub {
	h := &Hub{
		log:        log,
		registry:   registry,
		archiveTTL: defaultArchiveTTL,
		conns:      make(map[string]Conn),
		rooms:      make(map[string]map[string]struct{}),
		joined:     make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach tracks a new connection and registers it for its user.
func (h *Hub) Attach(ctx context.Context, c Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
	h.register(ctx, c)
}

func (h *Hub) register(ctx context.Context, c Conn) {
	if err := h.registry.Register(ctx, c.UserID(), c.ID()); err != nil {
		h.log.WithError(err).WithField("user_id", c.UserID()).Warn("relay: register failed")
		return
	}
	h.log.WithFields(logrus.Fields{"user_id": c.UserID(), "conn_id": c.ID()}).Debug("relay: registered")
}

// Disconnect drops the connection from every room and from the registry.
func (h *Hub) Disconnect(ctx context.Context, c Conn) {
	h.mu.Lock()
	delete(h.conns, c.ID())
	for room := range h.joined[c.ID()] {
		if members := h.rooms[room]; members != nil {
			delete(members, c.ID())
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	delete(h.joined, c.ID())
	h.mu.Unlock()

	if err := h.registry.RemoveByConnection(ctx, c.ID()); err != nil {
		h.log.WithError(err).WithField("conn_id", c.ID()).Warn("relay: unregister failed")
	}
	h.log.WithFields(logrus.Fields{"user_id": c.UserID(), "conn_id": c.ID()}).Debug("relay: disconnected")
}

// Handle dispatches one inbound frame. Malformed or unknown frames are ignored.
func (h *Hub) Handle(ctx context.Context, c Conn, env Envelope) {
	switch env.Event {
	case EventRegister:
		// always binds the authenticated user, whatever id the client sent
		h.register(ctx, c)
	case EventJoinConversation:
		h.join(ctx, c, roomID(env.Data))
	case EventSendMessage:
		h.sendMessage(ctx, c, env.Data)
	case EventMessageRead:
		h.messageRead(ctx, c, env.Data)
	default:
		h.log.WithField("event", env.Event).Debug("relay: ignored event")
	}
}

func (h *Hub) join(ctx context.Context, c Conn, room string) {
	if room == "" {
		return
	}
	if !h.allowed(ctx, c, room) {
		h.deny(c, room)
		return
	}

	h.mu.Lock()
	if _, ok := h.conns[c.ID()]; !ok {
		h.mu.Unlock()
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]struct{})
	}
	h.rooms[room][c.ID()] = struct{}{}
	if h.joined[c.ID()] == nil {
		h.joined[c.ID()] = make(map[string]struct{})
	}
	h.joined[c.ID()][room] = struct{}{}
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{"user_id": c.UserID(), "room": room}).Debug("relay: joined")
}

func (h *Hub) sendMessage(ctx context.Context, c Conn, data json.RawMessage) {
	var p MessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	p.ConversationID = strings.TrimSpace(p.ConversationID)
	if p.ConversationID == "" || strings.TrimSpace(p.Content) == "" {
		return
	}
	if !h.allowed(ctx, c, p.ConversationID) {
		h.deny(c, p.ConversationID)
		return
	}
	p.SenderID = c.UserID()
	if p.CreatedAt == "" {
		p.CreatedAt = nowStamp()
	}

	env, err := NewEnvelope(EventNewMessage, p)
	if err != nil {
		return
	}
	h.Broadcast(ctx, p.ConversationID, c.UserID(), env)
}

func (h *Hub) messageRead(ctx context.Context, c Conn, data json.RawMessage) {
	var p ReadPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	if p.ConversationID == "" || p.MessageID == "" || !h.allowed(ctx, c, p.ConversationID) {
		return
	}
	env, err := NewEnvelope(EventMessageRead, p)
	if err != nil {
		return
	}
	h.Broadcast(ctx, p.ConversationID, c.UserID(), env)
}

func (h *Hub) allowed(ctx context.Context, c Conn, room string) bool {
	if h.members == nil {
		return true
	}
	ok, err := h.members.IsParticipant(ctx, room, c.UserID())
	if err != nil {
		h.log.WithError(err).WithField("room", room).Warn("relay: membership check failed")
		return false
	}
	if !ok {
		h.log.WithFields(logrus.Fields{"user_id": c.UserID(), "room": room}).Debug("relay: not a participant")
	}
	return ok
}

// deny tells only the offending connection that room is off limits.
func (h *Hub) deny(c Conn, room string) {
	env, err := NewEnvelope(EventError, ErrorPayload{ConversationID: room, Message: "not a participant"})
	if err != nil {
		return
	}
	if err := c.Send(env); err != nil {
		h.log.WithError(err).WithField("conn_id", c.ID()).Warn("relay: dropped delivery")
	}
}

// Broadcast delivers env to every connection in room, the sender's included.
func (h *Hub) Broadcast(ctx context.Context, room, senderID string, env Envelope) {
	if h.bus != nil {
		err := h.bus.Publish(ctx, BusMessage{Room: room, SenderID: senderID, Envelope: env})
		if err == nil {
			h.record(room, senderID, env)
			return
		}
		h.log.WithError(err).Warn("relay: bus publish failed, delivering locally")
	}
	h.deliverRoom(room, env)
	h.record(room, senderID, env)
}

// NotifyUser pushes an event to the user's registered connection, if any.
func (h *Hub) NotifyUser(userID, event string, data any) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	connID, ok, err := h.registry.LookupByUser(ctx, userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Warn("relay: lookup failed")
		return
	}
	if !ok {
		return
	}
	env, err := NewEnvelope(event, data)
	if err != nil {
		h.log.WithError(err).WithField("event", event).Warn("relay: encode failed")
		return
	}

	if h.bus != nil {
		if err := h.bus.Publish(ctx, BusMessage{ConnID: connID, Envelope: env}); err == nil {
			return
		}
		h.log.WithField("user_id", userID).Warn("relay: bus publish failed, delivering locally")
	}
	h.deliverConn(connID, env)
}

// Run consumes the bus until ctx is done. Without a bus it only waits.
func (h *Hub) Run(ctx context.Context) error {
	if h.bus == nil {
		<-ctx.Done()
		return nil
	}
	return h.bus.Subscribe(ctx, func(m BusMessage) {
		switch {
		case m.ConnID != "":
			h.deliverConn(m.ConnID, m.Envelope)
		case m.Room != "":
			h.deliverRoom(m.Room, m.Envelope)
		}
	})
}

func (h *Hub) deliverRoom(room string, env Envelope) {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.rooms[room]))
	for id := range h.rooms[room] {
		if c, ok := h.conns[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(env); err != nil {
			h.log.WithError(err).WithFields(logrus.Fields{"conn_id": c.ID(), "room": room}).Warn("relay: dropped delivery")
		}
	}
}

func (h *Hub) deliverConn(connID string, env Envelope) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := c.Send(env); err != nil {
		h.log.WithError(err).WithField("conn_id", connID).Warn("relay: dropped delivery")
	}
}

func (h *Hub) record(room, senderID string, env Envelope) {
	if h.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	now := time.Now().UTC()
	ev := &models.RelayEvent{
		Room:      room,
		Event:     env.Event,
		SenderID:  senderID,
		Payload:   string(env.Data),
		Timestamp: now,
		ExpiresAt: now.Add(h.archiveTTL),
	}
	if err := h.archive.Insert(ctx, ev); err != nil {
		h.log.WithError(err).WithField("room", room).Warn("relay: archive failed")
	}
}

// ConnectionCount is the number of live local connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
