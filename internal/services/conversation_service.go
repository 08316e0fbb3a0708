package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
	maxMessageLength    = 5000
)

type StartConversationInput struct {
	ParticipantID string  `json:"participantId" binding:"required"`
	JobID         *string `json:"jobId"`
}

type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}

type ConversationService interface {
	Start(ctx context.Context, caller models.Principal, in StartConversationInput) (*models.Conversation, error)
	List(ctx context.Context, caller models.Principal) ([]models.Conversation, error)
	Messages(ctx context.Context, caller models.Principal, conversationID string, limit int) ([]models.Message, error)
	Send(ctx context.Context, caller models.Principal, conversationID string, in SendMessageInput) (*models.Message, error)
	MarkRead(ctx context.Context, caller models.Principal, conversationID string) (int64, error)

	// IsParticipant backs the relay's room membership check.
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
}

type conversationService struct {
	convs pgrepo.ConversationRepository
	users pgrepo.UserRepository
	jobs  pgrepo.JobRepository
}

func NewConversationService(convs pgrepo.ConversationRepository, users pgrepo.UserRepository, jobs pgrepo.JobRepository) ConversationService {
	return &conversationService{convs: convs, users: users, jobs: jobs}
}

// Start returns the existing conversation for the pair (and job) or creates it.
// Participants are stored in lexical order so either side finds the same row.
func (s *conversationService) Start(ctx context.Context, caller models.Principal, in StartConversationInput) (*models.Conversation, error) {
	const op = "ConversationService.Start"

	if caller.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	other := strings.TrimSpace(in.ParticipantID)
	if other == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "participantId is required", nil)
	}
	if other == caller.UserID {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cannot start a conversation with yourself", nil)
	}
	if _, err := s.users.GetByID(ctx, other); err != nil {
		return nil, lookupErr(op, "participant", err)
	}

	jobID := in.JobID
	if jobID != nil && strings.TrimSpace(*jobID) == "" {
		jobID = nil
	}
	if jobID != nil {
		if _, err := s.jobs.GetByID(ctx, *jobID); err != nil {
			return nil, lookupErr(op, "job", err)
		}
	}

	p1, p2 := caller.UserID, other
	if p2 < p1 {
		p1, p2 = p2, p1
	}

	c, err := s.convs.Find(ctx, p1, p2, jobID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}

	now := time.Now().UTC()
	c = &models.Conversation{
		ID:             uuid.NewString(),
		Participant1ID: p1,
		Participant2ID: p2,
		JobID:          jobID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.convs.Create(ctx, c); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			// lost the race to a concurrent start
			if existing, ferr := s.convs.Find(ctx, p1, p2, jobID); ferr == nil {
				return existing, nil
			}
		}
		return nil, writeErr(op, "conversation already exists", err)
	}
	return c, nil
}

func (s *conversationService) List(ctx context.Context, caller models.Principal) ([]models.Conversation, error) {
	const op = "ConversationService.List"

	if caller.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	out, err := s.convs.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	if out == nil {
		out = []models.Conversation{}
	}
	return out, nil
}

// Messages returns the latest messages in ascending time order.
func (s *conversationService) Messages(ctx context.Context, caller models.Principal, conversationID string, limit int) ([]models.Message, error) {
	const op = "ConversationService.Messages"

	if err := s.requireParticipant(ctx, op, caller, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	out, err := s.convs.ListMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []models.Message{}
	}
	return out, nil
}

func (s *conversationService) Send(ctx context.Context, caller models.Principal, conversationID string, in SendMessageInput) (*models.Message, error) {
	const op = "ConversationService.Send"

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "content is required", nil)
	}
	if len(content) > maxMessageLength {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is too long", nil)
	}
	if err := s.requireParticipant(ctx, op, caller, conversationID); err != nil {
		return nil, err
	}

	m := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       caller.UserID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.convs.InsertMessage(ctx, m); err != nil {
		return nil, writeErr(op, "message conflict", err)
	}
	return m, nil
}

// MarkRead flags every message from the other participant as read.
func (s *conversationService) MarkRead(ctx context.Context, caller models.Principal, conversationID string) (int64, error) {
	const op = "ConversationService.MarkRead"

	if err := s.requireParticipant(ctx, op, caller, conversationID); err != nil {
		return 0, err
	}
	n, err := s.convs.MarkRead(ctx, conversationID, caller.UserID)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to mark messages read", err)
	}
	return n, nil
}

func (s *conversationService) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if conversationID == "" || userID == "" {
		return false, nil
	}
	return s.convs.IsParticipant(ctx, conversationID, userID)
}

func (s *conversationService) requireParticipant(ctx context.Context, op string, caller models.Principal, conversationID string) error {
	if caller.UserID == "" {
		return utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	ok, err := s.convs.IsParticipant(ctx, conversationID, caller.UserID)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}
	if !ok {
		return utils.E(utils.CodeNotFound, op, "conversation not found", nil)
	}
	return nil
}
