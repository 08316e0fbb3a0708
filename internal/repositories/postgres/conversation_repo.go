package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	// Find looks up the conversation for an ordered participant pair and optional job.
	Find(ctx context.Context, participant1, participant2 string, jobID *string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	InsertMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string) (int64, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	return translate(r.db.WithContext(ctx).
		Omit("Participant1", "Participant2", "Job").
		Create(c).Error)
}

func (r *conversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var c models.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *conversationRepo) Find(ctx context.Context, participant1, participant2 string, jobID *string) (*models.Conversation, error) {
	q := r.db.WithContext(ctx).
		Where("participant1_id = ? AND participant2_id = ?", participant1, participant2)
	if jobID == nil {
		q = q.Where("job_id IS NULL")
	} else {
		q = q.Where("job_id = ?", *jobID)
	}

	var c models.Conversation
	if err := q.Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *conversationRepo) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var rows []models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *conversationRepo) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ? AND (participant1_id = ? OR participant2_id = ?)", conversationID, userID, userID).
		Count(&count).Error
	if err = translate(err); errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	return count > 0, err
}

// InsertMessage stores the message and bumps the conversation's activity timestamp.
func (r *conversationRepo) InsertMessage(ctx context.Context, m *models.Message) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Conversation", "Sender").Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", m.ConversationID).
			Update("updated_at", m.CreatedAt).Error
	}))
}

func (r *conversationRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, translate(err)
}

func (r *conversationRepo) MarkRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true)
	return res.RowsAffected, translate(res.Error)
}
