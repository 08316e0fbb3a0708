package models

import "time"

type Conversation struct {
	ID             string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Participant1ID string  `gorm:"column:participant1_id;type:uuid;not null;uniqueIndex:uniq_conversation_participants" json:"participant1Id"`
	Participant1   *User   `gorm:"foreignKey:Participant1ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Participant2ID string  `gorm:"column:participant2_id;type:uuid;not null;uniqueIndex:uniq_conversation_participants;index" json:"participant2Id"`
	Participant2   *User   `gorm:"foreignKey:Participant2ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	JobID          *string `gorm:"column:job_id;type:uuid;uniqueIndex:uniq_conversation_participants" json:"jobId"`
	Job            *Job    `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// HasParticipant reports whether userID is one of the two sides.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.Participant1ID == userID || c.Participant2ID == userID)
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

type Message struct {
	ID             string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ConversationID string        `gorm:"column:conversation_id;type:uuid;not null;index:by_conversation_created" json:"conversationId"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID       string        `gorm:"column:sender_id;type:uuid;not null" json:"senderId"`
	Sender         *User         `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Content        string        `gorm:"column:content;type:text;not null" json:"content"`
	IsRead         bool          `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt      time.Time     `gorm:"column:created_at;type:timestamptz;not null;index:by_conversation_created" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
