package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// TimelineEntry is one experience or education record.
type TimelineEntry struct {
	Organization string `json:"organization" binding:"required"`
	Title        string `json:"title" binding:"required"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"` // empty = ongoing
	Description  string `json:"description,omitempty"`
}

type Profile struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ProfessionalHeadline string         `gorm:"column:professional_headline;type:varchar(255)" json:"professionalHeadline"`
	Bio                  string         `gorm:"column:bio;type:text" json:"bio"`
	Skills               pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`

	Experience datatypes.JSONSlice[TimelineEntry] `gorm:"column:experience;type:jsonb" json:"experience"`
	Education  datatypes.JSONSlice[TimelineEntry] `gorm:"column:education;type:jsonb" json:"education"`

	Location  string `gorm:"column:location;type:varchar(255)" json:"location"`
	Phone     string `gorm:"column:phone;type:varchar(50)" json:"phone"`
	ResumeURL string `gorm:"column:resume_url;type:varchar(500)" json:"resumeUrl"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// PublicProfile is what any authenticated user may see of a job seeker.
type PublicProfile struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	ProfessionalHeadline string          `json:"professionalHeadline"`
	Bio                  string          `json:"bio"`
	Skills               []string        `json:"skills"`
	Experience           []TimelineEntry `json:"experience"`
	Education            []TimelineEntry `json:"education"`
	Location             string          `json:"location"`
	User                 ProfileOwner    `json:"user"`
}

type ProfileOwner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
