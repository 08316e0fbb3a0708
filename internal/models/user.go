package models

import "time"

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Role         Role      `gorm:"column:role;type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Principal is the authenticated caller carried by a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}
