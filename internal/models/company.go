package models

import "time"

type Company struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Industry    string `gorm:"column:industry;type:varchar(255)" json:"industry"`
	CompanySize string `gorm:"column:company_size;type:varchar(50)" json:"companySize"`
	Website     string `gorm:"column:website;type:varchar(500)" json:"website"`
	LogoURL     string `gorm:"column:logo_url;type:varchar(500)" json:"logoUrl"`
	Location    string `gorm:"column:location;type:varchar(255)" json:"location"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (Company) TableName() string { return "companies" }
