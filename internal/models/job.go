package models

import "time"

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	return s == JobActive || s == JobClosed || s == JobDraft
}

type Job struct {
	ID        string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID string   `gorm:"column:company_id;type:uuid;not null;index" json:"companyId"`
	Company   *Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Title            string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description      string `gorm:"column:description;type:text;not null" json:"description"`
	Requirements     string `gorm:"column:requirements;type:text" json:"requirements"`
	Responsibilities string `gorm:"column:responsibilities;type:text" json:"responsibilities"`

	SalaryMin      *int   `gorm:"column:salary_min" json:"salaryMin"`
	SalaryMax      *int   `gorm:"column:salary_max" json:"salaryMax"`
	SalaryCurrency string `gorm:"column:salary_currency;type:varchar(10);default:USD" json:"salaryCurrency"`

	Location        string    `gorm:"column:location;type:varchar(255)" json:"location"`
	EmploymentType  string    `gorm:"column:employment_type;type:varchar(50)" json:"employmentType"`   // full-time|part-time|contract
	ExperienceLevel string    `gorm:"column:experience_level;type:varchar(50)" json:"experienceLevel"` // entry|mid|senior
	IsRemote        bool      `gorm:"column:is_remote;not null;default:false" json:"isRemote"`
	Status          JobStatus `gorm:"column:status;type:varchar(20);not null;default:active;index" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// JobCompany is the company slice embedded in job listings and details.
type JobCompany struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logoUrl"`
	Location    string `json:"location"`
	Website     string `json:"website,omitempty"`
}

// JobListing is a job joined with its company.
type JobListing struct {
	Job
	Company JobCompany `json:"company"`
}
