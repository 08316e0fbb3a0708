package models

import "time"

type SavedJob struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_saved_jobs_user_job" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	JobID  string `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uniq_saved_jobs_user_job;index" json:"jobId"`
	Job    *Job   `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	SavedAt time.Time `gorm:"column:saved_at;type:timestamptz;not null" json:"savedAt"`
}

func (SavedJob) TableName() string { return "saved_jobs" }

// SavedJobView is a bookmark joined with its job and company.
type SavedJobView struct {
	ID                string    `json:"id"`
	SavedAt           time.Time `json:"savedAt"`
	JobID             string    `json:"jobId"`
	JobTitle          string    `json:"jobTitle"`
	JobDescription    string    `json:"jobDescription"`
	JobLocation       string    `json:"jobLocation"`
	JobEmploymentType string    `json:"jobEmploymentType"`
	JobSalaryMin      *int      `json:"jobSalaryMin"`
	JobSalaryMax      *int      `json:"jobSalaryMax"`
	JobSalaryCurrency string    `json:"jobSalaryCurrency"`
	JobIsRemote       bool      `json:"jobIsRemote"`
	CompanyName       string    `json:"companyName"`
	CompanyLogoURL    string    `json:"companyLogoUrl"`
	CompanyLocation   string    `json:"companyLocation"`
}
