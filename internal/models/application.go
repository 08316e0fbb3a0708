package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

type Application struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_applications_user_job" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	JobID  string `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uniq_applications_user_job;index" json:"jobId"`
	Job    *Job   `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Status      ApplicationStatus `gorm:"column:status;type:varchar(50);not null;default:pending" json:"status"`
	CoverLetter string            `gorm:"column:cover_letter;type:text" json:"coverLetter"`

	AppliedAt time.Time `gorm:"column:applied_at;type:timestamptz;not null" json:"appliedAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null" json:"updatedAt"`
}

func (Application) TableName() string { return "applications" }

// MyApplication is a job seeker's application joined with job and company.
type MyApplication struct {
	ID                string            `json:"id"`
	Status            ApplicationStatus `json:"status"`
	CoverLetter       string            `json:"coverLetter"`
	AppliedAt         time.Time         `json:"appliedAt"`
	JobID             string            `json:"jobId"`
	JobTitle          string            `json:"jobTitle"`
	JobLocation       string            `json:"jobLocation"`
	JobEmploymentType string            `json:"jobEmploymentType"`
	CompanyName       string            `json:"companyName"`
	CompanyLogoURL    string            `json:"companyLogoUrl"`
}

// JobApplicant is an application joined with the applicant and their profile.
type JobApplicant struct {
	ID                   string            `json:"id"`
	Status               ApplicationStatus `json:"status"`
	CoverLetter          string            `json:"coverLetter"`
	AppliedAt            time.Time         `json:"appliedAt"`
	CandidateID          string            `json:"candidateId"`
	CandidateName        string            `json:"candidateName"`
	CandidateEmail       string            `json:"candidateEmail"`
	ProfessionalHeadline *string           `json:"professionalHeadline"`
	CandidateLocation    *string           `json:"candidateLocation"`
	CandidateSkills      []string          `json:"candidateSkills"`
}
