package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.MyApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]models.JobApplicant, error)
	// GetForCompany loads an application only when its job belongs to companyID.
	GetForCompany(ctx context.Context, id, companyID string) (*models.Application, error)
	UpdateStatus(ctx context.Context, a *models.Application) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Job").Create(a).Error)
}

func (r *applicationRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]models.MyApplication, error) {
	var rows []models.MyApplication
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select(`applications.id, applications.status, applications.cover_letter, applications.applied_at,
			jobs.id AS job_id, jobs.title AS job_title, jobs.location AS job_location,
			jobs.employment_type AS job_employment_type,
			companies.name AS company_name, companies.logo_url AS company_logo_url`).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("applications.user_id = ?", userID).
		Order("applications.applied_at DESC").
		Scan(&rows).Error
	return rows, translate(err)
}

type applicantRow struct {
	ID                   string
	Status               models.ApplicationStatus
	CoverLetter          string
	AppliedAt            time.Time
	CandidateID          string
	CandidateName        string
	CandidateEmail       string
	ProfessionalHeadline *string
	CandidateLocation    *string
	CandidateSkills      pq.StringArray
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.JobApplicant, error) {
	var rows []applicantRow
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select(`applications.id, applications.status, applications.cover_letter, applications.applied_at,
			users.id AS candidate_id, users.name AS candidate_name, users.email AS candidate_email,
			profiles.professional_headline, profiles.location AS candidate_location,
			profiles.skills AS candidate_skills`).
		Joins("JOIN users ON users.id = applications.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("applications.job_id = ?", jobID).
		Order("applications.applied_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]models.JobApplicant, 0, len(rows))
	for _, x := range rows {
		out = append(out, models.JobApplicant{
			ID:                   x.ID,
			Status:               x.Status,
			CoverLetter:          x.CoverLetter,
			AppliedAt:            x.AppliedAt,
			CandidateID:          x.CandidateID,
			CandidateName:        x.CandidateName,
			CandidateEmail:       x.CandidateEmail,
			ProfessionalHeadline: x.ProfessionalHeadline,
			CandidateLocation:    x.CandidateLocation,
			CandidateSkills:      x.CandidateSkills,
		})
	}
	return out, nil
}

func (r *applicationRepo) GetForCompany(ctx context.Context, id, companyID string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("applications.*").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.id = ? AND jobs.company_id = ?", id, companyID).
		Take(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, a *models.Application) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"status": a.Status, "updated_at": a.UpdatedAt})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
