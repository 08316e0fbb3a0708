package postgres

import (
	"context"

	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

type SavedJobRepository interface {
	Create(ctx context.Context, s *models.SavedJob) error
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	Delete(ctx context.Context, userID, jobID string) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedJobView, error)
}

type savedJobRepo struct {
	db *gorm.DB
}

func NewSavedJobRepo(db *gorm.DB) SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, s *models.SavedJob) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Job").Create(s).Error)
}

func (r *savedJobRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, translate(err)
}

// Delete is idempotent: removing a bookmark that does not exist is not an error.
func (r *savedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	return translate(r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error)
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedJobView, error) {
	var rows []models.SavedJobView
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Select(`saved_jobs.id, saved_jobs.saved_at,
			jobs.id AS job_id, jobs.title AS job_title, jobs.description AS job_description,
			jobs.location AS job_location, jobs.employment_type AS job_employment_type,
			jobs.salary_min AS job_salary_min, jobs.salary_max AS job_salary_max,
			jobs.salary_currency AS job_salary_currency, jobs.is_remote AS job_is_remote,
			companies.name AS company_name, companies.logo_url AS company_logo_url,
			companies.location AS company_location`).
		Joins("JOIN jobs ON jobs.id = saved_jobs.job_id").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("saved_jobs.user_id = ?", userID).
		Order("saved_jobs.saved_at DESC").
		Scan(&rows).Error
	return rows, translate(err)
}
