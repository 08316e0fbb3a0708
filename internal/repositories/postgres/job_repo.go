package postgres

import (
	"context"

	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

// JobFilter holds the optional public search parameters. Zero values impose no constraint.
type JobFilter struct {
	Search          string
	Location        string
	EmploymentType  string
	ExperienceLevel string
	RemoteOnly      bool
	SalaryMin       *int
	SalaryMax       *int
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetListing(ctx context.Context, id string) (*models.JobListing, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetOwned(ctx context.Context, id, companyID string) (*models.Job, error)
	SearchActive(ctx context.Context, f JobFilter) ([]models.JobListing, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	Save(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id, companyID string) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return translate(r.db.WithContext(ctx).Omit("Company").Create(j).Error)
}

func (r *jobRepo) GetListing(ctx context.Context, id string) (*models.JobListing, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("jobs.id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	l := toListing(j, true)
	return &l, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&j).Error; err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) GetOwned(ctx context.Context, id, companyID string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) SearchActive(ctx context.Context, f JobFilter) ([]models.JobListing, error) {
	var rows []models.Job
	q := applyJobFilter(r.db.WithContext(ctx).Model(&models.Job{}), f).
		Preload("Company").
		Order("jobs.created_at DESC")
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]models.JobListing, 0, len(rows))
	for _, j := range rows {
		out = append(out, toListing(j, false))
	}
	return out, nil
}

// applyJobFilter builds: status = active AND (title|description|company name match) AND the remaining filters.
func applyJobFilter(q *gorm.DB, f JobFilter) *gorm.DB {
	q = q.Select("jobs.*").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.status = ?", string(models.JobActive))

	if f.Search != "" {
		p := ilike(f.Search)
		text := q.Session(&gorm.Session{NewDB: true}).
			Where("jobs.title ILIKE ?", p).
			Or("jobs.description ILIKE ?", p).
			Or("companies.name ILIKE ?", p)
		q = q.Where(text)
	}
	if f.Location != "" {
		q = q.Where("jobs.location ILIKE ?", ilike(f.Location))
	}
	if f.EmploymentType != "" {
		q = q.Where("jobs.employment_type = ?", f.EmploymentType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("jobs.experience_level = ?", f.ExperienceLevel)
	}
	if f.RemoteOnly {
		q = q.Where("jobs.is_remote = ?", true)
	}
	if f.SalaryMin != nil {
		q = q.Where("jobs.salary_min >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		q = q.Where("jobs.salary_max <= ?", *f.SalaryMax)
	}
	return q
}

func (r *jobRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *jobRepo) Save(ctx context.Context, j *models.Job) error {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND company_id = ?", j.ID, j.CompanyID).
		Select("title", "description", "requirements", "responsibilities", "salary_min", "salary_max",
			"salary_currency", "location", "employment_type", "experience_level", "is_remote", "status", "updated_at").
		Updates(j)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id, companyID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.Job{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func toListing(j models.Job, detail bool) models.JobListing {
	l := models.JobListing{Job: j}
	if c := j.Company; c != nil {
		l.Company = models.JobCompany{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL, Location: c.Location}
		if detail {
			l.Company.Description = c.Description
			l.Company.Website = c.Website
		}
	}
	l.Job.Company = nil
	return l
}
