package postgres

import (
	"context"

	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *models.Company) error
	GetByUserID(ctx context.Context, userID string) (*models.Company, error)
	Save(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id string) error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *companyRepo) GetByUserID(ctx context.Context, userID string) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *companyRepo) Save(ctx context.Context, c *models.Company) error {
	res := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Select("name", "description", "industry", "company_size", "website", "logo_url", "location", "updated_at").
		Updates(c)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the company; jobs, applications and saved jobs follow by FK cascade.
func (r *companyRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
