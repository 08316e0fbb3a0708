package postgres

import (
	"context"

	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
	GetPublic(ctx context.Context, userID string, withEmail bool) (*models.PublicProfile, error)
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Save writes every mutable column of an existing profile.
func (r *profileRepo) Save(ctx context.Context, p *models.Profile) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("professional_headline", "bio", "skills", "experience", "education", "location", "phone", "resume_url", "updated_at").
		Updates(p)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *profileRepo) GetPublic(ctx context.Context, userID string, withEmail bool) (*models.PublicProfile, error) {
	var row struct {
		models.Profile
		UserName  string
		UserEmail string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("profiles.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, translate(err)
	}

	out := &models.PublicProfile{
		ID:                   row.ID,
		UserID:               row.UserID,
		ProfessionalHeadline: row.ProfessionalHeadline,
		Bio:                  row.Bio,
		Skills:               row.Skills,
		Experience:           row.Experience,
		Education:            row.Education,
		Location:             row.Location,
		User:                 models.ProfileOwner{Name: row.UserName},
	}
	if withEmail {
		out.User.Email = row.UserEmail
	}
	return out, nil
}
