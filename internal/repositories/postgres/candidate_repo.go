package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/gorm"
)

// CandidateFilter matches scalar profile fields only; skills are not searched.
type CandidateFilter struct {
	Search   string
	Location string
}

type Candidate struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"userId"`
	ProfessionalHeadline string              `json:"professionalHeadline"`
	Bio                  string              `json:"bio"`
	Skills               pq.StringArray      `json:"skills"`
	Location             string              `json:"location"`
	User                 models.ProfileOwner `json:"user"`
}

type CandidateRepository interface {
	Search(ctx context.Context, f CandidateFilter) ([]Candidate, error)
}

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

type candidateRow struct {
	ID                   string
	UserID               string
	ProfessionalHeadline string
	Bio                  string
	Skills               pq.StringArray
	Location             string
	UserName             string
}

func (r *candidateRepo) Search(ctx context.Context, f CandidateFilter) ([]Candidate, error) {
	var rows []candidateRow
	err := applyCandidateFilter(r.db.WithContext(ctx).Model(&models.Profile{}), f).
		Order("profiles.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]Candidate, 0, len(rows))
	for _, x := range rows {
		out = append(out, Candidate{
			ID:                   x.ID,
			UserID:               x.UserID,
			ProfessionalHeadline: x.ProfessionalHeadline,
			Bio:                  x.Bio,
			Skills:               x.Skills,
			Location:             x.Location,
			User:                 models.ProfileOwner{Name: x.UserName},
		})
	}
	return out, nil
}

func applyCandidateFilter(q *gorm.DB, f CandidateFilter) *gorm.DB {
	q = q.Select(`profiles.id, profiles.user_id,
			COALESCE(profiles.professional_headline, '') AS professional_headline,
			COALESCE(profiles.bio, '') AS bio, profiles.skills,
			COALESCE(profiles.location, '') AS location, users.name AS user_name`).
		Joins("JOIN users ON users.id = profiles.user_id")

	if f.Search != "" {
		p := ilike(f.Search)
		q = q.Where(q.Session(&gorm.Session{NewDB: true}).
			Where("profiles.professional_headline ILIKE ?", p).
			Or("profiles.bio ILIKE ?", p).
			Or("users.name ILIKE ?", p))
	}
	if f.Location != "" {
		q = q.Where("profiles.location ILIKE ?", ilike(f.Location))
	}
	return q
}
