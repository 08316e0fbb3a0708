package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobboard/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=jobboard dbname=jobboard sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func jobSQL(db *gorm.DB, f JobFilter) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []models.Job
		return applyJobFilter(tx.Model(&models.Job{}), f).Find(&rows)
	})
}

func TestApplyJobFilter_NoFiltersOnlyActive(t *testing.T) {
	sql := jobSQL(dryRunDB(t), JobFilter{})

	assert.Contains(t, sql, "jobs.status = 'active'")
	assert.NotContains(t, sql, "ILIKE")
	assert.NotContains(t, sql, "salary")
}

func TestApplyJobFilter_TextGroupAndLocation(t *testing.T) {
	sql := jobSQL(dryRunDB(t), JobFilter{Search: "engineer", Location: "Berlin"})

	assert.Contains(t, sql, "JOIN companies ON companies.id = jobs.company_id")
	assert.Contains(t, sql, "jobs.status = 'active'")
	assert.Contains(t, sql,
		"(jobs.title ILIKE '%engineer%' OR jobs.description ILIKE '%engineer%' OR companies.name ILIKE '%engineer%')")
	assert.Contains(t, sql, "AND jobs.location ILIKE '%Berlin%'")

	// the location condition must not be folded into the OR-group
	orGroup := sql[strings.Index(sql, "(jobs.title"):]
	orGroup = orGroup[:strings.Index(orGroup, ")")+1]
	assert.NotContains(t, orGroup, "Berlin")
}

func TestApplyJobFilter_AllFilters(t *testing.T) {
	lo, hi := 50000, 90000
	sql := jobSQL(dryRunDB(t), JobFilter{
		EmploymentType:  "full-time",
		ExperienceLevel: "senior",
		RemoteOnly:      true,
		SalaryMin:       &lo,
		SalaryMax:       &hi,
	})

	assert.Contains(t, sql, "jobs.employment_type = 'full-time'")
	assert.Contains(t, sql, "jobs.experience_level = 'senior'")
	assert.Contains(t, sql, "jobs.is_remote = true")
	assert.Contains(t, sql, "jobs.salary_min >= 50000")
	assert.Contains(t, sql, "jobs.salary_max <= 90000")
	assert.Contains(t, sql, "jobs.status = 'active'")
}

func TestApplyCandidateFilter_ANDsLocationWithTextGroup(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []candidateRow
		return applyCandidateFilter(tx.Model(&models.Profile{}), CandidateFilter{Search: "go", Location: "Lisbon"}).Find(&rows)
	})

	assert.Contains(t, sql,
		"(profiles.professional_headline ILIKE '%go%' OR profiles.bio ILIKE '%go%' OR users.name ILIKE '%go%')")
	assert.Contains(t, sql, "AND profiles.location ILIKE '%Lisbon%'")
	assert.NotContains(t, sql, "skills ILIKE")
}
