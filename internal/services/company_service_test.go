package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
)

func TestCompanyCreateOncePerEmployer(t *testing.T) {
	db := newMemDB()
	svc := NewCompanyService(fakeCompanies{db})
	employer := seedUser(db, "e1", models.RoleEmployer)
	ctx := context.Background()

	c, err := svc.Create(ctx, employer, CompanyInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "e1", c.UserID)

	_, err = svc.Create(ctx, employer, CompanyInput{Name: "Acme 2"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestCompanyCreateValidation(t *testing.T) {
	db := newMemDB()
	svc := NewCompanyService(fakeCompanies{db})
	employer := seedUser(db, "e1", models.RoleEmployer)
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	ctx := context.Background()

	_, err := svc.Create(ctx, employer, CompanyInput{Name: "  "})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Create(ctx, seeker, CompanyInput{Name: "Acme"})
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestCompanyDeleteCascadesToJobsApplicationsAndSavedJobs(t *testing.T) {
	db := newMemDB()
	companies := NewCompanyService(fakeCompanies{db})
	jobs := NewJobService(fakeJobs{db}, fakeCompanies{db})
	apps := NewApplicationService(fakeApps{db}, fakeJobs{db}, fakeCompanies{db}, nil)
	saved := NewSavedJobService(fakeSaved{db}, fakeJobs{db})

	employer := seedUser(db, "e1", models.RoleEmployer)
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	ctx := context.Background()

	_, err := companies.Create(ctx, employer, CompanyInput{Name: "Acme"})
	require.NoError(t, err)
	j, err := jobs.Create(ctx, employer, JobInput{Title: "Backend", Description: "Go"})
	require.NoError(t, err)
	_, err = apps.Apply(ctx, seeker, ApplyInput{JobID: j.ID})
	require.NoError(t, err)
	_, err = saved.Save(ctx, seeker, SaveJobInput{JobID: j.ID})
	require.NoError(t, err)

	require.NoError(t, companies.Delete(ctx, employer))

	assert.Empty(t, db.companies)
	assert.Empty(t, db.jobs)
	assert.Empty(t, db.apps)
	assert.Empty(t, db.saved)
}

func TestCompanyUpdateWithoutCompanyIsNotFound(t *testing.T) {
	db := newMemDB()
	svc := NewCompanyService(fakeCompanies{db})
	employer := seedUser(db, "e1", models.RoleEmployer)

	name := "New"
	_, err := svc.Update(context.Background(), employer, UpdateCompanyInput{Name: &name})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
