package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
)

func TestProfileCreateOncePerUser(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	ctx := context.Background()

	p, err := svc.Create(ctx, seeker, ProfileInput{ProfessionalHeadline: "Go dev", Skills: []string{"go", "sql"}})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)

	_, err = svc.Create(ctx, seeker, ProfileInput{ProfessionalHeadline: "again"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestProfileCreateRequiresJobSeeker(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	employer := seedUser(db, "e1", models.RoleEmployer)

	_, err := svc.Create(context.Background(), employer, ProfileInput{})
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
	assert.Empty(t, db.profiles)
}

func TestProfileCreateRaceMapsToConflict(t *testing.T) {
	db := newMemDB()
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	// pre-check sees nothing, insert hits the unique key
	svc := NewProfileService(racingProfiles{fakeProfiles{db}})

	db.profiles["u1"] = &models.Profile{ID: "p0", UserID: "u1"}
	_, err := svc.Create(context.Background(), seeker, ProfileInput{})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

type racingProfiles struct{ fakeProfiles }

func (racingProfiles) GetByUserID(context.Context, string) (*models.Profile, error) {
	return nil, utils.ErrNotFound
}

func TestProfileTimelineEntriesNeedOrganizationAndTitle(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	seeker := seedUser(db, "u1", models.RoleJobSeeker)

	_, err := svc.Create(context.Background(), seeker, ProfileInput{
		Experience: []models.TimelineEntry{{Organization: "Acme"}},
	})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestProfileUpdateAppliesOnlyProvidedFields(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	ctx := context.Background()

	_, err := svc.Create(ctx, seeker, ProfileInput{ProfessionalHeadline: "Go dev", Location: "Berlin"})
	require.NoError(t, err)

	bio := "ten years of backend"
	p, err := svc.Update(ctx, seeker, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, p.Bio)
	assert.Equal(t, "Go dev", p.ProfessionalHeadline)
	assert.Equal(t, "Berlin", p.Location)
	assert.Equal(t, "u1", p.UserID)
}

func TestProfileUpdateWithoutProfileIsNotFound(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	seeker := seedUser(db, "u1", models.RoleJobSeeker)

	_, err := svc.Update(context.Background(), seeker, UpdateProfileInput{})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestPublicProfileHidesEmail(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(fakeProfiles{db})
	seeker := seedUser(db, "u1", models.RoleJobSeeker)
	viewer := seedUser(db, "u2", models.RoleJobSeeker)
	ctx := context.Background()

	_, err := svc.Create(ctx, seeker, ProfileInput{Phone: "+49 123"})
	require.NoError(t, err)

	pub, err := svc.GetPublic(ctx, viewer, "u1")
	require.NoError(t, err)
	assert.Equal(t, "User u1", pub.User.Name)
	assert.Empty(t, pub.User.Email)
}
