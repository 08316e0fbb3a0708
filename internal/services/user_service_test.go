package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
)

func newUserSvc() (UserService, *memDB) {
	db := newMemDB()
	return NewUserService(fakeUsers{db}, fakeTokens{}), db
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newUserSvc()
	ctx := context.Background()

	res, err := svc.Signup(ctx, SignupInput{Email: " Ana@Example.com ", Password: "s3cret", Name: "Ana", Role: models.RoleJobSeeker})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, "token-"+res.User.ID, res.Token)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)

	logged, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)

	me, err := svc.Me(ctx, models.Principal{UserID: res.User.ID, Role: models.RoleJobSeeker})
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newUserSvc()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "dup@example.com", Password: "x", Name: "A", Role: models.RoleEmployer})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Email: "DUP@example.com", Password: "y", Name: "B", Role: models.RoleJobSeeker})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserSvc()

	_, err := svc.Signup(context.Background(), SignupInput{Email: "a@example.com", Password: "x", Name: "A", Role: "admin"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newUserSvc()
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "known@example.com", Password: "right", Name: "K", Role: models.RoleJobSeeker})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "wrong"})
	_, unknownEmail := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "wrong"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, utils.IsCode(wrongPassword, utils.CodeUnauthorized))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestMeRequiresCaller(t *testing.T) {
	svc, _ := newUserSvc()

	_, err := svc.Me(context.Background(), models.Principal{})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
