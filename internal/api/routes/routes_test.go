package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yoockh/jobboard/internal/api/handlers"
	"github.com/yoockh/jobboard/internal/models"
)

type stubVerifier map[string]models.Principal

func (s stubVerifier) Verify(raw string) (models.Principal, error) {
	if p, ok := s[raw]; ok {
		return p, nil
	}
	return models.Principal{}, errors.New("bad token")
}

// gatedRouter wires handlers without services; only requests rejected by
// middleware may be sent through it.
func gatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Deps{
		Verifier: stubVerifier{
			"seeker":   {UserID: "u1", Role: models.RoleJobSeeker},
			"employer": {UserID: "u2", Role: models.RoleEmployer},
		},
		Health:       handlers.NewHealthHandler(nil),
		Auth:         handlers.NewAuthHandler(nil),
		Job:          handlers.NewJobHandler(nil),
		Profile:      handlers.NewProfileHandler(nil, nil),
		Company:      handlers.NewCompanyHandler(nil, nil),
		Application:  handlers.NewApplicationHandler(nil),
		SavedJob:     handlers.NewSavedJobHandler(nil),
		Candidate:    handlers.NewCandidateHandler(nil),
		Conversation: handlers.NewConversationHandler(nil),
		WS:           handlers.NewWSHandler(context.Background(), nil, ""),
	})
	return r
}

func TestRoleGates(t *testing.T) {
	r := gatedRouter()

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/jobs/my-jobs", "seeker", http.StatusForbidden},
		{http.MethodPost, "/api/jobs", "seeker", http.StatusForbidden},
		{http.MethodPut, "/api/jobs/j1", "seeker", http.StatusForbidden},
		{http.MethodDelete, "/api/jobs/j1", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/profile", "employer", http.StatusForbidden},
		{http.MethodPost, "/api/profile/resume", "employer", http.StatusForbidden},
		{http.MethodGet, "/api/profile/u1", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/company", "seeker", http.StatusForbidden},
		{http.MethodDelete, "/api/company", "seeker", http.StatusForbidden},
		{http.MethodPost, "/api/applications", "employer", http.StatusForbidden},
		{http.MethodGet, "/api/applications/job/j1", "seeker", http.StatusForbidden},
		{http.MethodPut, "/api/applications/a1/status", "seeker", http.StatusForbidden},
		{http.MethodGet, "/api/saved-jobs", "employer", http.StatusForbidden},
		{http.MethodGet, "/api/candidates", "seeker", http.StatusForbidden},
		{http.MethodGet, "/api/conversations", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/ws", "forged", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "%s %s as %q", tc.method, tc.path, tc.token)
	}
}
