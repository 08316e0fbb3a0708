package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/api/handlers"
	"github.com/yoockh/jobboard/internal/api/middleware"
)

type Deps struct {
	Verifier middleware.TokenVerifier

	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Job          *handlers.JobHandler
	Profile      *handlers.ProfileHandler
	Company      *handlers.CompanyHandler
	Application  *handlers.ApplicationHandler
	SavedJob     *handlers.SavedJobHandler
	Candidate    *handlers.CandidateHandler
	Conversation *handlers.ConversationHandler
	WS           *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	api.GET("/health", d.Health.Health)

	authn := middleware.JWTAuth(d.Verifier)
	seeker := middleware.RequireJobSeeker()
	employer := middleware.RequireEmployer()

	auth := api.Group("/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", authn, d.Auth.Me)

	jobs := api.Group("/jobs")
	jobs.GET("", d.Job.List)
	// registered before /:id so "my-jobs" is not read as an id
	jobs.GET("/my-jobs", authn, employer, d.Job.Mine)
	jobs.GET("/:id", d.Job.Get)
	jobs.POST("", authn, employer, d.Job.Create)
	jobs.PUT("/:id", authn, employer, d.Job.Update)
	jobs.DELETE("/:id", authn, employer, d.Job.Delete)

	profile := api.Group("/profile", authn)
	profile.GET("", seeker, d.Profile.Get)
	profile.POST("", seeker, d.Profile.Create)
	profile.PUT("", seeker, d.Profile.Update)
	profile.POST("/resume", seeker, d.Profile.UploadResume)
	profile.GET("/:id", d.Profile.GetPublic)

	company := api.Group("/company", authn, employer)
	company.GET("", d.Company.Get)
	company.POST("", d.Company.Create)
	company.PUT("", d.Company.Update)
	company.DELETE("", d.Company.Delete)
	company.POST("/logo", d.Company.UploadLogo)

	apps := api.Group("/applications", authn)
	apps.POST("", seeker, d.Application.Apply)
	apps.GET("/my-applications", seeker, d.Application.Mine)
	apps.GET("/job/:jobId", employer, d.Application.ForJob)
	apps.PUT("/:id/status", employer, d.Application.UpdateStatus)

	saved := api.Group("/saved-jobs", authn, seeker)
	saved.POST("", d.SavedJob.Save)
	saved.GET("", d.SavedJob.List)
	saved.DELETE("/:jobId", d.SavedJob.Unsave)

	candidates := api.Group("/candidates", authn, employer)
	candidates.GET("", d.Candidate.List)
	candidates.GET("/:id", d.Candidate.Get)

	convs := api.Group("/conversations", authn)
	convs.POST("", d.Conversation.Start)
	convs.GET("", d.Conversation.List)
	convs.GET("/:id/messages", d.Conversation.Messages)
	convs.POST("/:id/messages", d.Conversation.Send)
	convs.PUT("/:id/read", d.Conversation.MarkRead)

	api.GET("/ws", authn, d.WS.Serve)
}
