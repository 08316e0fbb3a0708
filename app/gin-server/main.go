package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/jobboard/config"
	"github.com/yoockh/jobboard/internal/api/handlers"
	"github.com/yoockh/jobboard/internal/api/middleware"
	"github.com/yoockh/jobboard/internal/api/routes"
	"github.com/yoockh/jobboard/internal/auth"
	"github.com/yoockh/jobboard/internal/cache"
	"github.com/yoockh/jobboard/internal/logger"
	"github.com/yoockh/jobboard/internal/relay"
	mongorepo "github.com/yoockh/jobboard/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	log := logger.New(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("config")
	}

	if err := config.InitPostgres(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	if err := config.Migrate(config.PostgresDB); err != nil {
		log.WithError(err).Fatal("PostgreSQL migrate error")
	}
	log.Info("PostgreSQL connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// repositories
	db := config.PostgresDB
	users := pgrepo.NewUserRepo(db)
	profiles := pgrepo.NewProfileRepo(db)
	companies := pgrepo.NewCompanyRepo(db)
	jobs := pgrepo.NewJobRepo(db)
	apps := pgrepo.NewApplicationRepo(db)
	saved := pgrepo.NewSavedJobRepo(db)
	candidates := pgrepo.NewCandidateRepo(db)
	convs := pgrepo.NewConversationRepo(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	convSvc := services.NewConversationService(convs, users, jobs)

	hub := newHub(cfg, log, convSvc)
	go func() {
		if err := hub.Run(ctx); err != nil {
			log.WithError(err).Error("relay bus stopped")
		}
	}()

	var uploader storage.Uploader
	if cfg.GCSEnabled() {
		gcs, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer gcs.Close()
		uploader = gcs
		log.WithField("bucket", cfg.GCSBucket).Info("GCS uploads enabled")
	}
	media := services.NewMediaService(uploader, profiles, companies)

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("PostgreSQL handle")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.FrontendURL))
	r.MaxMultipartMemory = services.MaxResumeBytes

	routes.RegisterRoutes(r, routes.Deps{
		Verifier:     tokens,
		Health:       handlers.NewHealthHandler(handlers.PingFunc(sqlDB.PingContext)),
		Auth:         handlers.NewAuthHandler(services.NewUserService(users, tokens)),
		Job:          handlers.NewJobHandler(services.NewJobService(jobs, companies)),
		Profile:      handlers.NewProfileHandler(services.NewProfileService(profiles), media),
		Company:      handlers.NewCompanyHandler(services.NewCompanyService(companies), media),
		Application:  handlers.NewApplicationHandler(services.NewApplicationService(apps, jobs, companies, hub)),
		SavedJob:     handlers.NewSavedJobHandler(services.NewSavedJobService(saved, jobs)),
		Candidate:    handlers.NewCandidateHandler(services.NewCandidateService(candidates, profiles)),
		Conversation: handlers.NewConversationHandler(convSvc),
		WS:           handlers.NewWSHandler(ctx, hub, cfg.FrontendURL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if config.MongoClient != nil {
		_ = config.MongoClient.Disconnect(shutdownCtx)
	}
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
	_ = sqlDB.Close()
}

// newHub builds the relay. Redis makes the registry and fan-out shared across
// instances; Mongo adds the event archive. Both are optional.
func newHub(cfg config.App, log *logrus.Logger, members relay.MembershipChecker) *relay.Hub {
	var registry relay.Registry = relay.NewMemoryRegistry()
	opts := []relay.Option{relay.WithMembership(members)}

	if cfg.RedisEnabled() {
		if err := config.InitRedis(cfg.RedisURL); err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		registry = relay.NewSharedRegistry(cache.NewRedisCache(config.RedisClient))
		opts = append(opts, relay.WithBus(relay.NewRedisBus(config.RedisClient, log)))
		log.Info("Redis connected, relay is shared")
	}

	if cfg.MongoEnabled() {
		if err := config.InitMongo(cfg.MongoURI); err != nil {
			log.WithError(err).Fatal("MongoDB init error")
		}
		if err := config.EnsureMongoIndexes(cfg.MongoDB); err != nil {
			log.WithError(err).Warn("MongoDB index setup failed")
		}
		archive := mongorepo.NewRelayEventRepo(config.MongoClient.Database(cfg.MongoDB), config.RelayEventsCollection)
		opts = append(opts, relay.WithArchive(archive, 7*24*time.Hour))
		log.Info("MongoDB connected, relay events archived")
	}

	return relay.NewHub(log, registry, opts...)
}
