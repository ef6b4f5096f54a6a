package app

import (
	"chaos_backend/internal/config"
	"chaos_backend/internal/controller"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/service"
	"chaos_backend/pkg/database"
	"chaos_backend/pkg/logger"
	"chaos_backend/pkg/monitoring"
	"chaos_backend/pkg/security"
	"chaos_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	organisation *repository.OrganisationRepository
	campaign     *repository.CampaignRepository
	role         *repository.RoleRepository
	question     *repository.QuestionRepository
	application  *repository.ApplicationRepository
	answer       *repository.AnswerRepository
	rating       *repository.RatingRepository
	interview    *repository.InterviewRepository
}

type services struct {
	auth         *service.AuthService
	organisation *service.OrganisationService
	storage      *service.StorageService
	campaign     *service.CampaignService
	question     *service.QuestionService
	application  *service.ApplicationService
	answer       *service.AnswerService
	review       *service.ReviewService
	export       *service.ExportService
	interview    *service.InterviewService
	mailer       service.Mailer
}

type controllers struct {
	auth         *controller.AuthController
	organisation *controller.OrganisationController
	campaign     *controller.CampaignController
	question     *controller.QuestionController
	application  *controller.ApplicationController
	answer       *controller.AnswerController
	review       *controller.ReviewController
	interview    *controller.InterviewController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		organisation: repository.NewOrganisationRepository(db),
		campaign:     repository.NewCampaignRepository(db),
		role:         repository.NewRoleRepository(db),
		question:     repository.NewQuestionRepository(db, rdb),
		application:  repository.NewApplicationRepository(db),
		answer:       repository.NewAnswerRepository(db),
		rating:       repository.NewRatingRepository(db),
		interview:    repository.NewInterviewRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mailer = service.NewMailer(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.organisation = service.NewOrganisationService(repos.organisation, repos.user)
	s.campaign = service.NewCampaignService(repos.campaign, repos.role, repos.organisation, s.storage)
	s.question = service.NewQuestionService(repos.question, repos.role, repos.campaign)
	s.application = service.NewApplicationService(repos.application, repos.campaign, repos.role, s.campaign)
	s.answer = service.NewAnswerService(repos.answer, repos.question, s.application)
	s.review = service.NewReviewService(repos.application, repos.answer, repos.question, repos.rating, repos.user, repos.campaign, s.mailer)
	s.export = service.NewExportService(repos.application, repos.answer, repos.question, repos.role, repos.user, repos.rating, repos.campaign)
	s.interview = service.NewInterviewService(repos.interview, repos.campaign, s.application)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		organisation: controller.NewOrganisationController(s.organisation),
		campaign:     controller.NewCampaignController(s.campaign),
		question:     controller.NewQuestionController(s.question),
		application:  controller.NewApplicationController(s.application),
		answer:       controller.NewAnswerController(s.answer),
		review:       controller.NewReviewController(s.review, s.export),
		interview:    controller.NewInterviewController(s.interview),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis is a cache here, not a dependency; degrade to DB-only reads.
		logger.Log.Warn("Redis unavailable, question cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("chaos-recruitment", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ReloadConfig swaps in a freshly parsed config. Connection settings only
// apply on restart; this keeps the accessible copy current for everything
// read per request.
func (a *App) ReloadConfig(cfg *config.Config) {
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	a.Config = cfg
	logger.Log.Info("Configuration reloaded")
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
