package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wrongbook_backend/internal/config"
	"wrongbook_backend/internal/controller"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/service"
	"wrongbook_backend/pkg/database"
	"wrongbook_backend/pkg/logger"
	"wrongbook_backend/pkg/monitoring"
	"wrongbook_backend/pkg/security"
	"wrongbook_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
}

type repositories struct {
	user          *repository.UserRepository
	link          *repository.ParentStudentLinkRepository
	subject       *repository.SubjectRepository
	category      *repository.CategoryRepository
	errorReason   *repository.ErrorReasonRepository
	wrongQuestion *repository.WrongQuestionRepository
	studyRecord   *repository.StudyRecordRepository
	statistics    *repository.StatisticsRepository
	paper         *repository.PaperRepository
	question      *repository.QuestionRepository
	variant       *repository.VariantRepository
	export        *repository.ExportRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	metadata      *service.MetadataService
	wrongQuestion *service.WrongQuestionService
	statistics    *service.StatisticsService
	storage       *service.StorageService
	ai            *service.AIService
	ocr           *service.OCRService
	image         *service.ImageService
	paper         *service.PaperService
	variant       *service.VariantService
	export        *service.ExportService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	metadata      *controller.MetadataController
	wrongQuestion *controller.WrongQuestionController
	statistics    *controller.StatisticsController
	ocr           *controller.OCRController
	variant       *controller.VariantController
	export        *controller.ExportController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		link:          repository.NewParentStudentLinkRepository(db),
		subject:       repository.NewSubjectRepository(db),
		category:      repository.NewCategoryRepository(db),
		errorReason:   repository.NewErrorReasonRepository(db),
		wrongQuestion: repository.NewWrongQuestionRepository(db),
		studyRecord:   repository.NewStudyRecordRepository(db),
		statistics:    repository.NewStatisticsRepository(db),
		paper:         repository.NewPaperRepository(db),
		question:      repository.NewQuestionRepository(db),
		variant:       repository.NewVariantRepository(db),
		export:        repository.NewExportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.image = service.NewImageService()
	s.ocr = service.NewOCRService(s.ai)

	s.auth = service.NewAuthService(repos.user, db, cfg)
	s.user = service.NewUserService(repos.user, repos.link, db)
	s.metadata = service.NewMetadataService(repos.subject, repos.category, repos.errorReason)
	s.wrongQuestion = service.NewWrongQuestionService(
		repos.wrongQuestion,
		repos.studyRecord,
		repos.user,
		repos.subject,
		repos.category,
		repos.errorReason,
		repos.paper,
		repos.question,
		db,
	)
	s.statistics = service.NewStatisticsService(repos.statistics, repos.user)
	s.paper = service.NewPaperService(repos.paper, s.ocr, s.image, s.storage, db)
	s.variant = service.NewVariantService(s.ai, repos.variant, repos.question)
	s.export = service.NewExportService(repos.export, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		user:          controller.NewUserController(s.user),
		metadata:      controller.NewMetadataController(s.metadata),
		wrongQuestion: controller.NewWrongQuestionController(s.wrongQuestion),
		statistics:    controller.NewStatisticsController(s.statistics),
		ocr:           controller.NewOCRController(s.paper),
		variant:       controller.NewVariantController(s.variant),
		export:        controller.NewExportController(s.export),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("wrongbook-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
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

	// 等待中断信号优雅关闭
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
