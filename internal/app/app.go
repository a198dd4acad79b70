package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/controller"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/pkg/database"
	"github.com/sohinisarkar2002/EduAssist/pkg/jobs"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"github.com/sohinisarkar2002/EduAssist/pkg/monitoring"
	"github.com/sohinisarkar2002/EduAssist/pkg/security"
	"github.com/sohinisarkar2002/EduAssist/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const Version = "1.0.0"

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	document     *repository.DocumentRepository
	conversation *repository.ConversationRepository
	studyGuide   *repository.StudyGuideRepository
	assessment   *repository.AssessmentRepository
	slideDeck    *repository.SlideDeckRepository
	workflow     *repository.WorkflowRepository
	feedback     *repository.FeedbackRepository
}

type services struct {
	queue      *jobs.Queue
	storage    service.StorageService
	ai         *service.AIService
	vector     *service.VectorService
	rag        *service.RAGService
	youtube    *service.YouTubeService
	email      *service.EmailService
	auth       *service.AuthService
	course     *service.CourseService
	document   *service.DocumentService
	chat       *service.ChatService
	studyGuide *service.StudyGuideService
	assessment *service.AssessmentService
	slideDeck  *service.SlideDeckService
	workflow   *service.WorkflowService
	feedback   *service.FeedbackService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	knowledge  *controller.KnowledgeController
	studyGuide *controller.StudyGuideController
	assessment *controller.AssessmentController
	slideDeck  *controller.SlideDeckController
	workflow   *controller.WorkflowController
	feedback   *controller.FeedbackController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		document:     repository.NewDocumentRepository(db),
		conversation: repository.NewConversationRepository(db),
		studyGuide:   repository.NewStudyGuideRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		slideDeck:    repository.NewSlideDeckRepository(db),
		workflow:     repository.NewWorkflowRepository(db),
		feedback:     repository.NewFeedbackRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	s.queue = jobs.NewQueue(cfg.Jobs.Workers, cfg.Jobs.QueueSize)
	s.ai = service.NewAIService(cfg.AI)
	s.vector = service.NewVectorService(cfg.Vector)
	s.rag = service.NewRAGService(s.ai, s.vector, cfg.RAG)
	s.youtube = service.NewYouTubeService(rdb)
	s.email = service.NewEmailService(cfg.Email)

	s.auth = service.NewAuthService(repos.user, s.email, cfg)
	s.course = service.NewCourseService(repos.course)
	s.document = service.NewDocumentService(repos.document, s.rag, s.storage, s.queue, cfg)
	s.chat = service.NewChatService(repos.conversation, s.rag, s.ai)
	s.studyGuide = service.NewStudyGuideService(repos.studyGuide, s.youtube, s.ai, s.queue)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.document, s.ai, s.rag, s.storage, s.queue, cfg)
	s.slideDeck = service.NewSlideDeckService(repos.slideDeck, repos.document, s.rag, s.storage, s.ai, s.queue)
	s.workflow = service.NewWorkflowService(repos.workflow, s.ai, s.queue)
	s.feedback = service.NewFeedbackService(repos.feedback)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		knowledge:  controller.NewKnowledgeController(s.document, s.chat),
		studyGuide: controller.NewStudyGuideController(s.studyGuide),
		assessment: controller.NewAssessmentController(s.assessment),
		slideDeck:  controller.NewSlideDeckController(s.slideDeck),
		workflow:   controller.NewWorkflowController(s.workflow),
		feedback:   controller.NewFeedbackController(s.feedback),
		health:     controller.NewHealthController(db, Version),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// 鉴权中间件从上下文取配置
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(100000, time.Minute)) // 每分钟100000次请求

	// 分布式追踪中间件
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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("eduassist", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos)

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

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// HTTP连接排空后再停队列, 在途请求仍可入队
	if a.services != nil && a.services.queue != nil {
		a.services.queue.Stop()
	}

	log.Println("Server exiting")
}
