package app

import (
	"github.com/sohinisarkar2002/EduAssist/docs"
	"github.com/sohinisarkar2002/EduAssist/internal/middleware"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/", c.health.Root)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerKnowledgeRoutes(authGroup, c)
		a.registerGenerationRoutes(authGroup, c)
		a.registerWorkflowRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/password-reset-request", c.auth.RequestPasswordReset)
			auth.POST("/reset-password", c.auth.ResetPassword)
		}
	}
}

// 知识库: 文档, 课程, 对话问答
func (a *App) registerKnowledgeRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/profile", c.auth.Profile)
	group.GET("/users", middleware.RoleMiddleware(model.Admin), c.auth.ListUsers)

	courses := group.Group("/courses")
	{
		courses.GET("", c.course.List)
		courses.POST("", middleware.RoleMiddleware(model.Teacher), c.course.Create)
	}

	knowledge := group.Group("/knowledge")
	{
		documents := knowledge.Group("/documents")
		{
			documents.GET("", c.knowledge.ListDocuments)
			documents.POST("", middleware.RoleMiddleware(model.Teacher), c.knowledge.UploadDocument)
			documents.GET("/:id/download", c.knowledge.DownloadDocument)
			documents.DELETE("/:id", middleware.RoleMiddleware(model.Teacher), c.knowledge.DeleteDocument)
		}

		conversations := knowledge.Group("/conversations")
		{
			conversations.POST("", c.knowledge.CreateConversation)
			conversations.GET("", c.knowledge.ListConversations)
			conversations.GET("/:id", c.knowledge.GetConversation)
			conversations.PATCH("/:id/status", c.knowledge.UpdateConversationStatus)
			conversations.POST("/:id/reply", middleware.RoleMiddleware(model.Teacher), c.knowledge.TAReply)
		}

		knowledge.POST("/chat", c.knowledge.PostChat)
	}
}

// AI生成: 测验, 学习指南, 幻灯片
func (a *App) registerGenerationRoutes(group *gin.RouterGroup, c *controllers) {
	assessments := group.Group("/assessments")
	{
		assessments.POST("", middleware.RoleMiddleware(model.Teacher), c.assessment.Create)
		assessments.GET("", c.assessment.List)
		assessments.GET("/my-attempts", c.assessment.MyAttempts)
		assessments.GET("/:id", c.assessment.Get)
		assessments.DELETE("/:id", middleware.RoleMiddleware(model.Teacher), c.assessment.Delete)
		assessments.POST("/:id/attempts", c.assessment.StartAttempt)
		assessments.GET("/:id/attempts", middleware.RoleMiddleware(model.Teacher), c.assessment.AttemptsByAssessment)
		assessments.POST("/attempts/:id/submit", c.assessment.SubmitAttempt)
	}

	guides := group.Group("/study-guides")
	{
		guides.GET("/video-info", c.studyGuide.VideoInfo)
		guides.GET("/transcript/:videoId", c.studyGuide.Transcript)
		guides.POST("", c.studyGuide.Create)
		guides.GET("", c.studyGuide.List)
		guides.GET("/:id", c.studyGuide.Get)
		guides.DELETE("/:id", c.studyGuide.Delete)
	}

	decks := group.Group("/slide-decks")
	{
		decks.POST("", c.slideDeck.Create)
		decks.GET("", c.slideDeck.List)
		decks.GET("/:id", c.slideDeck.Get)
		decks.PUT("/:id/slides/:slideId", c.slideDeck.UpdateSlide)
		decks.DELETE("/:id", c.slideDeck.Delete)
	}
}

// 管理流程与反馈
func (a *App) registerWorkflowRoutes(group *gin.RouterGroup, c *controllers) {
	workflow := group.Group("/workflow-requests")
	{
		workflow.POST("", c.workflow.Create)
		workflow.GET("", c.workflow.List)
		workflow.GET("/:id", c.workflow.Get)
		workflow.POST("/:id/decision", middleware.RoleMiddleware(model.Admin), c.workflow.Decide)
	}

	feedback := group.Group("/feedback")
	{
		feedback.POST("", c.feedback.Create)
		feedback.GET("", c.feedback.List)
		feedback.GET("/mine", c.feedback.Mine)
		feedback.GET("/summary", c.feedback.Summary)
	}
}
