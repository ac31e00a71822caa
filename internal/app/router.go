package app

import (
	"wrongbook_backend/docs"
	"wrongbook_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 认证
		api.POST("/auth/student-login", c.auth.StudentLogin)

		// 用户与家长-学生关系
		api.POST("/users", c.user.CreateUser)
		api.GET("/users", c.user.ListUsers)
		api.GET("/users/:id", c.user.GetUser)
		api.PUT("/users/:id", c.user.UpdateUser)
		api.POST("/parent-student-links", c.user.CreateParentStudentLink)
		api.DELETE("/parent-student-links/:id", c.user.DeleteParentStudentLink)
		api.GET("/parents/:id/students", c.user.ListStudentsByParent)
		api.GET("/students/:id/parents", c.user.ListParentsByStudent)

		// 字典
		api.GET("/subjects", c.metadata.ListSubjects)
		api.POST("/subjects", c.metadata.CreateSubject)
		api.GET("/wrong-question-categories", c.metadata.ListCategories)
		api.POST("/wrong-question-categories", c.metadata.CreateCategory)
		api.DELETE("/wrong-question-categories/:id", c.metadata.DeleteCategory)
		api.GET("/error-reasons", c.metadata.ListErrorReasons)
		api.POST("/error-reasons", c.metadata.CreateErrorReason)
		api.DELETE("/error-reasons/:id", c.metadata.DeleteErrorReason)

		// 错题本
		api.POST("/wrong-questions", c.wrongQuestion.CreateWrongQuestion)
		api.GET("/wrong-questions", c.wrongQuestion.ListWrongQuestions)
		api.GET("/wrong-questions/:id", c.wrongQuestion.GetWrongQuestion)
		api.PUT("/wrong-questions/:id", c.wrongQuestion.UpdateWrongQuestion)
		api.DELETE("/wrong-questions/:id", c.wrongQuestion.DeleteWrongQuestion)
		api.POST("/wrong-questions/:id/study-records", c.wrongQuestion.CreateStudyRecord)
		api.GET("/wrong-questions/:id/study-records", c.wrongQuestion.ListStudyRecords)

		// 统计
		api.GET("/statistics/:studentId/overview", c.statistics.Overview)
		api.GET("/statistics/:studentId/by-subject", c.statistics.BySubject)
		api.GET("/statistics/:studentId/by-grade", c.statistics.ByGrade)
		api.GET("/statistics/:studentId/by-category", c.statistics.ByCategory)
		api.GET("/statistics/:studentId/by-error-reason", c.statistics.ByErrorReason)
		api.GET("/statistics/:studentId/trend", c.statistics.Trend)

		// 内容流水线
		api.POST("/ocr/extract", c.ocr.ExtractQuestions)
		api.GET("/papers/:id", c.ocr.GetPaper)
		api.DELETE("/papers/:id", c.ocr.DeletePaper)
		api.POST("/variants/generate", c.variant.GenerateVariants)
		api.GET("/questions/:id/variants", c.variant.ListByQuestion)
		api.POST("/export", c.export.CreateExport)
		api.GET("/export/:jobId", c.export.GetExport)
	}
}
