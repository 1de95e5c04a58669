package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Submission routes
		v1.POST("/submissions", handler.SubmitResults)
		v1.GET("/submissions", handler.ListSubmissions)
		v1.GET("/submissions/:id", handler.GetSubmission)

		// Bulk sheet routes
		v1.POST("/sheets", handler.UploadSheet)

		// Catalog routes for entry forms
		v1.GET("/students", handler.ListStudents)
		v1.GET("/tests", handler.ListTests)
		v1.GET("/tests/:name/questions", handler.ListQuestions)
	}
}
