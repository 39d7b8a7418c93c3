package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
)

// HandlerManager wires service implementations to HTTP handlers and owns
// route registration.
type HandlerManager struct {
	serviceManager services.ServiceManager
	logger         utils.Logger

	authHandler        *AuthHandler
	studentHandler     *StudentHandler
	assessmentHandler  *AssessmentHandler
	achievementHandler *AchievementHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager: serviceManager,
		logger:         logger,

		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:     NewStudentHandler(serviceManager.Student(), logger),
		assessmentHandler:  NewAssessmentHandler(serviceManager.Assessment(), logger),
		achievementHandler: NewAchievementHandler(serviceManager.Achievement(), logger),
	}
}

// SetupRoutes registers all API routes on the given router
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
		}

		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
			students.POST("/:id/unlock", hm.authHandler.Unlock)

			students.GET("/:id/scores", hm.studentHandler.GetCombinedScores)
			students.GET("/classes/:class/stats", hm.studentHandler.GetClassStats)

			assessment := students.Group("/:id/assessment")
			{
				assessment.POST("/start", hm.assessmentHandler.StartAssessment)
				assessment.PUT("/progress", hm.assessmentHandler.SaveProgress)
				assessment.GET("/progress", hm.assessmentHandler.GetProgress)
				assessment.POST("/submit", hm.assessmentHandler.SubmitAssessment)
				// Re-submission after a restart; the pending snapshot makes
				// the same handler finalize to edited
				assessment.POST("/submit-edited", hm.assessmentHandler.SubmitAssessment)
				assessment.POST("/restart", hm.assessmentHandler.RestartAssessment)
				assessment.POST("/cancel-edit", hm.assessmentHandler.CancelEdit)
				assessment.GET("/result", hm.assessmentHandler.GetResult)
			}

			students.GET("/:id/achievements", hm.achievementHandler.GetStudentAchievements)
		}

		achievements := v1.Group("/achievements")
		{
			achievements.POST("", hm.achievementHandler.CreateAchievement)
			achievements.PUT("/:id", hm.achievementHandler.UpdateAchievement)
			achievements.DELETE("/:id", hm.achievementHandler.DeleteAchievement)
			achievements.POST("/:id/verify", hm.achievementHandler.VerifyAchievement)
		}

		achievementTypes := v1.Group("/achievement-types")
		{
			achievementTypes.POST("", hm.achievementHandler.CreateAchievementType)
			achievementTypes.GET("", hm.achievementHandler.ListAchievementTypes)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		hm.logger.LogError(err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rmib-profile-service",
	})
}
