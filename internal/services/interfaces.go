package services

import (
	"context"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

// AuthService handles student login and the account lockout state machine
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	// Unlock clears the lock and failure counters regardless of elapsed time
	Unlock(ctx context.Context, studentID uint, unlockedBy string) error
}

// StudentService manages student records and score views
type StudentService interface {
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.StudentResponse, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error)
	Delete(ctx context.Context, id uint) error

	// GetCombinedScores merges test category scores with verified achievement
	// contributions into one per-category view
	GetCombinedScores(ctx context.Context, studentID uint) (*models.CombinedScoreResponse, error)

	GetClassStats(ctx context.Context, studentClass string) (*repositories.ClassAssessmentStats, error)
}

// AssessmentService drives the assessment result lifecycle
type AssessmentService interface {
	Start(ctx context.Context, studentID uint) (*models.StartAssessmentResponse, error)
	SaveProgress(ctx context.Context, studentID uint, req models.SaveProgressRequest) (*models.SaveProgressResponse, error)
	Submit(ctx context.Context, studentID uint, req models.SubmitAssessmentRequest) (*models.SubmitAssessmentResponse, error)
	Restart(ctx context.Context, studentID uint) (*models.RestartAssessmentResponse, error)
	CancelEdit(ctx context.Context, studentID uint) (*models.CancelEditResponse, error)
	GetResult(ctx context.Context, studentID uint) (*models.AssessmentResult, error)
	GetProgress(ctx context.Context, studentID uint) (*models.AssessmentProgressResponse, error)
}

// AchievementService manages achievements and the achievement type catalog
type AchievementService interface {
	Create(ctx context.Context, req models.CreateAchievementRequest) (*models.AchievementResponse, error)
	Update(ctx context.Context, id uint, req models.UpdateAchievementRequest) (*models.AchievementResponse, error)
	Delete(ctx context.Context, id uint) error
	Verify(ctx context.Context, id uint, verifiedBy string) (*models.AchievementResponse, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.AchievementResponse, error)

	CreateType(ctx context.Context, req models.CreateAchievementTypeRequest) (*models.AchievementType, error)
	ListTypes(ctx context.Context, filters repositories.AchievementTypeFilters) ([]*models.AchievementType, int64, error)
}

// ServiceManager aggregates all services behind one dependency surface
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Assessment() AssessmentService
	Achievement() AchievementService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
