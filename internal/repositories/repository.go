package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
)

// StudentRepository manages student records including the lockout counters
type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	GetByNISN(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, int64, error)

	// Row-locking variants used inside transactions so concurrent logins
	// or submits serialize on the student row
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	GetByNISNForUpdate(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error)

	UpdateAssessmentStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error
	ExistsByNISN(ctx context.Context, tx *gorm.DB, nisn string) (bool, error)
	GetClassStats(ctx context.Context, tx *gorm.DB, studentClass string) (*ClassAssessmentStats, error)
}

// ResultRepository manages the single assessment result per student
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentResult, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error)
	GetByStudentIDForUpdate(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error)
	Update(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	CountByStatus(ctx context.Context, tx *gorm.DB, status models.ResultStatus) (int64, error)
}

// AchievementRepository manages student achievement records
type AchievementRepository interface {
	Create(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error)
	GetByIDWithType(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error)
	Update(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters AchievementFilters) ([]*models.StudentAchievement, int64, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error)
	GetVerifiedByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error)
}

// AchievementTypeRepository manages the static achievement type catalog
type AchievementTypeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AchievementType, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.AchievementType, error)
	Update(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters AchievementTypeFilters) ([]*models.AchievementType, int64, error)
	ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error)
}

// Repository aggregates every repository interface
type Repository interface {
	Student() StudentRepository
	Result() ResultRepository
	Achievement() AchievementRepository
	AchievementType() AchievementTypeRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
