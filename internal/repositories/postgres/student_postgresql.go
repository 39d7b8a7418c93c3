package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/rmib-profile-service/internal/cache"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).
		Preload("Result").
		Preload("Achievements").
		Preload("Achievements.AchievementType").
		First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByNISN(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).Where("nisn = ?", nisn).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByIDForUpdate locks the student row for the remainder of the enclosing
// transaction
func (s *StudentPostgreSQL) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByNISNForUpdate locks the student row so concurrent login attempts
// serialize their counter updates
func (s *StudentPostgreSQL) GetByNISNForUpdate(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error) {
	db := s.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("nisn = ?", nisn).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	s.cacheManager.InvalidateStudentProfile(ctx, student.ID)
	return nil
}

func (s *StudentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Student{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.cacheManager.InvalidateStudentProfile(ctx, id)
	return nil
}

func (s *StudentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	db := s.getDB(tx)
	var students []*models.Student
	var total int64

	// apply filter first
	query := db.WithContext(ctx).Model(&models.Student{})
	query = s.helpers.ApplyStudentFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (s *StudentPostgreSQL) UpdateAssessmentStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Update("assessment_status", status).Error; err != nil {
		return fmt.Errorf("failed to update assessment status: %w", err)
	}

	s.cacheManager.InvalidateStudentProfile(ctx, id)
	return nil
}

func (s *StudentPostgreSQL) ExistsByNISN(ctx context.Context, tx *gorm.DB, nisn string) (bool, error) {
	db := s.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("nisn = ?", nisn).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check NISN existence: %w", err)
	}
	return count > 0, nil
}

func (s *StudentPostgreSQL) GetClassStats(ctx context.Context, tx *gorm.DB, studentClass string) (*repositories.ClassAssessmentStats, error) {
	db := s.getDB(tx)
	stats := &repositories.ClassAssessmentStats{
		StatusBreakdown: make(map[models.AssessmentStatus]int),
		InterestCounts:  make(map[scoring.Category]int),
	}

	var total int64
	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_class = ?", studentClass).
		Count(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalStudents = int(total)

	statuses := []models.AssessmentStatus{models.AssessmentPending, models.AssessmentInProgress, models.AssessmentCompleted}
	for _, status := range statuses {
		var count int64
		if err := db.WithContext(ctx).
			Model(&models.Student{}).
			Where("student_class = ? AND assessment_status = ?", studentClass, status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.StatusBreakdown[status] = int(count)
	}

	var lockedCount int64
	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_class = ? AND is_locked = true", studentClass).
		Count(&lockedCount).Error; err != nil {
		return nil, err
	}
	stats.LockedCount = int(lockedCount)

	// Primary interest distribution across submitted results
	var interestRows []struct {
		PrimaryInterest scoring.Category
		Count           int
	}
	if err := db.WithContext(ctx).
		Table("assessment_results ar").
		Joins("JOIN students s ON s.id = ar.student_id").
		Where("s.student_class = ? AND ar.status IN ?", studentClass,
			[]models.ResultStatus{models.ResultCompleted, models.ResultEdited}).
		Select("ar.primary_interest, COUNT(*) as count").
		Group("ar.primary_interest").
		Find(&interestRows).Error; err != nil {
		return nil, err
	}
	for _, row := range interestRows {
		stats.InterestCounts[row.PrimaryInterest] = row.Count
	}

	return stats, nil
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (s *StudentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
