package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/cache"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
)

type AchievementPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewAchievementPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AchievementRepository {
	return &AchievementPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (a *AchievementPostgreSQL) Create(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(achievement).Error; err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}

	a.cacheManager.InvalidateStudentProfile(ctx, achievement.StudentID)
	return nil
}

func (a *AchievementPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error) {
	db := a.getDB(tx)
	var achievement models.StudentAchievement
	if err := db.WithContext(ctx).First(&achievement, id).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (a *AchievementPostgreSQL) GetByIDWithType(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error) {
	db := a.getDB(tx)
	var achievement models.StudentAchievement
	if err := db.WithContext(ctx).
		Preload("AchievementType").
		First(&achievement, id).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (a *AchievementPostgreSQL) Update(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Save(achievement).Error; err != nil {
		return fmt.Errorf("failed to update achievement: %w", err)
	}

	a.cacheManager.InvalidateStudentProfile(ctx, achievement.StudentID)
	return nil
}

func (a *AchievementPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.getDB(tx)

	// Load first so the owning student's cache can be invalidated
	achievement, err := a.GetByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(&models.StudentAchievement{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}

	a.cacheManager.InvalidateStudentProfile(ctx, achievement.StudentID)
	return nil
}

func (a *AchievementPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AchievementFilters) ([]*models.StudentAchievement, int64, error) {
	db := a.getDB(tx)
	var achievements []*models.StudentAchievement
	var total int64

	query := db.WithContext(ctx).Model(&models.StudentAchievement{})
	query = a.helpers.ApplyAchievementFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("AchievementType").Find(&achievements).Error; err != nil {
		return nil, 0, err
	}

	return achievements, total, nil
}

func (a *AchievementPostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error) {
	db := a.getDB(tx)
	var achievements []*models.StudentAchievement
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("AchievementType").
		Order("year DESC, created_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("failed to get achievements by student: %w", err)
	}
	return achievements, nil
}

// GetVerifiedByStudent returns only verified achievements, the set that
// contributes to the combined score view
func (a *AchievementPostgreSQL) GetVerifiedByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error) {
	db := a.getDB(tx)
	var achievements []*models.StudentAchievement
	if err := db.WithContext(ctx).
		Where("student_id = ? AND is_verified = true", studentID).
		Preload("AchievementType").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("failed to get verified achievements: %w", err)
	}
	return achievements, nil
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *AchievementPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
