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
)

type ResultPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewResultPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentResult, error) {
	db := r.getDB(tx)
	var result models.AssessmentResult
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error) {
	db := r.getDB(tx)
	var result models.AssessmentResult
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByStudentIDForUpdate locks the result row so lifecycle transitions
// serialize per student
func (r *ResultPostgreSQL) GetByStudentIDForUpdate(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error) {
	db := r.getDB(tx)
	var result models.AssessmentResult
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) Update(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(result).Error; err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}

	r.cacheManager.InvalidateStudentProfile(ctx, result.StudentID)
	return nil
}

func (r *ResultPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	result, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(&models.AssessmentResult{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	r.cacheManager.InvalidateStudentProfile(ctx, result.StudentID)
	return nil
}

func (r *ResultPostgreSQL) CountByStatus(ctx context.Context, tx *gorm.DB, status models.ResultStatus) (int64, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.AssessmentResult{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count results by status: %w", err)
	}
	return count, nil
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (r *ResultPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
