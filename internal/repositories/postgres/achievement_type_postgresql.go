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

type AchievementTypePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAchievementTypePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AchievementTypeRepository {
	return &AchievementTypePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (t *AchievementTypePostgreSQL) Create(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error {
	db := t.getDB(tx)
	if achievementType.Code == "" {
		achievementType.Code = achievementType.DefaultCode()
	}
	if err := db.WithContext(ctx).Create(achievementType).Error; err != nil {
		return fmt.Errorf("failed to create achievement type: %w", err)
	}

	t.cacheManager.InvalidateAchievementTypes(ctx)
	return nil
}

// GetByID retrieves an achievement type with caching; the catalog is
// near-static so cache hits dominate
func (t *AchievementTypePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AchievementType, error) {
	db := t.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var achievementType models.AchievementType

	err := t.cacheManager.AchievementType.CacheOrExecute(ctx, cacheKey, &achievementType, cache.AchievementTypeCacheConfig.TTL, func() (interface{}, error) {
		var dbType models.AchievementType
		if err := db.WithContext(ctx).First(&dbType, id).Error; err != nil {
			return nil, err
		}
		return &dbType, nil
	})
	if err != nil {
		return nil, err
	}

	return &achievementType, nil
}

func (t *AchievementTypePostgreSQL) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.AchievementType, error) {
	db := t.getDB(tx)
	var achievementType models.AchievementType
	if err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&achievementType).Error; err != nil {
		return nil, err
	}
	return &achievementType, nil
}

func (t *AchievementTypePostgreSQL) Update(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error {
	db := t.getDB(tx)
	if err := db.WithContext(ctx).Save(achievementType).Error; err != nil {
		return fmt.Errorf("failed to update achievement type: %w", err)
	}

	t.cacheManager.InvalidateAchievementTypes(ctx)
	return nil
}

func (t *AchievementTypePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := t.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.AchievementType{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete achievement type: %w", err)
	}

	t.cacheManager.InvalidateAchievementTypes(ctx)
	return nil
}

func (t *AchievementTypePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AchievementTypeFilters) ([]*models.AchievementType, int64, error) {
	db := t.getDB(tx)
	var achievementTypes []*models.AchievementType
	var total int64

	query := db.WithContext(ctx).Model(&models.AchievementType{})
	if filters.Group != nil {
		query = query.Where("\"group\" = ?", *filters.Group)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&achievementTypes).Error; err != nil {
		return nil, 0, err
	}

	return achievementTypes, total, nil
}

func (t *AchievementTypePostgreSQL) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	db := t.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.AchievementType{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check achievement type name: %w", err)
	}
	return count > 0, nil
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (t *AchievementTypePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}
