package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
)

// SharedHelpers contains query helpers used by every repository
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort applies sorting and pagination against a whitelist
// of sortable columns so user input can never inject SQL
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedColumns := map[string]bool{
		"name":          true,
		"nisn":          true,
		"student_class": true,
		"created_at":    true,
		"updated_at":    true,
		"year":          true,
		"points":        true,
	}

	if sortBy != "" && allowedColumns[sortBy] {
		order := "ASC"
		if strings.EqualFold(sortOrder, "desc") {
			order = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", sortBy, order))
	} else {
		query = query.Order("created_at DESC")
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// ApplyStudentFilters applies student list filters to a query
func (h *SharedHelpers) ApplyStudentFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.StudentClass != nil {
		query = query.Where("student_class = ?", *filters.StudentClass)
	}
	if filters.AssessmentStatus != nil {
		query = query.Where("assessment_status = ?", *filters.AssessmentStatus)
	}
	if filters.IsLocked != nil {
		query = query.Where("is_locked = ?", *filters.IsLocked)
	}
	if filters.Search != nil && *filters.Search != "" {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("name ILIKE ? OR nisn LIKE ?", pattern, pattern)
	}

	return query
}

// ApplyAchievementFilters applies achievement list filters to a query
func (h *SharedHelpers) ApplyAchievementFilters(query *gorm.DB, filters repositories.AchievementFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.AchievementTypeID != nil {
		query = query.Where("achievement_type_id = ?", *filters.AchievementTypeID)
	}
	if filters.IsVerified != nil {
		query = query.Where("is_verified = ?", *filters.IsVerified)
	}
	if filters.Level != nil {
		query = query.Where("level = ?", *filters.Level)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}

	return query
}
