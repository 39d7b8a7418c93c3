package repositories

import (
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	StudentClass     *string                  `json:"student_class"`
	AssessmentStatus *models.AssessmentStatus `json:"assessment_status"`
	IsLocked         *bool                    `json:"is_locked"`
	Search           *string                  `json:"search"` // matches name or NISN
	Limit            int                      `json:"limit"`
	Offset           int                      `json:"offset"`
	SortBy           string                   `json:"sort_by"`    // "name", "student_class", "created_at"
	SortOrder        string                   `json:"sort_order"` // "asc", "desc"
}

type AchievementFilters struct {
	StudentID         *uint                     `json:"student_id"`
	AchievementTypeID *uint                     `json:"achievement_type_id"`
	IsVerified        *bool                     `json:"is_verified"`
	Level             *scoring.AchievementLevel `json:"level"`
	Year              *int                      `json:"year"`
	Limit             int                       `json:"limit"`
	Offset            int                       `json:"offset"`
	SortBy            string                    `json:"sort_by"`
	SortOrder         string                    `json:"sort_order"`
}

type AchievementTypeFilters struct {
	Group    *models.AchievementGroup `json:"group"`
	IsActive *bool                    `json:"is_active"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type ClassAssessmentStats struct {
	TotalStudents   int                             `json:"total_students"`
	StatusBreakdown map[models.AssessmentStatus]int `json:"status_breakdown"`
	LockedCount     int                             `json:"locked_count"`
	InterestCounts  map[scoring.Category]int        `json:"interest_counts"`
}
