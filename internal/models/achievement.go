package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

type AchievementGroup string

const (
	GroupAcademic    AchievementGroup = "academic"
	GroupNonAcademic AchievementGroup = "non_academic"
	GroupOther       AchievementGroup = "other"
)

// AchievementType is the static record describing one kind of achievement
// and which RMIB categories it maps to.
type AchievementType struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"uniqueIndex;not null;size:200"`
	Code        string           `json:"code" gorm:"uniqueIndex;size:50"`
	Group       AchievementGroup `json:"group" gorm:"default:other;size:50"`
	Description string           `json:"description" gorm:"type:text"`

	// RMIB mapping; either slot may be empty
	RMIBPrimary   *scoring.Category `json:"rmib_primary" gorm:"size:50"`
	RMIBSecondary *scoring.Category `json:"rmib_secondary" gorm:"size:50"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AchievementType) TableName() string {
	return "achievement_types"
}

// Mapping returns the type's RMIB mapping in scoring terms.
func (t *AchievementType) Mapping() scoring.CategoryMapping {
	return scoring.CategoryMapping{
		Primary:   t.RMIBPrimary,
		Secondary: t.RMIBSecondary,
	}
}

// DefaultCode derives a code from the name initials ("Olimpiade Sains
// Nasional" -> "OSN"). Uniqueness is the repository's concern.
func (t *AchievementType) DefaultCode() string {
	var b strings.Builder
	for _, word := range strings.Fields(t.Name) {
		b.WriteString(strings.ToUpper(word[:1]))
		if b.Len() >= 10 {
			break
		}
	}
	return b.String()
}

// StudentAchievement is one verified-or-pending competition result owned by
// a student. Points and contributions are derived on every save.
type StudentAchievement struct {
	ID                uint `json:"id" gorm:"primaryKey"`
	StudentID         uint `json:"student_id" gorm:"not null;index"`
	AchievementTypeID uint `json:"achievement_type_id" gorm:"not null;index"`

	Level scoring.AchievementLevel `json:"level" gorm:"not null;size:20"`
	Rank  scoring.AchievementRank  `json:"rank" gorm:"not null;size:20"`
	Year  int                      `json:"year" gorm:"not null"`
	Notes string                   `json:"notes" gorm:"type:text"`

	// Derived from (level, rank) and the type's mapping; never set directly
	Points            int                           `json:"points"`
	RMIBContributions datatypes.JSONType[RatingMap] `json:"rmib_contributions" gorm:"type:jsonb"`

	// Verification
	IsVerified bool       `json:"is_verified" gorm:"default:false;index"`
	VerifiedBy *string    `json:"verified_by" gorm:"size:255"`
	VerifiedAt *time.Time `json:"verified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student         Student         `json:"-" gorm:"foreignKey:StudentID"`
	AchievementType AchievementType `json:"achievement_type" gorm:"foreignKey:AchievementTypeID"`
}

func (StudentAchievement) TableName() string {
	return "student_achievements"
}

// Recalculate recomputes points and per-category contributions from the
// current level, rank and mapping. Idempotent; called on every save.
func (a *StudentAchievement) Recalculate(mapping scoring.CategoryMapping) {
	a.Points = scoring.AchievementPoints(a.Level, a.Rank)
	contributions := scoring.Contributions(a.Points, mapping)

	asMap := make(RatingMap, len(contributions))
	for category, points := range contributions {
		asMap[category] = points
	}
	a.RMIBContributions = datatypes.NewJSONType(asMap)
}
