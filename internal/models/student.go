package models

import (
	"time"

	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	AssessmentPending    AssessmentStatus = "pending"
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
)

type Student struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:200"`
	NISN string `json:"nisn" gorm:"uniqueIndex;not null;size:10"`

	Gender     string     `json:"gender" gorm:"size:1"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace string     `json:"birth_place" gorm:"size:100"`

	// Academic
	StudentClass string `json:"student_class" gorm:"index;size:10"`
	EntryYear    int    `json:"entry_year"`

	// Assessment status; mutated only by the assessment lifecycle
	AssessmentStatus AssessmentStatus `json:"assessment_status" gorm:"default:pending;index"`
	TestDate         *time.Time       `json:"test_date"`

	// Contact
	Phone       string `json:"phone" gorm:"size:15"`
	Address     string `json:"address" gorm:"type:text"`
	ParentPhone string `json:"parent_phone" gorm:"size:15"`

	// Authentication; counters mutated only by the lockout machine
	PasswordHash      string     `json:"-" gorm:"size:255"`
	GeneratedPassword string     `json:"-" gorm:"size:20"`
	PasswordChanged   bool       `json:"password_changed" gorm:"default:false"`
	LoginAttempts     int        `json:"login_attempts" gorm:"default:0"`
	IsLocked          bool       `json:"is_locked" gorm:"default:false"`
	LastLoginAttempt  *time.Time `json:"last_login_attempt"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Result       *AssessmentResult    `json:"result,omitempty" gorm:"foreignKey:StudentID"`
	Achievements []StudentAchievement `json:"achievements,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}

// CanTakeAssessment reports whether the student may enter the test flow.
func (s *Student) CanTakeAssessment() bool {
	return s.AssessmentStatus == AssessmentPending || s.AssessmentStatus == AssessmentInProgress
}
