package models

import (
	"time"

	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

// ===== AUTH =====

type LoginRequest struct {
	NISN     string `json:"nisn" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	StudentID        uint             `json:"student_id"`
	Name             string           `json:"name"`
	StudentClass     string           `json:"student_class"`
	AssessmentStatus AssessmentStatus `json:"assessment_status"`
	PasswordChanged  bool             `json:"password_changed"`
}

// ===== STUDENTS =====

type CreateStudentRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	NISN         string     `json:"nisn" validate:"required,len=10,numeric"`
	Gender       string     `json:"gender" validate:"omitempty,oneof=L P"`
	BirthDate    *time.Time `json:"birth_date"`
	BirthPlace   string     `json:"birth_place" validate:"max=100"`
	StudentClass string     `json:"student_class" validate:"required,max=10"`
	EntryYear    int        `json:"entry_year" validate:"omitempty,min=2000,max=2100"`
	Phone        string     `json:"phone" validate:"max=15"`
	Address      string     `json:"address"`
	ParentPhone  string     `json:"parent_phone" validate:"max=15"`
}

type StudentResponse struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	NISN             string           `json:"nisn"`
	StudentClass     string           `json:"student_class"`
	EntryYear        int              `json:"entry_year"`
	AssessmentStatus AssessmentStatus `json:"assessment_status"`
	TestDate         *time.Time       `json:"test_date,omitempty"`
	IsLocked         bool             `json:"is_locked"`

	// Set only on creation so the account can be handed out once
	GeneratedPassword string `json:"generated_password,omitempty"`
}

// ===== ASSESSMENT LIFECYCLE =====

type StartAssessmentResponse struct {
	Status  ResultStatus `json:"status"`
	Ratings RatingMap    `json:"ratings"`
	Resumed bool         `json:"resumed"`
}

type SaveProgressRequest struct {
	// Any subset of the twelve categories; values still range-checked
	Ratings RatingMap `json:"ratings" validate:"required"`
}

type SaveProgressResponse struct {
	SavedCategories int       `json:"saved_categories"`
	SavedAt         time.Time `json:"saved_at"`
}

type AssessmentProgressResponse struct {
	Status         ResultStatus `json:"status"`
	Ratings        RatingMap    `json:"ratings"`
	AnsweredCount  int          `json:"answered_count"`
	RemainingCount int          `json:"remaining_count"`
	PendingEdit    bool         `json:"pending_edit"`
}

type AchievementSubmission struct {
	AchievementTypeID uint                     `json:"achievement_type_id" validate:"required"`
	Level             scoring.AchievementLevel `json:"level" validate:"required,achievement_level"`
	Rank              scoring.AchievementRank  `json:"rank" validate:"required,achievement_rank"`
	Year              int                      `json:"year" validate:"required,achievement_year"`
	Notes             string                   `json:"notes"`
}

type SubmitAssessmentRequest struct {
	Ratings      RatingMap               `json:"ratings" validate:"required"`
	Achievements []AchievementSubmission `json:"achievements" validate:"omitempty,dive"`

	// Staff identifier when a counselor submits on the student's behalf;
	// achievements in the batch are then verified on creation
	SubmittedBy string `json:"submitted_by,omitempty"`
}

type SubmitAssessmentResponse struct {
	ResultID         uint             `json:"result_id"`
	Status           ResultStatus     `json:"status"`
	TotalScore       int              `json:"total_score"`
	PrimaryInterest  scoring.Category `json:"primary_interest"`
	PrimaryRating    int              `json:"primary_rating"`
	TestScore        int              `json:"test_score"`
	AchievementScore int              `json:"achievement_score"`
	CombinedScore    int              `json:"combined_score"`
}

type RestartAssessmentResponse struct {
	Status          ResultStatus `json:"status"`
	PreviousRatings RatingMap    `json:"previous_ratings"`
}

type CancelEditResponse struct {
	Status          ResultStatus     `json:"status"`
	TotalScore      int              `json:"total_score"`
	PrimaryInterest scoring.Category `json:"primary_interest"`
}

// ===== SCORES =====

type CombinedScoreResponse struct {
	StudentID         uint                  `json:"student_id"`
	ResultStatus      ResultStatus          `json:"result_status,omitempty"`
	PrimaryInterest   scoring.Category      `json:"primary_interest,omitempty"`
	SecondaryInterest scoring.Category      `json:"secondary_interest,omitempty"`
	TertiaryInterest  scoring.Category      `json:"tertiary_interest,omitempty"`
	View              *scoring.CombinedView `json:"view"`
}

// ===== ACHIEVEMENTS =====

type CreateAchievementRequest struct {
	StudentID         uint                     `json:"student_id" validate:"required"`
	AchievementTypeID uint                     `json:"achievement_type_id" validate:"required"`
	Level             scoring.AchievementLevel `json:"level" validate:"required,achievement_level"`
	Rank              scoring.AchievementRank  `json:"rank" validate:"required,achievement_rank"`
	Year              int                      `json:"year" validate:"required,achievement_year"`
	Notes             string                   `json:"notes"`
}

type UpdateAchievementRequest struct {
	Level *scoring.AchievementLevel `json:"level" validate:"omitempty,achievement_level"`
	Rank  *scoring.AchievementRank  `json:"rank" validate:"omitempty,achievement_rank"`
	Year  *int                      `json:"year" validate:"omitempty,achievement_year"`
	Notes *string                   `json:"notes"`
}

type AchievementResponse struct {
	ID                uint                     `json:"id"`
	StudentID         uint                     `json:"student_id"`
	TypeName          string                   `json:"type_name"`
	Level             scoring.AchievementLevel `json:"level"`
	Rank              scoring.AchievementRank  `json:"rank"`
	Year              int                      `json:"year"`
	Points            int                      `json:"points"`
	RMIBContributions RatingMap                `json:"rmib_contributions"`
	IsVerified        bool                     `json:"is_verified"`
	VerifiedBy        *string                  `json:"verified_by,omitempty"`
	VerifiedAt        *time.Time               `json:"verified_at,omitempty"`
}

type CreateAchievementTypeRequest struct {
	Name          string            `json:"name" validate:"required,max=200"`
	Group         AchievementGroup  `json:"group" validate:"omitempty,oneof=academic non_academic other"`
	Description   string            `json:"description"`
	RMIBPrimary   *scoring.Category `json:"rmib_primary" validate:"omitempty,rmib_category"`
	RMIBSecondary *scoring.Category `json:"rmib_secondary" validate:"omitempty,rmib_category"`
}
