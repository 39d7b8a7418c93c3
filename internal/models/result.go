package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

type ResultStatus string

const (
	ResultInProgress ResultStatus = "in_progress"
	ResultCompleted  ResultStatus = "completed"
	ResultEdited     ResultStatus = "edited"
)

// RatingMap holds per-category integer ratings or scores keyed by the
// fixed RMIB category set.
type RatingMap map[scoring.Category]int

type AssessmentResult struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"uniqueIndex;not null"`

	// Raw ratings as submitted; may be partial while in progress
	Ratings datatypes.JSONType[RatingMap] `json:"ratings" gorm:"type:jsonb"`

	// Derived fields, recomputed atomically whenever ratings change
	CategoryScores datatypes.JSONType[RatingMap] `json:"category_scores" gorm:"type:jsonb"`
	TotalScore     int                           `json:"total_score"`
	Strategy       scoring.ScoringStrategy       `json:"strategy" gorm:"default:independent_rating;size:30"`

	PrimaryInterest   scoring.Category `json:"primary_interest" gorm:"size:20"`
	PrimaryRating     int              `json:"primary_rating"`
	SecondaryInterest scoring.Category `json:"secondary_interest" gorm:"size:20"`
	SecondaryRating   int              `json:"secondary_rating"`
	TertiaryInterest  scoring.Category `json:"tertiary_interest" gorm:"size:20"`
	TertiaryRating    int              `json:"tertiary_rating"`

	Status      ResultStatus `json:"status" gorm:"default:in_progress;index"`
	SubmittedAt *time.Time   `json:"submitted_at"`
	EditedAt    *time.Time   `json:"edited_at"`

	// Undo buffer: the last completed/edited state, retained from restart
	// until submit-edited or cancel-edit resolves it
	Snapshot datatypes.JSON `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student Student `json:"-" gorm:"foreignKey:StudentID"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

// ResultSnapshot captures everything restart-for-edit may need to restore.
type ResultSnapshot struct {
	Ratings           RatingMap        `json:"ratings"`
	CategoryScores    RatingMap        `json:"category_scores"`
	TotalScore        int              `json:"total_score"`
	PrimaryInterest   scoring.Category `json:"primary_interest"`
	PrimaryRating     int              `json:"primary_rating"`
	SecondaryInterest scoring.Category `json:"secondary_interest"`
	SecondaryRating   int              `json:"secondary_rating"`
	TertiaryInterest  scoring.Category `json:"tertiary_interest"`
	TertiaryRating    int              `json:"tertiary_rating"`
	Status            ResultStatus     `json:"status"`
	SubmittedAt       *time.Time       `json:"submitted_at"`
	EditedAt          *time.Time       `json:"edited_at"`
}

// ApplyAggregate writes every derived field of a scored rating set into the
// result in one step so they can never disagree with the ratings.
func (r *AssessmentResult) ApplyAggregate(ratings RatingMap, agg *scoring.AggregateResult) {
	r.Ratings = datatypes.NewJSONType(ratings)
	r.CategoryScores = datatypes.NewJSONType(RatingMap(agg.CategoryScores))
	r.TotalScore = agg.TotalScore
	r.PrimaryInterest = agg.Primary.Category
	r.PrimaryRating = agg.Primary.Rating
	r.SecondaryInterest = agg.Secondary.Category
	r.SecondaryRating = agg.Secondary.Rating
	r.TertiaryInterest = agg.Tertiary.Category
	r.TertiaryRating = agg.Tertiary.Rating
}

// TakeSnapshot stores the current state into the undo buffer.
func (r *AssessmentResult) TakeSnapshot() error {
	snap := ResultSnapshot{
		Ratings:           r.Ratings.Data(),
		CategoryScores:    r.CategoryScores.Data(),
		TotalScore:        r.TotalScore,
		PrimaryInterest:   r.PrimaryInterest,
		PrimaryRating:     r.PrimaryRating,
		SecondaryInterest: r.SecondaryInterest,
		SecondaryRating:   r.SecondaryRating,
		TertiaryInterest:  r.TertiaryInterest,
		TertiaryRating:    r.TertiaryRating,
		Status:            r.Status,
		SubmittedAt:       r.SubmittedAt,
		EditedAt:          r.EditedAt,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	r.Snapshot = data
	return nil
}

// RestoreSnapshot puts the undo buffer back as the current state and clears
// the buffer.
func (r *AssessmentResult) RestoreSnapshot() error {
	var snap ResultSnapshot
	if err := json.Unmarshal(r.Snapshot, &snap); err != nil {
		return err
	}

	r.Ratings = datatypes.NewJSONType(snap.Ratings)
	r.CategoryScores = datatypes.NewJSONType(snap.CategoryScores)
	r.TotalScore = snap.TotalScore
	r.PrimaryInterest = snap.PrimaryInterest
	r.PrimaryRating = snap.PrimaryRating
	r.SecondaryInterest = snap.SecondaryInterest
	r.SecondaryRating = snap.SecondaryRating
	r.TertiaryInterest = snap.TertiaryInterest
	r.TertiaryRating = snap.TertiaryRating
	r.Status = snap.Status
	r.SubmittedAt = snap.SubmittedAt
	r.EditedAt = snap.EditedAt
	r.Snapshot = nil
	return nil
}

// HasSnapshot reports whether an undo buffer from restart is pending.
func (r *AssessmentResult) HasSnapshot() bool {
	return len(r.Snapshot) > 0 && string(r.Snapshot) != "null"
}

// ClearDerived resets ratings and every derived field, keeping the snapshot.
func (r *AssessmentResult) ClearDerived() {
	r.Ratings = datatypes.NewJSONType(RatingMap{})
	r.CategoryScores = datatypes.NewJSONType(RatingMap{})
	r.TotalScore = 0
	r.PrimaryInterest = ""
	r.PrimaryRating = 0
	r.SecondaryInterest = ""
	r.SecondaryRating = 0
	r.TertiaryInterest = ""
	r.TertiaryRating = 0
}
