package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/events"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
)

type assessmentService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAssessmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AssessmentService {
	return &assessmentService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Start opens (or resumes) the in-progress result for a student
func (s *assessmentService) Start(ctx context.Context, studentID uint) (*models.StartAssessmentResponse, error) {
	var response *models.StartAssessmentResponse

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		student, err := txRepo.Student().GetByIDForUpdate(ctx, nil, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("failed to load student: %w", err)
		}

		result, err := txRepo.Result().GetByStudentIDForUpdate(ctx, nil, studentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load result: %w", err)
		}

		if result == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			result = &models.AssessmentResult{
				StudentID: studentID,
				Status:    models.ResultInProgress,
				Strategy:  scoring.DefaultStrategy,
			}
			result.ClearDerived()
			if err := txRepo.Result().Create(ctx, nil, result); err != nil {
				return fmt.Errorf("failed to create result: %w", err)
			}

			if err := txRepo.Student().UpdateAssessmentStatus(ctx, nil, studentID, models.AssessmentInProgress); err != nil {
				return err
			}

			response = &models.StartAssessmentResponse{
				Status:  models.ResultInProgress,
				Ratings: models.RatingMap{},
				Resumed: false,
			}
			return nil
		}

		if result.Status != models.ResultInProgress {
			return NewStateError("result", string(result.Status), "start")
		}

		// Already in progress; resume with the saved partial ratings
		if student.AssessmentStatus != models.AssessmentInProgress {
			if err := txRepo.Student().UpdateAssessmentStatus(ctx, nil, studentID, models.AssessmentInProgress); err != nil {
				return err
			}
		}

		response = &models.StartAssessmentResponse{
			Status:  result.Status,
			Ratings: result.Ratings.Data(),
			Resumed: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment started", "student_id", studentID, "resumed", response.Resumed)
	return response, nil
}

// SaveProgress merges a partial rating set into the in-progress result.
// Values are range-checked but completeness is only enforced at submit.
func (s *assessmentService) SaveProgress(ctx context.Context, studentID uint, req models.SaveProgressRequest) (*models.SaveProgressResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if verrs := scoring.ValidatePartialRatings(map[scoring.Category]int(req.Ratings)); len(verrs) > 0 {
		return nil, verrs
	}

	savedAt := time.Now()

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		result, err := s.loadResultForUpdate(ctx, txRepo, studentID)
		if err != nil {
			return err
		}

		if result.Status != models.ResultInProgress {
			return NewStateError("result", string(result.Status), "save progress")
		}

		merged := result.Ratings.Data()
		if merged == nil {
			merged = models.RatingMap{}
		}
		for category, rating := range req.Ratings {
			merged[category] = rating
		}
		result.Ratings = datatypes.NewJSONType(merged)

		return txRepo.Result().Update(ctx, nil, result)
	})
	if err != nil {
		return nil, err
	}

	return &models.SaveProgressResponse{
		SavedCategories: len(req.Ratings),
		SavedAt:         savedAt,
	}, nil
}

// Submit scores a complete rating set and finalizes the result. A pending
// snapshot marks the edit flow, which finalizes to the edited status.
func (s *assessmentService) Submit(ctx context.Context, studentID uint, req models.SubmitAssessmentRequest) (*models.SubmitAssessmentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var response *models.SubmitAssessmentResponse
	var submittedEvent *events.DomainEvent

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if _, err := txRepo.Student().GetByIDForUpdate(ctx, nil, studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("failed to load student: %w", err)
		}

		result, err := s.loadResultForUpdate(ctx, txRepo, studentID)
		if err != nil {
			return err
		}

		if result.Status != models.ResultInProgress {
			return NewStateError("result", string(result.Status), "submit")
		}

		strategy := result.Strategy
		if !strategy.IsValid() {
			strategy = scoring.DefaultStrategy
		}

		ratings := map[scoring.Category]int(req.Ratings)
		if verrs := scoring.ValidateRatings(ratings, strategy); len(verrs) > 0 {
			return verrs
		}

		agg, err := scoring.Aggregate(ratings, strategy)
		if err != nil {
			return err
		}

		now := time.Now()
		result.ApplyAggregate(req.Ratings, agg)

		if result.HasSnapshot() {
			// Resolving an edit flow; the undo buffer is no longer needed
			result.Status = models.ResultEdited
			result.EditedAt = &now
			result.Snapshot = nil
		} else {
			result.Status = models.ResultCompleted
			result.SubmittedAt = &now
		}

		if err := txRepo.Result().Update(ctx, nil, result); err != nil {
			return err
		}

		// Achievements submitted together with the ratings
		for _, submission := range req.Achievements {
			if err := s.createSubmittedAchievement(ctx, txRepo, studentID, submission, req.SubmittedBy); err != nil {
				return err
			}
		}

		student, err := txRepo.Student().GetByID(ctx, nil, studentID)
		if err != nil {
			return err
		}
		student.AssessmentStatus = models.AssessmentCompleted
		student.TestDate = &now
		if err := txRepo.Student().Update(ctx, nil, student); err != nil {
			return err
		}

		achievementScore, err := s.verifiedAchievementScore(ctx, txRepo, studentID)
		if err != nil {
			return err
		}

		response = &models.SubmitAssessmentResponse{
			ResultID:         result.ID,
			Status:           result.Status,
			TotalScore:       result.TotalScore,
			PrimaryInterest:  result.PrimaryInterest,
			PrimaryRating:    result.PrimaryRating,
			TestScore:        result.TotalScore,
			AchievementScore: achievementScore,
			CombinedScore:    result.TotalScore + achievementScore,
		}

		submittedEvent = events.NewResultSubmittedEvent(
			result.ID, studentID, result.Status, result.TotalScore, result.PrimaryInterest, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, submittedEvent)
	s.logger.Info("Assessment submitted",
		"student_id", studentID,
		"status", response.Status,
		"total_score", response.TotalScore,
		"primary_interest", response.PrimaryInterest)
	return response, nil
}

// Restart reopens a finalized result for editing. The current state is kept
// in the undo buffer so cancel-edit can put it back.
func (s *assessmentService) Restart(ctx context.Context, studentID uint) (*models.RestartAssessmentResponse, error) {
	var response *models.RestartAssessmentResponse
	var restartedEvent *events.DomainEvent

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		result, err := s.loadResultForUpdate(ctx, txRepo, studentID)
		if err != nil {
			return err
		}

		if result.Status == models.ResultInProgress {
			return NewStateError("result", string(result.Status), "restart")
		}

		previousStatus := result.Status
		previousRatings := result.Ratings.Data()

		if err := result.TakeSnapshot(); err != nil {
			return fmt.Errorf("failed to snapshot result: %w", err)
		}

		result.ClearDerived()
		result.Status = models.ResultInProgress

		if err := txRepo.Result().Update(ctx, nil, result); err != nil {
			return err
		}

		if err := txRepo.Student().UpdateAssessmentStatus(ctx, nil, studentID, models.AssessmentInProgress); err != nil {
			return err
		}

		response = &models.RestartAssessmentResponse{
			Status:          result.Status,
			PreviousRatings: previousRatings,
		}
		restartedEvent = events.NewResultRestartedEvent(result.ID, studentID, string(previousStatus))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, restartedEvent)
	s.logger.Info("Assessment restarted for edit", "student_id", studentID)
	return response, nil
}

// CancelEdit abandons a restart and restores the snapshotted state
func (s *assessmentService) CancelEdit(ctx context.Context, studentID uint) (*models.CancelEditResponse, error) {
	var response *models.CancelEditResponse

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		result, err := s.loadResultForUpdate(ctx, txRepo, studentID)
		if err != nil {
			return err
		}

		if result.Status != models.ResultInProgress {
			return ErrNotInEditFlow
		}
		if !result.HasSnapshot() {
			return ErrNoSnapshotToCancel
		}

		if err := result.RestoreSnapshot(); err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}

		if err := txRepo.Result().Update(ctx, nil, result); err != nil {
			return err
		}

		if err := txRepo.Student().UpdateAssessmentStatus(ctx, nil, studentID, models.AssessmentCompleted); err != nil {
			return err
		}

		response = &models.CancelEditResponse{
			Status:          result.Status,
			TotalScore:      result.TotalScore,
			PrimaryInterest: result.PrimaryInterest,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment edit cancelled", "student_id", studentID)
	return response, nil
}

// GetResult returns the student's assessment result
func (s *assessmentService) GetResult(ctx context.Context, studentID uint) (*models.AssessmentResult, error) {
	result, err := s.repo.Result().GetByStudentID(ctx, nil, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return result, nil
}

// GetProgress reports the saved ratings and how far the questionnaire is
func (s *assessmentService) GetProgress(ctx context.Context, studentID uint) (*models.AssessmentProgressResponse, error) {
	result, err := s.GetResult(ctx, studentID)
	if err != nil {
		return nil, err
	}

	ratings := result.Ratings.Data()
	return &models.AssessmentProgressResponse{
		Status:         result.Status,
		Ratings:        ratings,
		AnsweredCount:  len(ratings),
		RemainingCount: len(scoring.Categories) - len(ratings),
		PendingEdit:    result.HasSnapshot(),
	}, nil
}

// ===== HELPERS =====

func (s *assessmentService) loadResultForUpdate(ctx context.Context, txRepo repositories.Repository, studentID uint) (*models.AssessmentResult, error) {
	result, err := txRepo.Result().GetByStudentIDForUpdate(ctx, nil, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return result, nil
}

func (s *assessmentService) createSubmittedAchievement(ctx context.Context, txRepo repositories.Repository, studentID uint, submission models.AchievementSubmission, submittedBy string) error {
	achievementType, err := txRepo.AchievementType().GetByID(ctx, nil, submission.AchievementTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAchievementTypeNotFound
		}
		return fmt.Errorf("failed to load achievement type: %w", err)
	}
	if !achievementType.IsActive {
		return ErrAchievementTypeInactive
	}

	achievement := &models.StudentAchievement{
		StudentID:         studentID,
		AchievementTypeID: achievementType.ID,
		Level:             submission.Level,
		Rank:              submission.Rank,
		Year:              submission.Year,
		Notes:             submission.Notes,
	}
	achievement.Recalculate(achievementType.Mapping())

	if submittedBy != "" {
		now := time.Now()
		achievement.IsVerified = true
		achievement.VerifiedBy = &submittedBy
		achievement.VerifiedAt = &now
	}

	return txRepo.Achievement().Create(ctx, nil, achievement)
}

// verifiedAchievementScore sums the points of verified achievements, the
// portion that counts toward the combined score
func (s *assessmentService) verifiedAchievementScore(ctx context.Context, txRepo repositories.Repository, studentID uint) (int, error) {
	verified, err := txRepo.Achievement().GetVerifiedByStudent(ctx, nil, studentID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, achievement := range verified {
		for _, points := range achievement.RMIBContributions.Data() {
			total += points
		}
	}
	return total, nil
}

func (s *assessmentService) publish(ctx context.Context, event *events.DomainEvent) {
	if s.publisher == nil || event == nil {
		return
	}
	if err := s.publisher.PublishDomainEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
