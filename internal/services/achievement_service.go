package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/events"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
)

type achievementService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAchievementService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AchievementService {
	return &achievementService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create records a new achievement. Points and contributions are always
// derived from the type mapping, never taken from the caller.
func (s *achievementService) Create(ctx context.Context, req models.CreateAchievementRequest) (*models.AchievementResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var achievement *models.StudentAchievement

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if _, err := txRepo.Student().GetByID(ctx, nil, req.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("failed to load student: %w", err)
		}

		achievementType, err := txRepo.AchievementType().GetByID(ctx, nil, req.AchievementTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementTypeNotFound
			}
			return fmt.Errorf("failed to load achievement type: %w", err)
		}
		if !achievementType.IsActive {
			return ErrAchievementTypeInactive
		}

		achievement = &models.StudentAchievement{
			StudentID:         req.StudentID,
			AchievementTypeID: req.AchievementTypeID,
			Level:             req.Level,
			Rank:              req.Rank,
			Year:              req.Year,
			Notes:             req.Notes,
		}
		achievement.Recalculate(achievementType.Mapping())
		achievement.AchievementType = *achievementType

		return txRepo.Achievement().Create(ctx, nil, achievement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Achievement created",
		"achievement_id", achievement.ID,
		"student_id", achievement.StudentID,
		"points", achievement.Points)
	return s.toResponse(achievement), nil
}

// Update changes level, rank, year or notes and rederives the points
func (s *achievementService) Update(ctx context.Context, id uint, req models.UpdateAchievementRequest) (*models.AchievementResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var achievement *models.StudentAchievement

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		achievement, err = txRepo.Achievement().GetByIDWithType(ctx, nil, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return fmt.Errorf("failed to load achievement: %w", err)
		}

		if req.Level != nil {
			achievement.Level = *req.Level
		}
		if req.Rank != nil {
			achievement.Rank = *req.Rank
		}
		if req.Year != nil {
			achievement.Year = *req.Year
		}
		if req.Notes != nil {
			achievement.Notes = *req.Notes
		}

		// Any field change invalidates a prior verification
		achievement.IsVerified = false
		achievement.VerifiedBy = nil
		achievement.VerifiedAt = nil

		achievement.Recalculate(achievement.AchievementType.Mapping())

		return txRepo.Achievement().Update(ctx, nil, achievement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Achievement updated", "achievement_id", id)
	return s.toResponse(achievement), nil
}

func (s *achievementService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Achievement().Delete(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAchievementNotFound
		}
		return fmt.Errorf("failed to delete achievement: %w", err)
	}

	s.logger.Info("Achievement deleted", "achievement_id", id)
	return nil
}

// Verify marks the achievement as counted toward the combined score
func (s *achievementService) Verify(ctx context.Context, id uint, verifiedBy string) (*models.AchievementResponse, error) {
	var achievement *models.StudentAchievement
	var verifiedEvent *events.DomainEvent

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		achievement, err = txRepo.Achievement().GetByIDWithType(ctx, nil, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return fmt.Errorf("failed to load achievement: %w", err)
		}

		if achievement.IsVerified {
			return ErrAlreadyVerified
		}

		now := time.Now()
		achievement.IsVerified = true
		achievement.VerifiedBy = &verifiedBy
		achievement.VerifiedAt = &now

		// Recompute on verification in case the type mapping changed since
		// the record was created
		achievement.Recalculate(achievement.AchievementType.Mapping())

		if err := txRepo.Achievement().Update(ctx, nil, achievement); err != nil {
			return err
		}

		verifiedEvent = events.NewAchievementVerifiedEvent(
			achievement.ID, achievement.StudentID, achievement.Points, verifiedBy, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, verifiedEvent)
	s.logger.Info("Achievement verified",
		"achievement_id", id,
		"verified_by", verifiedBy,
		"points", achievement.Points)
	return s.toResponse(achievement), nil
}

func (s *achievementService) GetByStudent(ctx context.Context, studentID uint) ([]*models.AchievementResponse, error) {
	achievements, err := s.repo.Achievement().GetByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	responses := make([]*models.AchievementResponse, 0, len(achievements))
	for _, achievement := range achievements {
		responses = append(responses, s.toResponse(achievement))
	}
	return responses, nil
}

// CreateType adds an entry to the achievement type catalog
func (s *achievementService) CreateType(ctx context.Context, req models.CreateAchievementTypeRequest) (*models.AchievementType, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.AchievementType().ExistsByName(ctx, nil, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check type name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTypeName
	}

	group := req.Group
	if group == "" {
		group = models.GroupOther
	}

	achievementType := &models.AchievementType{
		Name:          req.Name,
		Group:         group,
		Description:   req.Description,
		RMIBPrimary:   req.RMIBPrimary,
		RMIBSecondary: req.RMIBSecondary,
		IsActive:      true,
	}

	if err := s.repo.AchievementType().Create(ctx, nil, achievementType); err != nil {
		return nil, err
	}

	s.logger.Info("Achievement type created",
		"type_id", achievementType.ID,
		"name", achievementType.Name)
	return achievementType, nil
}

func (s *achievementService) ListTypes(ctx context.Context, filters repositories.AchievementTypeFilters) ([]*models.AchievementType, int64, error) {
	return s.repo.AchievementType().List(ctx, nil, filters)
}

// ===== HELPERS =====

func (s *achievementService) toResponse(achievement *models.StudentAchievement) *models.AchievementResponse {
	return &models.AchievementResponse{
		ID:                achievement.ID,
		StudentID:         achievement.StudentID,
		TypeName:          achievement.AchievementType.Name,
		Level:             achievement.Level,
		Rank:              achievement.Rank,
		Year:              achievement.Year,
		Points:            achievement.Points,
		RMIBContributions: achievement.RMIBContributions.Data(),
		IsVerified:        achievement.IsVerified,
		VerifiedBy:        achievement.VerifiedBy,
		VerifiedAt:        achievement.VerifiedAt,
	}
}

func (s *achievementService) publish(ctx context.Context, event *events.DomainEvent) {
	if s.publisher == nil || event == nil {
		return
	}
	if err := s.publisher.PublishDomainEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
