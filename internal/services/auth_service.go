package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/events"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
)

type authService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	maxAttempts     int
	lockoutDuration time.Duration

	// Injectable clock so lockout expiry is testable
	now func() time.Time
}

// AuthConfig carries the lockout policy knobs
type AuthConfig struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cfg AuthConfig) AuthService {
	maxAttempts := cfg.MaxLoginAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	lockoutDuration := cfg.LockoutDuration
	if lockoutDuration <= 0 {
		lockoutDuration = 30 * time.Minute
	}

	return &authService{
		db:              db,
		repo:            repo,
		logger:          logger,
		validator:       validator,
		publisher:       publisher,
		maxAttempts:     maxAttempts,
		lockoutDuration: lockoutDuration,
		now:             time.Now,
	}
}

// Login verifies credentials and advances the lockout state machine. All
// counter updates happen under a row lock so concurrent attempts serialize.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var response *models.LoginResponse
	var pendingEvents []*events.DomainEvent
	var loginErr error

	// Auth failures are recorded via loginErr instead of the closure's return
	// value so counter updates still commit when credentials are wrong
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		student, err := txRepo.Student().GetByNISNForUpdate(ctx, nil, req.NISN)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Same error as a wrong password so account existence leaks nothing
				loginErr = ErrInvalidCredentials
				return nil
			}
			return fmt.Errorf("failed to load student: %w", err)
		}

		now := s.now()

		if student.IsLocked {
			if !s.lockExpired(student, now) {
				loginErr = ErrAccountLocked
				return nil
			}

			// Lockout window elapsed; clear the lock before checking credentials
			student.IsLocked = false
			student.LoginAttempts = 0
			pendingEvents = append(pendingEvents,
				events.NewAccountUnlockedEvent(student.ID, student.NISN, "auto", now))
			s.logger.Info("Account auto-unlocked after lockout window",
				"student_id", student.ID)
		}

		if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)) != nil {
			student.LoginAttempts++
			student.LastLoginAttempt = &now

			locked := student.LoginAttempts >= s.maxAttempts
			if locked {
				student.IsLocked = true
				pendingEvents = append(pendingEvents,
					events.NewAccountLockedEvent(student.ID, student.NISN, student.LoginAttempts, now))
				s.logger.Warn("Account locked after repeated failures",
					"student_id", student.ID,
					"attempts", student.LoginAttempts)
			}

			if err := txRepo.Student().Update(ctx, nil, student); err != nil {
				return fmt.Errorf("failed to record failed attempt: %w", err)
			}

			if locked {
				loginErr = ErrAccountLocked
			} else {
				loginErr = ErrInvalidCredentials
			}
			return nil
		}

		// Successful login resets the failure counters
		student.LoginAttempts = 0
		student.LastLoginAttempt = &now
		if err := txRepo.Student().Update(ctx, nil, student); err != nil {
			return fmt.Errorf("failed to reset login counters: %w", err)
		}

		response = &models.LoginResponse{
			StudentID:        student.ID,
			Name:             student.Name,
			StudentClass:     student.StudentClass,
			AssessmentStatus: student.AssessmentStatus,
			PasswordChanged:  student.PasswordChanged,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAll(ctx, pendingEvents)
	if loginErr != nil {
		return nil, loginErr
	}

	s.logger.Info("Student logged in", "nisn", req.NISN)
	return response, nil
}

// Unlock clears the lock explicitly, typically by a counselor
func (s *authService) Unlock(ctx context.Context, studentID uint, unlockedBy string) error {
	var unlockedEvent *events.DomainEvent

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		student, err := txRepo.Student().GetByIDForUpdate(ctx, nil, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("failed to load student: %w", err)
		}

		student.IsLocked = false
		student.LoginAttempts = 0
		student.LastLoginAttempt = nil

		if err := txRepo.Student().Update(ctx, nil, student); err != nil {
			return fmt.Errorf("failed to unlock student: %w", err)
		}

		unlockedEvent = events.NewAccountUnlockedEvent(student.ID, student.NISN, unlockedBy, s.now())
		return nil
	})
	if err != nil {
		return err
	}

	s.publishAll(ctx, []*events.DomainEvent{unlockedEvent})
	s.logger.Info("Account unlocked", "student_id", studentID, "unlocked_by", unlockedBy)
	return nil
}

// lockExpired reports whether the lockout window has elapsed. A locked row
// without a timestamp stays locked until explicit unlock.
func (s *authService) lockExpired(student *models.Student, now time.Time) bool {
	if student.LastLoginAttempt == nil {
		return false
	}
	return now.Sub(*student.LastLoginAttempt) >= s.lockoutDuration
}

func (s *authService) publishAll(ctx context.Context, evs []*events.DomainEvent) {
	if s.publisher == nil {
		return
	}
	for _, ev := range evs {
		if ev == nil {
			continue
		}
		if err := s.publisher.PublishDomainEvent(ctx, ev); err != nil {
			s.logger.Error("Failed to publish event", "event_type", ev.Type, "error", err)
		}
	}
}
