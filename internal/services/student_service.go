package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/cache"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
)

type studentService struct {
	db           *gorm.DB
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) StudentService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}

	return &studentService{
		db:           db,
		repo:         repo,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
	}
}

// Letters that survive handwriting on a printed credential slip; no 0/O, 1/l/I
const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

const generatedPasswordLength = 8

// Create registers a student and issues a one-time generated password. The
// plaintext is returned exactly once in the response.
func (s *studentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.StudentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Student().ExistsByNISN(ctx, nil, req.NISN)
	if err != nil {
		return nil, fmt.Errorf("failed to check NISN: %w", err)
	}
	if exists {
		return nil, ErrNISNAlreadyUsed
	}

	password, err := generatePassword(generatedPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:              req.Name,
		NISN:              req.NISN,
		Gender:            req.Gender,
		BirthDate:         req.BirthDate,
		BirthPlace:        req.BirthPlace,
		StudentClass:      req.StudentClass,
		EntryYear:         req.EntryYear,
		Phone:             req.Phone,
		Address:           req.Address,
		ParentPhone:       req.ParentPhone,
		AssessmentStatus:  models.AssessmentPending,
		PasswordHash:      string(hash),
		GeneratedPassword: password,
	}

	if err := s.repo.Student().Create(ctx, nil, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student created", "student_id", student.ID, "class", student.StudentClass)

	return &models.StudentResponse{
		ID:                student.ID,
		Name:              student.Name,
		NISN:              student.NISN,
		StudentClass:      student.StudentClass,
		EntryYear:         student.EntryYear,
		AssessmentStatus:  student.AssessmentStatus,
		IsLocked:          student.IsLocked,
		GeneratedPassword: password,
	}, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByIDWithRelations(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	return s.repo.Student().List(ctx, nil, filters)
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Student().GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to load student: %w", err)
	}

	if err := s.repo.Student().Delete(ctx, nil, id); err != nil {
		return err
	}

	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

// GetCombinedScores merges test category scores with verified achievement
// contributions. The view is cached briefly; every submit or verify
// invalidates it through the repositories.
func (s *studentService) GetCombinedScores(ctx context.Context, studentID uint) (*models.CombinedScoreResponse, error) {
	cacheKey := fmt.Sprintf("combined:%d", studentID)
	var cached models.CombinedScoreResponse

	err := s.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &cached, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		return s.buildCombinedScores(ctx, studentID)
	})
	if err != nil {
		return nil, err
	}

	return &cached, nil
}

func (s *studentService) buildCombinedScores(ctx context.Context, studentID uint) (*models.CombinedScoreResponse, error) {
	if _, err := s.repo.Student().GetByID(ctx, nil, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	response := &models.CombinedScoreResponse{StudentID: studentID}

	var categoryScores map[scoring.Category]int
	result, err := s.repo.Result().GetByStudentID(ctx, nil, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	if result != nil {
		categoryScores = map[scoring.Category]int(result.CategoryScores.Data())
		response.ResultStatus = result.Status
		response.PrimaryInterest = result.PrimaryInterest
		response.SecondaryInterest = result.SecondaryInterest
		response.TertiaryInterest = result.TertiaryInterest
	}

	verified, err := s.repo.Achievement().GetVerifiedByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}

	contributionSets := make([]map[scoring.Category]int, 0, len(verified))
	for _, achievement := range verified {
		contributionSets = append(contributionSets, map[scoring.Category]int(achievement.RMIBContributions.Data()))
	}

	response.View = scoring.Combine(categoryScores, contributionSets)
	return response, nil
}

func (s *studentService) GetClassStats(ctx context.Context, studentClass string) (*repositories.ClassAssessmentStats, error) {
	return s.repo.Student().GetClassStats(ctx, nil, studentClass)
}

// generatePassword draws length characters from the credential alphabet
func generatePassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
