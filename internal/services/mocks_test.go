package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
)

// ===== STUDENT REPOSITORY MOCK =====

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	return m.Called(ctx, tx, student).Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByNISN(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error) {
	args := m.Called(ctx, tx, nisn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	return m.Called(ctx, tx, student).Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockStudentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	args := m.Called(ctx, tx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByNISNForUpdate(ctx context.Context, tx *gorm.DB, nisn string) (*models.Student, error) {
	args := m.Called(ctx, tx, nisn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) UpdateAssessmentStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AssessmentStatus) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

func (m *MockStudentRepository) ExistsByNISN(ctx context.Context, tx *gorm.DB, nisn string) (bool, error) {
	args := m.Called(ctx, tx, nisn)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) GetClassStats(ctx context.Context, tx *gorm.DB, studentClass string) (*repositories.ClassAssessmentStats, error) {
	args := m.Called(ctx, tx, studentClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ClassAssessmentStats), args.Error(1)
}

// ===== RESULT REPOSITORY MOCK =====

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	return m.Called(ctx, tx, result).Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentResult, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssessmentResult), args.Error(1)
}

func (m *MockResultRepository) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssessmentResult), args.Error(1)
}

func (m *MockResultRepository) GetByStudentIDForUpdate(ctx context.Context, tx *gorm.DB, studentID uint) (*models.AssessmentResult, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssessmentResult), args.Error(1)
}

func (m *MockResultRepository) Update(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	return m.Called(ctx, tx, result).Error(0)
}

func (m *MockResultRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockResultRepository) CountByStatus(ctx context.Context, tx *gorm.DB, status models.ResultStatus) (int64, error) {
	args := m.Called(ctx, tx, status)
	return args.Get(0).(int64), args.Error(1)
}

// ===== ACHIEVEMENT REPOSITORY MOCK =====

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Create(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error {
	return m.Called(ctx, tx, achievement).Error(0)
}

func (m *MockAchievementRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentAchievement), args.Error(1)
}

func (m *MockAchievementRepository) GetByIDWithType(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentAchievement, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentAchievement), args.Error(1)
}

func (m *MockAchievementRepository) Update(ctx context.Context, tx *gorm.DB, achievement *models.StudentAchievement) error {
	return m.Called(ctx, tx, achievement).Error(0)
}

func (m *MockAchievementRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockAchievementRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.AchievementFilters) ([]*models.StudentAchievement, int64, error) {
	args := m.Called(ctx, tx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.StudentAchievement), args.Get(1).(int64), args.Error(2)
}

func (m *MockAchievementRepository) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StudentAchievement), args.Error(1)
}

func (m *MockAchievementRepository) GetVerifiedByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.StudentAchievement, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StudentAchievement), args.Error(1)
}

// ===== ACHIEVEMENT TYPE REPOSITORY MOCK =====

type MockAchievementTypeRepository struct {
	mock.Mock
}

func (m *MockAchievementTypeRepository) Create(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error {
	return m.Called(ctx, tx, achievementType).Error(0)
}

func (m *MockAchievementTypeRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AchievementType, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AchievementType), args.Error(1)
}

func (m *MockAchievementTypeRepository) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.AchievementType, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AchievementType), args.Error(1)
}

func (m *MockAchievementTypeRepository) Update(ctx context.Context, tx *gorm.DB, achievementType *models.AchievementType) error {
	return m.Called(ctx, tx, achievementType).Error(0)
}

func (m *MockAchievementTypeRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockAchievementTypeRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.AchievementTypeFilters) ([]*models.AchievementType, int64, error) {
	args := m.Called(ctx, tx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.AchievementType), args.Get(1).(int64), args.Error(2)
}

func (m *MockAchievementTypeRepository) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	args := m.Called(ctx, tx, name)
	return args.Bool(0), args.Error(1)
}

// ===== AGGREGATE REPOSITORY MOCK =====

// mockRepository bundles the per-entity mocks and runs transactions inline
// so service logic can be tested without a database.
type mockRepository struct {
	student         *MockStudentRepository
	result          *MockResultRepository
	achievement     *MockAchievementRepository
	achievementType *MockAchievementTypeRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		student:         new(MockStudentRepository),
		result:          new(MockResultRepository),
		achievement:     new(MockAchievementRepository),
		achievementType: new(MockAchievementTypeRepository),
	}
}

func (m *mockRepository) Student() repositories.StudentRepository {
	return m.student
}

func (m *mockRepository) Result() repositories.ResultRepository {
	return m.result
}

func (m *mockRepository) Achievement() repositories.AchievementRepository {
	return m.achievement
}

func (m *mockRepository) AchievementType() repositories.AchievementTypeRepository {
	return m.achievementType
}

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error {
	return nil
}

func (m *mockRepository) Close() error {
	return nil
}

func (m *mockRepository) assertExpectations(t mock.TestingT) {
	m.student.AssertExpectations(t)
	m.result.AssertExpectations(t)
	m.achievement.AssertExpectations(t)
	m.achievementType.AssertExpectations(t)
}
