package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/rmib-profile-service/internal/events"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
)

func newTestAssessmentService(repo *mockRepository, publisher events.EventPublisher) AssessmentService {
	return NewAssessmentService(repo, nil, testLogger(), validator.New(), publisher)
}

func completeRatings() models.RatingMap {
	ratings := make(models.RatingMap, scoring.CategoryCount)
	for i, c := range scoring.Categories {
		ratings[c] = i + 1
	}
	return ratings
}

func inProgressResult(studentID uint) *models.AssessmentResult {
	result := &models.AssessmentResult{
		ID:        10,
		StudentID: studentID,
		Status:    models.ResultInProgress,
		Strategy:  scoring.DefaultStrategy,
	}
	result.ClearDerived()
	return result
}

func completedResult(t *testing.T, studentID uint) *models.AssessmentResult {
	t.Helper()
	agg, err := scoring.Aggregate(map[scoring.Category]int(completeRatings()), scoring.DefaultStrategy)
	require.NoError(t, err)

	submittedAt := time.Now().Add(-time.Hour)
	result := &models.AssessmentResult{
		ID:          10,
		StudentID:   studentID,
		Status:      models.ResultCompleted,
		Strategy:    scoring.DefaultStrategy,
		SubmittedAt: &submittedAt,
	}
	result.ApplyAggregate(completeRatings(), agg)
	return result
}

// ===== START =====

func TestStart_CreatesNewResult(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	student := &models.Student{ID: 1, AssessmentStatus: models.AssessmentPending}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(nil, gorm.ErrRecordNotFound)
	repo.result.On("Create", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("UpdateAssessmentStatus", mock.Anything, (*gorm.DB)(nil), uint(1), models.AssessmentInProgress).Return(nil)

	response, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.ResultInProgress, response.Status)
	assert.False(t, response.Resumed)
	assert.Empty(t, response.Ratings)
	repo.assertExpectations(t)
}

func TestStart_ResumesInProgressResult(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	result := inProgressResult(1)
	result.Ratings = datatypes.NewJSONType(models.RatingMap{scoring.CategoryOutdoor: 4})

	student := &models.Student{ID: 1, AssessmentStatus: models.AssessmentInProgress}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)

	response, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, response.Resumed)
	assert.Equal(t, 4, response.Ratings[scoring.CategoryOutdoor])
	repo.result.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_RejectsFinalizedResult(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	student := &models.Student{ID: 1, AssessmentStatus: models.AssessmentCompleted}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(completedResult(t, 1), nil)

	_, err := svc.Start(context.Background(), 1)
	assert.True(t, IsStateError(err), "starting over a finalized result must fail: %v", err)
}

func TestStart_UnknownStudent(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Start(context.Background(), 9)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

// ===== SAVE PROGRESS =====

func TestSaveProgress_MergesIntoExistingRatings(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	result := inProgressResult(1)
	result.Ratings = datatypes.NewJSONType(models.RatingMap{scoring.CategoryOutdoor: 4})

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)

	response, err := svc.SaveProgress(context.Background(), 1, models.SaveProgressRequest{
		Ratings: models.RatingMap{
			scoring.CategoryOutdoor:    7, // overwrite
			scoring.CategoryScientific: 12,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, response.SavedCategories)

	merged := result.Ratings.Data()
	assert.Equal(t, 7, merged[scoring.CategoryOutdoor])
	assert.Equal(t, 12, merged[scoring.CategoryScientific])
	repo.assertExpectations(t)
}

func TestSaveProgress_RejectsOutOfRangeRating(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.SaveProgress(context.Background(), 1, models.SaveProgressRequest{
		Ratings: models.RatingMap{scoring.CategoryOutdoor: 13},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.result.AssertNotCalled(t, "GetByStudentIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveProgress_RejectsFinalizedResult(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(completedResult(t, 1), nil)

	_, err := svc.SaveProgress(context.Background(), 1, models.SaveProgressRequest{
		Ratings: models.RatingMap{scoring.CategoryOutdoor: 5},
	})
	assert.True(t, IsStateError(err))
}

// ===== SUBMIT =====

func TestSubmit_FinalizesToCompleted(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestAssessmentService(repo, publisher)

	student := &models.Student{ID: 1, AssessmentStatus: models.AssessmentInProgress}
	result := inProgressResult(1)

	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.student.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.Student")).Return(nil)
	repo.achievement.On("GetVerifiedByStudent", mock.Anything, (*gorm.DB)(nil), uint(1)).Return([]*models.StudentAchievement{}, nil)

	response, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: completeRatings(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResultCompleted, response.Status)
	assert.Equal(t, 390, response.TotalScore)
	assert.Equal(t, scoring.CategoryMedical, response.PrimaryInterest)
	assert.Equal(t, 12, response.PrimaryRating)
	assert.Equal(t, 390, response.CombinedScore)

	assert.Equal(t, models.ResultCompleted, result.Status)
	require.NotNil(t, result.SubmittedAt)
	assert.Equal(t, models.AssessmentCompleted, student.AssessmentStatus)
	require.NotNil(t, student.TestDate)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResultSubmitted, published[0].Type)
	repo.assertExpectations(t)
}

func TestSubmit_IncompleteRatingsFail(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	student := &models.Student{ID: 1}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)

	_, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: models.RatingMap{scoring.CategoryOutdoor: 5},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.result.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_WithPendingSnapshotFinalizesToEdited(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestAssessmentService(repo, publisher)

	// A result mid-edit: restarted from completed, undo buffer pending
	result := completedResult(t, 1)
	require.NoError(t, result.TakeSnapshot())
	result.ClearDerived()
	result.Status = models.ResultInProgress

	student := &models.Student{ID: 1, AssessmentStatus: models.AssessmentInProgress}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.student.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.Student")).Return(nil)
	repo.achievement.On("GetVerifiedByStudent", mock.Anything, (*gorm.DB)(nil), uint(1)).Return([]*models.StudentAchievement{}, nil)

	response, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: completeRatings(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResultEdited, response.Status)
	assert.Equal(t, models.ResultEdited, result.Status)
	require.NotNil(t, result.EditedAt)
	assert.False(t, result.HasSnapshot(), "resolving an edit must drop the undo buffer")

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResultEdited, published[0].Type)
}

func TestSubmit_CreatesSubmittedAchievements(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	scientific := scoring.CategoryScientific
	computational := scoring.CategoryComputational
	achievementType := &models.AchievementType{
		ID:            3,
		Name:          "Olimpiade Sains Nasional",
		IsActive:      true,
		RMIBPrimary:   &scientific,
		RMIBSecondary: &computational,
	}

	student := &models.Student{ID: 1}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.achievementType.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(3)).Return(achievementType, nil)

	var created *models.StudentAchievement
	repo.achievement.On("Create", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.StudentAchievement")).
		Run(func(args mock.Arguments) {
			created = args.Get(2).(*models.StudentAchievement)
		}).Return(nil)

	repo.student.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.student.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.Student")).Return(nil)
	repo.achievement.On("GetVerifiedByStudent", mock.Anything, (*gorm.DB)(nil), uint(1)).Return([]*models.StudentAchievement{}, nil)

	_, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: completeRatings(),
		Achievements: []models.AchievementSubmission{
			{AchievementTypeID: 3, Level: scoring.LevelNational, Rank: scoring.RankFirst, Year: 2025},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, 80, created.Points)
	contributions := created.RMIBContributions.Data()
	assert.Equal(t, 80, contributions[scoring.CategoryScientific])
	assert.Equal(t, 40, contributions[scoring.CategoryComputational])
	assert.False(t, created.IsVerified, "submitted achievements await verification")
}

func TestSubmit_StaffSubmissionVerifiesAchievements(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	scientific := scoring.CategoryScientific
	achievementType := &models.AchievementType{ID: 3, Name: "Olimpiade Sains Nasional", IsActive: true, RMIBPrimary: &scientific}

	student := &models.Student{ID: 1}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.achievementType.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(3)).Return(achievementType, nil)

	var created *models.StudentAchievement
	repo.achievement.On("Create", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.StudentAchievement")).
		Run(func(args mock.Arguments) {
			created = args.Get(2).(*models.StudentAchievement)
		}).Return(nil)

	repo.student.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.student.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.Student")).Return(nil)
	repo.achievement.On("GetVerifiedByStudent", mock.Anything, (*gorm.DB)(nil), uint(1)).Return([]*models.StudentAchievement{}, nil)

	_, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings:     completeRatings(),
		SubmittedBy: "counselor-7",
		Achievements: []models.AchievementSubmission{
			{AchievementTypeID: 3, Level: scoring.LevelProvince, Rank: scoring.RankFirst, Year: 2025},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.IsVerified)
	require.NotNil(t, created.VerifiedBy)
	assert.Equal(t, "counselor-7", *created.VerifiedBy)
	assert.NotNil(t, created.VerifiedAt)
}

func TestSubmit_InactiveAchievementTypeFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	inactive := &models.AchievementType{ID: 3, Name: "Retired Contest", IsActive: false}

	student := &models.Student{ID: 1}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.achievementType.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(3)).Return(inactive, nil)

	_, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: completeRatings(),
		Achievements: []models.AchievementSubmission{
			{AchievementTypeID: 3, Level: scoring.LevelSchool, Rank: scoring.RankFirst, Year: 2025},
		},
	})
	assert.ErrorIs(t, err, ErrAchievementTypeInactive)
}

func TestSubmit_CountsVerifiedAchievementScore(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	verified := &models.StudentAchievement{
		ID: 7, StudentID: 1, IsVerified: true,
		Level: scoring.LevelNational, Rank: scoring.RankFirst,
	}
	scientific := scoring.CategoryScientific
	computational := scoring.CategoryComputational
	verified.Recalculate(scoring.CategoryMapping{Primary: &scientific, Secondary: &computational})

	student := &models.Student{ID: 1}
	repo.student.On("GetByIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("GetByID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(student, nil)
	repo.student.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.Student")).Return(nil)
	repo.achievement.On("GetVerifiedByStudent", mock.Anything, (*gorm.DB)(nil), uint(1)).Return([]*models.StudentAchievement{verified}, nil)

	response, err := svc.Submit(context.Background(), 1, models.SubmitAssessmentRequest{
		Ratings: completeRatings(),
	})
	require.NoError(t, err)

	// national first: 80 primary + 40 secondary
	assert.Equal(t, 120, response.AchievementScore)
	assert.Equal(t, 390, response.TestScore)
	assert.Equal(t, 510, response.CombinedScore)
}

// ===== RESTART / CANCEL EDIT =====

func TestRestart_SnapshotsAndReopens(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestAssessmentService(repo, publisher)

	result := completedResult(t, 1)

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("UpdateAssessmentStatus", mock.Anything, (*gorm.DB)(nil), uint(1), models.AssessmentInProgress).Return(nil)

	response, err := svc.Restart(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.ResultInProgress, response.Status)
	assert.Equal(t, completeRatings(), response.PreviousRatings)

	assert.Equal(t, models.ResultInProgress, result.Status)
	assert.True(t, result.HasSnapshot())
	assert.Equal(t, 0, result.TotalScore)
	assert.Empty(t, result.Ratings.Data())

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResultRestarted, published[0].Type)
	repo.assertExpectations(t)
}

func TestRestart_RejectsInProgressResult(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)

	_, err := svc.Restart(context.Background(), 1)
	assert.True(t, IsStateError(err))
}

func TestCancelEdit_RestoresSnapshot(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	result := completedResult(t, 1)
	originalTotal := result.TotalScore
	originalPrimary := result.PrimaryInterest

	require.NoError(t, result.TakeSnapshot())
	result.ClearDerived()
	result.Status = models.ResultInProgress
	result.Ratings = datatypes.NewJSONType(models.RatingMap{scoring.CategoryOutdoor: 9})

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)
	repo.result.On("Update", mock.Anything, (*gorm.DB)(nil), mock.AnythingOfType("*models.AssessmentResult")).Return(nil)
	repo.student.On("UpdateAssessmentStatus", mock.Anything, (*gorm.DB)(nil), uint(1), models.AssessmentCompleted).Return(nil)

	response, err := svc.CancelEdit(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.ResultCompleted, response.Status)
	assert.Equal(t, originalTotal, response.TotalScore)
	assert.Equal(t, originalPrimary, response.PrimaryInterest)

	assert.Equal(t, models.ResultCompleted, result.Status)
	assert.False(t, result.HasSnapshot())
	assert.Equal(t, completeRatings(), result.Ratings.Data())
	repo.assertExpectations(t)
}

func TestCancelEdit_WithoutEditFlow(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(completedResult(t, 1), nil)

	_, err := svc.CancelEdit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotInEditFlow)
}

func TestCancelEdit_InProgressWithoutSnapshot(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.result.On("GetByStudentIDForUpdate", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(inProgressResult(1), nil)

	_, err := svc.CancelEdit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoSnapshotToCancel)
}

// ===== GET RESULT =====

func TestGetResult_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.result.On("GetByStudentID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetResult(context.Background(), 1)
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestGetProgress_CountsAnsweredCategories(t *testing.T) {
	repo := newMockRepository()
	svc := newTestAssessmentService(repo, events.NewMockEventPublisher(testLogger()))

	result := inProgressResult(1)
	result.Ratings = datatypes.NewJSONType(models.RatingMap{
		scoring.CategoryOutdoor:    4,
		scoring.CategoryScientific: 9,
	})
	repo.result.On("GetByStudentID", mock.Anything, (*gorm.DB)(nil), uint(1)).Return(result, nil)

	progress, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.ResultInProgress, progress.Status)
	assert.Equal(t, 2, progress.AnsweredCount)
	assert.Equal(t, 10, progress.RemainingCount)
	assert.False(t, progress.PendingEdit)
	assert.Equal(t, 9, progress.Ratings[scoring.CategoryScientific])
}
