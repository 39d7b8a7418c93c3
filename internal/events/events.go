package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

// EventType represents the domain events published by this service
type EventType string

const (
	// Assessment lifecycle events
	EventResultSubmitted EventType = "result.submitted"
	EventResultEdited    EventType = "result.edited"
	EventResultRestarted EventType = "result.restarted"

	// Achievement events
	EventAchievementVerified EventType = "achievement.verified"

	// Account events
	EventAccountLocked   EventType = "account.locked"
	EventAccountUnlocked EventType = "account.unlocked"
)

// DomainEvent is the base structure for every published event
type DomainEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type ResultSubmittedEvent struct {
	ResultID        uint                `json:"result_id"`
	StudentID       uint                `json:"student_id"`
	Status          models.ResultStatus `json:"status"`
	TotalScore      int                 `json:"total_score"`
	PrimaryInterest scoring.Category    `json:"primary_interest"`
	SubmittedAt     time.Time           `json:"submitted_at"`
}

type ResultRestartedEvent struct {
	ResultID       uint      `json:"result_id"`
	StudentID      uint      `json:"student_id"`
	PreviousStatus string    `json:"previous_status"`
	RestartedAt    time.Time `json:"restarted_at"`
}

type AchievementVerifiedEvent struct {
	AchievementID uint      `json:"achievement_id"`
	StudentID     uint      `json:"student_id"`
	Points        int       `json:"points"`
	VerifiedBy    string    `json:"verified_by"`
	VerifiedAt    time.Time `json:"verified_at"`
}

type AccountLockedEvent struct {
	StudentID     uint      `json:"student_id"`
	NISN          string    `json:"nisn"`
	FailedAttempt int       `json:"failed_attempts"`
	LockedAt      time.Time `json:"locked_at"`
}

type AccountUnlockedEvent struct {
	StudentID  uint      `json:"student_id"`
	NISN       string    `json:"nisn"`
	UnlockedBy string    `json:"unlocked_by"` // "auto" or an admin identifier
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Event factory functions

func NewResultSubmittedEvent(resultID, studentID uint, status models.ResultStatus, totalScore int, primary scoring.Category, submittedAt time.Time) *DomainEvent {
	eventType := EventResultSubmitted
	if status == models.ResultEdited {
		eventType = EventResultEdited
	}

	return newDomainEvent(eventType, ResultSubmittedEvent{
		ResultID:        resultID,
		StudentID:       studentID,
		Status:          status,
		TotalScore:      totalScore,
		PrimaryInterest: primary,
		SubmittedAt:     submittedAt,
	})
}

func NewResultRestartedEvent(resultID, studentID uint, previousStatus string) *DomainEvent {
	return newDomainEvent(EventResultRestarted, ResultRestartedEvent{
		ResultID:       resultID,
		StudentID:      studentID,
		PreviousStatus: previousStatus,
		RestartedAt:    time.Now(),
	})
}

func NewAchievementVerifiedEvent(achievementID, studentID uint, points int, verifiedBy string, verifiedAt time.Time) *DomainEvent {
	return newDomainEvent(EventAchievementVerified, AchievementVerifiedEvent{
		AchievementID: achievementID,
		StudentID:     studentID,
		Points:        points,
		VerifiedBy:    verifiedBy,
		VerifiedAt:    verifiedAt,
	})
}

func NewAccountLockedEvent(studentID uint, nisn string, failedAttempts int, lockedAt time.Time) *DomainEvent {
	return newDomainEvent(EventAccountLocked, AccountLockedEvent{
		StudentID:     studentID,
		NISN:          nisn,
		FailedAttempt: failedAttempts,
		LockedAt:      lockedAt,
	})
}

func NewAccountUnlockedEvent(studentID uint, nisn, unlockedBy string, unlockedAt time.Time) *DomainEvent {
	return newDomainEvent(EventAccountUnlocked, AccountUnlockedEvent{
		StudentID:  studentID,
		NISN:       nisn,
		UnlockedBy: unlockedBy,
		UnlockedAt: unlockedAt,
	})
}

func newDomainEvent(eventType EventType, data interface{}) *DomainEvent {
	return &DomainEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "rmib-profile-service",
		Version:   "1.0",
		Data:      data,
	}
}
