package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizResultModel: satu attempt milik satu user untuk satu quiz.
// Lifecycle: dibuat saat start (is_submitted=false) → terminal saat submit /
// auto-submit (is_submitted=true, finished_at terisi). Setelah terminal tidak
// pernah dimutasi lagi.
type QuizResultModel struct {
	QuizResultID           uuid.UUID  `gorm:"column:quiz_result_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"quiz_result_id"`
	QuizResultUserID       uuid.UUID  `gorm:"column:quiz_result_user_id;type:uuid;not null;index:idx_quiz_result_active,unique,where:quiz_result_is_submitted = FALSE AND quiz_result_deleted_at IS NULL" json:"quiz_result_user_id"`
	QuizResultQuizID       uuid.UUID  `gorm:"column:quiz_result_quiz_id;type:uuid;not null;index:idx_quiz_result_active,unique,where:quiz_result_is_submitted = FALSE AND quiz_result_deleted_at IS NULL" json:"quiz_result_quiz_id"`
	QuizResultLessonID     *uuid.UUID `gorm:"column:quiz_result_lesson_id;type:uuid" json:"quiz_result_lesson_id,omitempty"`
	QuizResultEnrollmentID uuid.UUID  `gorm:"column:quiz_result_enrollment_id;type:uuid;not null" json:"quiz_result_enrollment_id"`

	QuizResultAnswered           int  `gorm:"column:quiz_result_answered;not null;default:0" json:"quiz_result_answered"`
	QuizResultCorrectAnswers     int  `gorm:"column:quiz_result_correct_answers;not null;default:0" json:"quiz_result_correct_answers"`
	QuizResultTotalObtainedMarks int  `gorm:"column:quiz_result_total_obtained_marks;not null;default:0" json:"quiz_result_total_obtained_marks"`
	QuizResultIsSubmitted        bool `gorm:"column:quiz_result_is_submitted;not null;default:false" json:"quiz_result_is_submitted"`

	// Payload jawaban terakhir yang digrade (audit/debug)
	QuizResultAnswers datatypes.JSON `gorm:"column:quiz_result_answers;type:jsonb" json:"quiz_result_answers,omitempty"`

	QuizResultStartedAt  time.Time  `gorm:"column:quiz_result_started_at;not null" json:"quiz_result_started_at"`
	QuizResultFinishedAt *time.Time `gorm:"column:quiz_result_finished_at" json:"quiz_result_finished_at,omitempty"`

	QuizResultCreatedAt time.Time      `gorm:"column:quiz_result_created_at;autoCreateTime" json:"quiz_result_created_at"`
	QuizResultUpdatedAt time.Time      `gorm:"column:quiz_result_updated_at;autoUpdateTime" json:"quiz_result_updated_at"`
	QuizResultDeletedAt gorm.DeletedAt `gorm:"column:quiz_result_deleted_at;index" json:"quiz_result_deleted_at,omitempty"`
}

func (QuizResultModel) TableName() string {
	return "quiz_results"
}

// ExpectedFinishAt: batas waktu attempt (zero time bila quiz tanpa durasi).
func (m *QuizResultModel) ExpectedFinishAt(durationSeconds int) time.Time {
	if durationSeconds <= 0 {
		return time.Time{}
	}
	return m.QuizResultStartedAt.Add(time.Duration(durationSeconds) * time.Second)
}

// IsExpired: true bila attempt melewati batas waktu dan belum submit.
func (m *QuizResultModel) IsExpired(durationSeconds int, now time.Time) bool {
	if m.QuizResultIsSubmitted || durationSeconds <= 0 {
		return false
	}
	return now.After(m.ExpectedFinishAt(durationSeconds))
}
