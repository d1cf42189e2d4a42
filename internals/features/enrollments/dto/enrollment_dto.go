package dto

import (
	"time"

	"github.com/google/uuid"

	courseDTO "hairnerds_backend/internals/features/courses/courses/dto"
	"hairnerds_backend/internals/features/enrollments/model"
)

type EnrollCourseRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

type EnrollmentDTO struct {
	EnrollmentID uuid.UUID  `json:"enrollment_id"`
	UserID       uuid.UUID  `json:"user_id"`
	CourseID     uuid.UUID  `json:"course_id"`
	QuizAttempts int        `json:"quiz_attempts"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	CompletionPercent *int                 `json:"completion_percent,omitempty"`
	Course            *courseDTO.CourseDTO `json:"course,omitempty"`
}

func ToEnrollmentDTO(m model.EnrollmentModel) EnrollmentDTO {
	return EnrollmentDTO{
		EnrollmentID: m.EnrollmentID,
		UserID:       m.EnrollmentUserID,
		CourseID:     m.EnrollmentCourseID,
		QuizAttempts: m.EnrollmentQuizAttempts,
		FinishedAt:   m.EnrollmentFinishedAt,
		CreatedAt:    m.EnrollmentCreatedAt,
	}
}

type ProgressDTO struct {
	ProgressID  uuid.UUID  `json:"progress_id"`
	LessonID    uuid.UUID  `json:"lesson_id"`
	IsCompleted bool       `json:"is_completed"`
	Score       *int       `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func ToProgressDTO(m model.ProgressModel) ProgressDTO {
	return ProgressDTO{
		ProgressID:  m.ProgressID,
		LessonID:    m.ProgressLessonID,
		IsCompleted: m.ProgressIsCompleted,
		Score:       m.ProgressScore,
		CompletedAt: m.ProgressCompletedAt,
	}
}

func ToProgressDTOs(ms []model.ProgressModel) []ProgressDTO {
	out := make([]ProgressDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToProgressDTO(m))
	}
	return out
}
