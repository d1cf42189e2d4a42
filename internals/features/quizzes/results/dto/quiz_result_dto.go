package dto

import (
	"time"

	"github.com/google/uuid"

	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	"hairnerds_backend/internals/features/quizzes/results/model"
)

/* ============================
   Request DTO
============================ */

type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers" validate:"required,dive"`
}

// SubmittedAnswer: satu jawaban per question.
// Tipe pilihan memakai answer_bank_ids; fill_blank memakai answer_text.
type SubmittedAnswer struct {
	QuestionID    uuid.UUID   `json:"question_id" validate:"required"`
	AnswerBankIDs []uuid.UUID `json:"answer_bank_ids,omitempty"`
	AnswerText    *string     `json:"answer_text,omitempty"`
}

/* ============================
   Response DTO
============================ */

const (
	PassStatusPassed     = "passed"
	PassStatusFailed     = "failed"
	PassStatusInProgress = "in_progress"
)

type QuizResultDTO struct {
	QuizResultID           uuid.UUID  `json:"quiz_result_id"`
	QuizResultUserID       uuid.UUID  `json:"quiz_result_user_id"`
	QuizResultQuizID       uuid.UUID  `json:"quiz_result_quiz_id"`
	QuizResultLessonID     *uuid.UUID `json:"quiz_result_lesson_id,omitempty"`
	QuizResultEnrollmentID uuid.UUID  `json:"quiz_result_enrollment_id"`

	QuizResultAnswered           int  `json:"quiz_result_answered"`
	QuizResultCorrectAnswers     int  `json:"quiz_result_correct_answers"`
	QuizResultTotalObtainedMarks int  `json:"quiz_result_total_obtained_marks"`
	QuizResultIsSubmitted        bool `json:"quiz_result_is_submitted"`

	QuizResultStartedAt  time.Time  `json:"quiz_result_started_at"`
	QuizResultFinishedAt *time.Time `json:"quiz_result_finished_at,omitempty"`
	QuizResultExpiresAt  *time.Time `json:"quiz_result_expires_at,omitempty"`

	PassStatus string `json:"pass_status"`
}

// ToQuizResultDTO butuh quiz-nya untuk menghitung pass_status & expires_at.
func ToQuizResultDTO(m model.QuizResultModel, q quizModel.QuizModel) QuizResultDTO {
	out := QuizResultDTO{
		QuizResultID:                 m.QuizResultID,
		QuizResultUserID:             m.QuizResultUserID,
		QuizResultQuizID:             m.QuizResultQuizID,
		QuizResultLessonID:           m.QuizResultLessonID,
		QuizResultEnrollmentID:       m.QuizResultEnrollmentID,
		QuizResultAnswered:           m.QuizResultAnswered,
		QuizResultCorrectAnswers:     m.QuizResultCorrectAnswers,
		QuizResultTotalObtainedMarks: m.QuizResultTotalObtainedMarks,
		QuizResultIsSubmitted:        m.QuizResultIsSubmitted,
		QuizResultStartedAt:          m.QuizResultStartedAt,
		QuizResultFinishedAt:         m.QuizResultFinishedAt,
		PassStatus:                   PassStatusInProgress,
	}
	if exp := m.ExpectedFinishAt(q.QuizDurationSeconds); !exp.IsZero() {
		out.QuizResultExpiresAt = &exp
	}
	if m.QuizResultIsSubmitted {
		if m.QuizResultTotalObtainedMarks >= q.QuizPassMarks {
			out.PassStatus = PassStatusPassed
		} else {
			out.PassStatus = PassStatusFailed
		}
	}
	return out
}
