package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/quizzes/quiz/model"
)

/* ===================== Quiz ===================== */

type CreateQuizRequest struct {
	LessonID        uuid.UUID `json:"lesson_id" validate:"required"`
	Title           string    `json:"title" validate:"required,min=2,max=255"`
	Instruction     string    `json:"instruction"`
	DurationSeconds int       `json:"duration_seconds" validate:"min=0"`
	TotalMarks      int       `json:"total_marks" validate:"min=0"`
	PassMarks       int       `json:"pass_marks" validate:"min=0"`
	MaxRetakes      int       `json:"max_retakes" validate:"min=0"`
}

type UpdateQuizRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=2,max=255"`
	Instruction     *string `json:"instruction"`
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,min=0"`
	TotalMarks      *int    `json:"total_marks" validate:"omitempty,min=0"`
	PassMarks       *int    `json:"pass_marks" validate:"omitempty,min=0"`
	MaxRetakes      *int    `json:"max_retakes" validate:"omitempty,min=0"`
}

type QuizDTO struct {
	QuizID          uuid.UUID  `json:"quiz_id"`
	LessonID        *uuid.UUID `json:"lesson_id,omitempty"`
	SectionID       uuid.UUID  `json:"section_id"`
	CourseID        uuid.UUID  `json:"course_id"`
	Title           string     `json:"title"`
	Instruction     string     `json:"instruction"`
	DurationSeconds int        `json:"duration_seconds"`
	TotalMarks      int        `json:"total_marks"`
	PassMarks       int        `json:"pass_marks"`
	MaxRetakes      int        `json:"max_retakes"`
	CreatedAt       time.Time  `json:"created_at"`

	Questions []QuestionDTO `json:"questions,omitempty"`
}

func ToQuizDTO(m model.QuizModel) QuizDTO {
	return QuizDTO{
		QuizID:          m.QuizID,
		LessonID:        m.QuizLessonID,
		SectionID:       m.QuizSectionID,
		CourseID:        m.QuizCourseID,
		Title:           m.QuizTitle,
		Instruction:     m.QuizInstruction,
		DurationSeconds: m.QuizDurationSeconds,
		TotalMarks:      m.QuizTotalMarks,
		PassMarks:       m.QuizPassMarks,
		MaxRetakes:      m.QuizMaxRetakes,
		CreatedAt:       m.QuizCreatedAt,
	}
}

/* ===================== Question ===================== */

type UpsertQuestionRequest struct {
	Type    string                `json:"type" validate:"required,oneof=single_choice multiple_choice fill_blank"`
	Text    string                `json:"text" validate:"required"`
	Score   int                   `json:"score" validate:"min=0"`
	Answers []UpsertAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type UpsertAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
	IsTrue bool   `json:"is_true"`
}

type QuestionDTO struct {
	QuestionID uuid.UUID   `json:"question_id"`
	QuizID     uuid.UUID   `json:"quiz_id"`
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	Score      int         `json:"score"`
	Answers    []AnswerDTO `json:"answers,omitempty"`
}

type AnswerDTO struct {
	AnswerBankID uuid.UUID `json:"answer_bank_id"`
	Answer       string    `json:"answer"`
	IsTrue       *bool     `json:"is_true,omitempty"` // disembunyikan dari peserta
}

func ToQuestionDTO(m model.QuestionModel, banks []model.AnswerBankModel, withKey bool) QuestionDTO {
	out := QuestionDTO{
		QuestionID: m.QuestionID,
		QuizID:     m.QuestionQuizID,
		Type:       m.QuestionType,
		Text:       m.QuestionText,
		Score:      m.QuestionScore,
	}
	for _, b := range banks {
		a := AnswerDTO{AnswerBankID: b.AnswerBankID, Answer: b.AnswerBankAnswer}
		if withKey {
			v := b.AnswerBankIsTrue
			a.IsTrue = &v
		}
		out.Answers = append(out.Answers, a)
	}
	return out
}
