package dto

import (
	"github.com/google/uuid"
)

/*
Payload PUT /api/courses/:id/curriculum — pohon kurikulum penuh.

Semantik koleksi anak (sections/lessons/attachments/questions/answers):
  - field TIDAK dikirim (pointer nil)  → anak-anak dibiarkan utuh
  - field dikirim sebagai array kosong → semua anak tipe itu dihapus
  - item dengan *_id                   → update in place
  - item tanpa *_id                    → create baru
  - id lama yang tidak ikut dikirim    → dihapus
*/

// ============================
// Request DTO
// ============================

type SyncCurriculumRequest struct {
	Sections *[]CurriculumSectionInput `json:"sections" validate:"omitempty,dive"`
}

type CurriculumSectionInput struct {
	SectionID       *uuid.UUID               `json:"section_id" validate:"omitempty,uuid4"`
	SectionTitle    string                   `json:"section_title" validate:"required,max=255"`
	SectionSequence int                      `json:"section_sequence" validate:"gte=0"`
	Lessons         *[]CurriculumLessonInput `json:"lessons" validate:"omitempty,dive"`
}

type CurriculumLessonInput struct {
	LessonID       *uuid.UUID `json:"lesson_id" validate:"omitempty,uuid4"`
	LessonTitle    string     `json:"lesson_title" validate:"required,max=255"`
	LessonType     string     `json:"lesson_type" validate:"required,oneof=youtube document text audio live quiz"`
	LessonContent  *string    `json:"lesson_content"`
	LessonSequence int        `json:"lesson_sequence" validate:"gte=0"`
	LessonIsFree   bool       `json:"lesson_is_free"`

	Attachments *[]CurriculumAttachmentInput `json:"attachments" validate:"omitempty,dive"`
	Quiz        *CurriculumQuizInput         `json:"quiz"`
}

type CurriculumAttachmentInput struct {
	AttachmentID    *uuid.UUID `json:"attachment_id" validate:"omitempty,uuid4"`
	AttachmentTitle string     `json:"attachment_title" validate:"required,max=255"`
	AttachmentType  string     `json:"attachment_type" validate:"required,oneof=youtube document text audio live"`
	AttachmentURL   string     `json:"attachment_url" validate:"required"`
}

type CurriculumQuizInput struct {
	QuizID              *uuid.UUID `json:"quiz_id" validate:"omitempty,uuid4"`
	QuizTitle           string     `json:"quiz_title" validate:"required,max=255"`
	QuizInstruction     string     `json:"quiz_instruction"`
	QuizDurationSeconds int        `json:"quiz_duration_seconds" validate:"gte=0"`
	QuizTotalMarks      int        `json:"quiz_total_marks" validate:"gte=0"`
	QuizPassMarks       int        `json:"quiz_pass_marks" validate:"gte=0"`
	QuizMaxRetakes      int        `json:"quiz_max_retakes" validate:"gte=0"`

	Questions *[]CurriculumQuestionInput `json:"questions" validate:"omitempty,dive"`
}

type CurriculumQuestionInput struct {
	QuestionID    *uuid.UUID `json:"question_id" validate:"omitempty,uuid4"`
	QuestionType  string     `json:"question_type" validate:"required,oneof=single_choice multiple_choice fill_blank"`
	QuestionText  string     `json:"question_text" validate:"required"`
	QuestionScore int        `json:"question_score" validate:"gte=0"`

	Answers *[]CurriculumAnswerInput `json:"answers" validate:"omitempty,dive"`
}

type CurriculumAnswerInput struct {
	AnswerBankID     *uuid.UUID `json:"answer_bank_id" validate:"omitempty,uuid4"`
	AnswerBankAnswer string     `json:"answer_bank_answer" validate:"required"`
	AnswerBankIsTrue bool       `json:"answer_bank_is_true"`
}
