package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/courses/lessons/model"
)

/* ===================== Lesson ===================== */

type CreateLessonRequest struct {
	SectionID uuid.UUID `json:"section_id" validate:"required"`
	Title     string    `json:"title" validate:"required,min=2,max=255"`
	Type      string    `json:"type" validate:"required,oneof=youtube document text audio live quiz"`
	Content   *string   `json:"content"`
	Sequence  *int      `json:"sequence" validate:"omitempty,min=0"`
	IsFree    bool      `json:"is_free"`
}

type UpdateLessonRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=2,max=255"`
	Type     *string `json:"type" validate:"omitempty,oneof=youtube document text audio live quiz"`
	Content  *string `json:"content"`
	Sequence *int    `json:"sequence" validate:"omitempty,min=0"`
	IsFree   *bool   `json:"is_free"`
}

type LessonDTO struct {
	LessonID  uuid.UUID `json:"lesson_id"`
	SectionID uuid.UUID `json:"section_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Content   *string   `json:"content,omitempty"`
	Sequence  int       `json:"sequence"`
	IsFree    bool      `json:"is_free"`
	CreatedAt time.Time `json:"created_at"`

	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

func ToLessonDTO(m model.LessonModel) LessonDTO {
	return LessonDTO{
		LessonID:  m.LessonID,
		SectionID: m.LessonSectionID,
		CourseID:  m.LessonCourseID,
		Title:     m.LessonTitle,
		Type:      m.LessonType,
		Content:   m.LessonContent,
		Sequence:  m.LessonSequence,
		IsFree:    m.LessonIsFree,
		CreatedAt: m.LessonCreatedAt,
	}
}

/* ===================== Attachment ===================== */

// Attachment eksternal (URL) dibuat via JSON; attachment file via multipart.
type CreateAttachmentRequest struct {
	Title string `json:"title" validate:"required,min=2,max=255"`
	Type  string `json:"type" validate:"required,oneof=youtube document text audio live"`
	URL   string `json:"url" validate:"required,url"`
}

type AttachmentDTO struct {
	AttachmentID uuid.UUID `json:"attachment_id"`
	LessonID     uuid.UUID `json:"lesson_id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	IsExternal   bool      `json:"is_external"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToAttachmentDTO(m model.AttachmentModel) AttachmentDTO {
	return AttachmentDTO{
		AttachmentID: m.AttachmentID,
		LessonID:     m.AttachmentLessonID,
		Title:        m.AttachmentTitle,
		Type:         m.AttachmentType,
		URL:          m.AttachmentURL,
		IsExternal:   m.AttachmentIsExternal,
		CreatedAt:    m.AttachmentCreatedAt,
	}
}

func ToAttachmentDTOs(ms []model.AttachmentModel) []AttachmentDTO {
	out := make([]AttachmentDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAttachmentDTO(m))
	}
	return out
}
