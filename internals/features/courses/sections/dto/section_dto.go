package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/courses/sections/model"
)

type CreateSectionRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	Title    string    `json:"title" validate:"required,min=2,max=255"`
	Sequence *int      `json:"sequence" validate:"omitempty,min=0"`
}

type UpdateSectionRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=2,max=255"`
	Sequence *int    `json:"sequence" validate:"omitempty,min=0"`
}

// PUT /api/sections/sequences — reorder massal dalam satu course.
type UpdateSequencesRequest struct {
	CourseID  uuid.UUID           `json:"course_id" validate:"required"`
	Sequences []SectionSequencing `json:"sequences" validate:"required,min=1,dive"`
}

type SectionSequencing struct {
	SectionID uuid.UUID `json:"section_id" validate:"required"`
	Sequence  int       `json:"sequence" validate:"min=0"`
}

type SectionDTO struct {
	SectionID uuid.UUID `json:"section_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSectionDTO(m model.SectionModel) SectionDTO {
	return SectionDTO{
		SectionID: m.SectionID,
		CourseID:  m.SectionCourseID,
		Title:     m.SectionTitle,
		Sequence:  m.SectionSequence,
		CreatedAt: m.SectionCreatedAt,
	}
}

func ToSectionDTOs(ms []model.SectionModel) []SectionDTO {
	out := make([]SectionDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToSectionDTO(m))
	}
	return out
}
