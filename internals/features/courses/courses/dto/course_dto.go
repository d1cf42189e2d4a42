package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/courses/courses/model"
)

/* ===================== Category ===================== */

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CategoryDTO struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToCategoryDTO(m model.CategoryModel) CategoryDTO {
	return CategoryDTO{
		CategoryID: m.CategoryID,
		Name:       m.CategoryName,
		Slug:       m.CategorySlug,
		CreatedAt:  m.CategoryCreatedAt,
	}
}

/* ===================== Course ===================== */

type CreateCourseRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	PriceIDR    *int       `json:"price_idr" validate:"omitempty,min=0"`
	Level       string     `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Semua field pointer: nil = tidak diubah.
type UpdateCourseRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	PriceIDR    *int       `json:"price_idr" validate:"omitempty,min=0"`
	Level       *string    `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type RejectCourseRequest struct {
	Reason string `json:"reason"`
}

type CourseDTO struct {
	CourseID     uuid.UUID    `json:"course_id"`
	InstructorID uuid.UUID    `json:"instructor_id"`
	CategoryID   *uuid.UUID   `json:"category_id,omitempty"`
	Category     *CategoryDTO `json:"category,omitempty"`

	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	PriceIDR    int     `json:"price_idr"`
	IsFree      bool    `json:"is_free"`
	Level       string  `json:"level"`
	Status      string  `json:"status"`

	AverageRating *float64  `json:"average_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToCourseDTO(m model.CourseModel) CourseDTO {
	return CourseDTO{
		CourseID:     m.CourseID,
		InstructorID: m.CourseInstructorID,
		CategoryID:   m.CourseCategoryID,
		Title:        m.CourseTitle,
		Slug:         m.CourseSlug,
		Description:  m.CourseDescription,
		Thumbnail:    m.CourseThumbnail,
		PriceIDR:     m.CoursePriceIDR,
		IsFree:       m.IsFree(),
		Level:        m.CourseLevel,
		Status:       m.CourseStatus,
		CreatedAt:    m.CourseCreatedAt,
		UpdatedAt:    m.CourseUpdatedAt,
	}
}

func ToCourseDTOs(ms []model.CourseModel) []CourseDTO {
	out := make([]CourseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToCourseDTO(m))
	}
	return out
}
