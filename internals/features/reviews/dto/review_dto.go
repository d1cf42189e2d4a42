package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/reviews/model"
)

type UpsertReviewRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	Rating   int       `json:"rating" validate:"required,min=1,max=5"`
	Text     string    `json:"text"`
}

type ReviewDTO struct {
	ReviewID  uuid.UUID `json:"review_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	CourseID  uuid.UUID `json:"course_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func ToReviewDTO(m model.ReviewModel) ReviewDTO {
	return ReviewDTO{
		ReviewID:  m.ReviewID,
		UserID:    m.ReviewUserID,
		CourseID:  m.ReviewCourseID,
		Rating:    m.ReviewRating,
		Text:      m.ReviewText,
		CreatedAt: m.ReviewCreatedAt,
	}
}
