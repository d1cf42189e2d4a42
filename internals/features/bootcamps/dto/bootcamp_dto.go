package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/bootcamps/model"
)

type CreateBootcampRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=255"`
	PriceIDR    *int       `json:"price_idr" validate:"omitempty,min=0"`
	Seat        int        `json:"seat" validate:"required,min=1"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

type UpdateBootcampRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	PriceIDR    *int       `json:"price_idr" validate:"omitempty,min=0"`
	Seat        *int       `json:"seat" validate:"omitempty,min=1"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

type BootcampDTO struct {
	BootcampID  uuid.UUID  `json:"bootcamp_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Thumbnail   *string    `json:"thumbnail,omitempty"`
	Location    string     `json:"location"`
	PriceIDR    int        `json:"price_idr"`
	Seat        int        `json:"seat"`
	SeatBooked  int        `json:"seat_booked"`
	SeatsLeft   int        `json:"seats_left"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToBootcampDTO(m model.BootcampModel) BootcampDTO {
	return BootcampDTO{
		BootcampID:  m.BootcampID,
		Title:       m.BootcampTitle,
		Slug:        m.BootcampSlug,
		Description: m.BootcampDescription,
		Thumbnail:   m.BootcampThumbnail,
		Location:    m.BootcampLocation,
		PriceIDR:    m.BootcampPriceIDR,
		Seat:        m.BootcampSeat,
		SeatBooked:  m.BootcampSeatBooked,
		SeatsLeft:   m.SeatsLeft(),
		StartAt:     m.BootcampStartAt,
		EndAt:       m.BootcampEndAt,
		Status:      m.BootcampStatus,
		CreatedAt:   m.BootcampCreatedAt,
	}
}

func ToBootcampDTOs(ms []model.BootcampModel) []BootcampDTO {
	out := make([]BootcampDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToBootcampDTO(m))
	}
	return out
}

type ParticipantDTO struct {
	ParticipantID uuid.UUID  `json:"participant_id"`
	BootcampID    uuid.UUID  `json:"bootcamp_id"`
	UserID        uuid.UUID  `json:"user_id"`
	UserName      string     `json:"user_name,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	PaymentID     *uuid.UUID `json:"payment_id,omitempty"`
	JoinedAt      time.Time  `json:"joined_at"`
}
