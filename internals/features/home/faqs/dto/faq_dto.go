package dto

import (
	"github.com/google/uuid"

	"hairnerds_backend/internals/features/home/faqs/model"
)

type CreateFaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Sequence *int   `json:"sequence" validate:"omitempty,min=0"`
}

type UpdateFaqRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Sequence *int    `json:"sequence" validate:"omitempty,min=0"`
}

type FaqDTO struct {
	FaqID    uuid.UUID `json:"faq_id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Sequence int       `json:"sequence"`
}

func ToFaqDTO(m model.FaqModel) FaqDTO {
	return FaqDTO{
		FaqID:    m.FaqID,
		Question: m.FaqQuestion,
		Answer:   m.FaqAnswer,
		Sequence: m.FaqSequence,
	}
}

func ToFaqDTOs(ms []model.FaqModel) []FaqDTO {
	out := make([]FaqDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToFaqDTO(m))
	}
	return out
}
