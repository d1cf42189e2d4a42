package dto

import (
	"time"

	"github.com/google/uuid"

	"hairnerds_backend/internals/features/finance/payments/model"
)

/* ===================== Request ===================== */

type CreatePaymentRequest struct {
	PayableType string    `json:"payable_type" validate:"required,oneof=course bootcamp"`
	PayableID   uuid.UUID `json:"payable_id" validate:"required"`
}

/* ===================== Response ===================== */

type PaymentDTO struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	PayableType string    `json:"payable_type"`
	PayableID   uuid.UUID `json:"payable_id"`
	AmountIDR   int       `json:"amount_idr"`
	Status      string    `json:"status"`

	SnapToken   *string `json:"snap_token,omitempty"`
	CheckoutURL *string `json:"checkout_url,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	FailedAt  *time.Time `json:"failed_at,omitempty"`
	ExpiredAt *time.Time `json:"expired_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToPaymentDTO(m model.PaymentModel) PaymentDTO {
	return PaymentDTO{
		PaymentID:   m.PaymentID,
		OrderID:     m.PaymentOrderID,
		PayableType: m.PaymentPayableType,
		PayableID:   m.PaymentPayableID,
		AmountIDR:   m.PaymentAmountIDR,
		Status:      m.PaymentStatus,
		SnapToken:   m.PaymentSnapToken,
		CheckoutURL: m.PaymentCheckoutURL,
		PaidAt:      m.PaymentPaidAt,
		FailedAt:    m.PaymentFailedAt,
		ExpiredAt:   m.PaymentExpiredAt,
		CreatedAt:   m.PaymentCreatedAt,
	}
}

func ToPaymentDTOs(ms []model.PaymentModel) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentDTO(m))
	}
	return out
}
