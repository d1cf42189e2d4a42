package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM di PostgreSQL: payment_status, payment_payable_type */

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

const (
	PayableTypeCourse   = "course"
	PayableTypeBootcamp = "bootcamp"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID     uuid.UUID `gorm:"column:payment_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"payment_id"`
	PaymentUserID uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`

	// Payable polymorphic: course | bootcamp
	PaymentPayableType string    `gorm:"column:payment_payable_type;type:varchar(20);not null" json:"payment_payable_type"`
	PaymentPayableID   uuid.UUID `gorm:"column:payment_payable_id;type:uuid;not null;index" json:"payment_payable_id"`

	// order_id yang dikirim ke gateway (HAIR-<uuid>)
	PaymentOrderID   string `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_order_id"`
	PaymentAmountIDR int    `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr >= 0" json:"payment_amount_idr"`
	PaymentStatus    string `gorm:"column:payment_status;type:varchar(20);not null;default:'pending'" json:"payment_status"`

	PaymentSnapToken   *string `gorm:"column:payment_snap_token;type:text" json:"payment_snap_token,omitempty"`
	PaymentCheckoutURL *string `gorm:"column:payment_checkout_url;type:text" json:"payment_checkout_url,omitempty"`

	// Payload callback mentah terakhir (audit/debug) — selalu disimpan apapun hasil mappingnya
	PaymentRawCallback datatypes.JSON `gorm:"column:payment_raw_callback;type:jsonb" json:"payment_raw_callback,omitempty"`

	PaymentPaidAt    *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentFailedAt  *time.Time `gorm:"column:payment_failed_at" json:"payment_failed_at,omitempty"`
	PaymentExpiredAt *time.Time `gorm:"column:payment_expired_at" json:"payment_expired_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// IsTerminal: pending adalah satu-satunya status non-terminal.
func (m *PaymentModel) IsTerminal() bool {
	return m.PaymentStatus != PaymentStatusPending
}
