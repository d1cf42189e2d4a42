package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bootcampModel "hairnerds_backend/internals/features/bootcamps/model"
	enrollService "hairnerds_backend/internals/features/enrollments/service"
	"hairnerds_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Notifikasi webhook
========================================================= */

type CallbackNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, ...
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"` // string dari Midtrans
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
	// field lain aman diabaikan
}

// VerifySignature — SHA512(order_id + status_code + gross_amount + serverKey),
// dibandingkan byte-for-byte dengan signature_key kiriman gateway.
func VerifySignature(n CallbackNotification, serverKey string) bool {
	if strings.TrimSpace(n.SignatureKey) == "" {
		return false
	}
	raw := n.OrderID + n.StatusCode + n.GrossAmount + serverKey
	sum := sha512.Sum512([]byte(raw))
	want := hex.EncodeToString(sum[:])
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// MapCallbackStatus memetakan status midtrans → status internal.
// "" artinya tidak ada perubahan status (mis. pending → log saja).
func MapCallbackStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return model.PaymentStatusPaid
	case "capture":
		if strings.ToLower(fraudStatus) == "accept" {
			return model.PaymentStatusPaid
		}
		return model.PaymentStatusFailed
	case "expire":
		return model.PaymentStatusExpired
	case "deny", "cancel", "failure":
		return model.PaymentStatusFailed
	case "pending":
		return ""
	}
	return ""
}

/* =========================================================
   Reconciler
========================================================= */

type PaymentReconciler struct {
	DB *gorm.DB
}

func NewPaymentReconciler(db *gorm.DB) *PaymentReconciler {
	return &PaymentReconciler{DB: db}
}

// Apply menerapkan satu notifikasi gateway ke payment-nya dalam satu transaksi.
// Payload mentah SELALU disimpan di row payment, apapun hasil mappingnya.
// Payment yang sudah terminal tidak diproses ulang: status dan side effects
// tidak disentuh (replay webhook idempotent).
func (r *PaymentReconciler) Apply(ctx context.Context, notif CallbackNotification) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := r.DB.WithContext(ctx).
		First(&p, "payment_order_id = ?", notif.OrderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "payment not found for order_id "+notif.OrderID)
		}
		return nil, err
	}

	raw, _ := json.Marshal(notif)
	now := time.Now()

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p.PaymentRawCallback = datatypes.JSON(raw)
		p.PaymentUpdatedAt = now

		if p.IsTerminal() {
			log.Printf("[PAYMENT] replay callback utk payment terminal %s (status=%s) — diabaikan", p.PaymentOrderID, p.PaymentStatus)
			return tx.Save(&p).Error
		}

		newStatus := MapCallbackStatus(notif.TransactionStatus, notif.FraudStatus)
		if newStatus == "" {
			log.Printf("[PAYMENT] %s transaction_status=%s → tidak ada perubahan", p.PaymentOrderID, notif.TransactionStatus)
			return tx.Save(&p).Error
		}

		p.PaymentStatus = newStatus
		switch newStatus {
		case model.PaymentStatusPaid:
			p.PaymentPaidAt = &now
		case model.PaymentStatusFailed:
			p.PaymentFailedAt = &now
		case model.PaymentStatusExpired:
			p.PaymentExpiredAt = &now
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		if newStatus == model.PaymentStatusPaid {
			return applyPaidSideEffects(tx, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// applyPaidSideEffects: course → enrollment + kerangka progress;
// bootcamp → alokasi seat + participant row.
func applyPaidSideEffects(tx *gorm.DB, p *model.PaymentModel) error {
	switch p.PaymentPayableType {
	case model.PayableTypeCourse:
		_, err := enrollService.CreateEnrollmentTx(tx, p.PaymentUserID, p.PaymentPayableID)
		return err

	case model.PayableTypeBootcamp:
		// guard kapasitas di-query path yang sama dengan pengecekan seat
		res := tx.Model(&bootcampModel.BootcampModel{}).
			Where("bootcamp_id = ? AND bootcamp_seat_booked < bootcamp_seat", p.PaymentPayableID).
			UpdateColumn("bootcamp_seat_booked", gorm.Expr("bootcamp_seat_booked + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Seat bootcamp sudah penuh")
		}

		pid := p.PaymentID
		participant := bootcampModel.BootcampParticipantModel{
			BootcampParticipantBootcampID: p.PaymentPayableID,
			BootcampParticipantUserID:     p.PaymentUserID,
			BootcampParticipantPaymentID:  &pid,
		}
		return tx.Create(&participant).Error
	}
	return fiber.NewError(fiber.StatusUnprocessableEntity, "payable_type tidak dikenal: "+p.PaymentPayableType)
}
