package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bootcampModel "hairnerds_backend/internals/features/bootcamps/model"
	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	"hairnerds_backend/internals/features/finance/payments/model"
)

const testServerKey = "SB-Mid-server-testkey"

func signedNotification(orderID, statusCode, grossAmount, txStatus, fraudStatus string) CallbackNotification {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return CallbackNotification{
		TransactionStatus: txStatus,
		StatusCode:        statusCode,
		SignatureKey:      hex.EncodeToString(sum[:]),
		OrderID:           orderID,
		GrossAmount:       grossAmount,
		FraudStatus:       fraudStatus,
	}
}

func TestVerifySignature(t *testing.T) {
	n := signedNotification("HAIR-abc", "200", "150000.00", "settlement", "")

	assert.True(t, VerifySignature(n, testServerKey))

	t.Run("server key beda = tolak", func(t *testing.T) {
		assert.False(t, VerifySignature(n, "server-key-lain"))
	})

	t.Run("payload diubah = tolak", func(t *testing.T) {
		tampered := n
		tampered.GrossAmount = "1.00"
		assert.False(t, VerifySignature(tampered, testServerKey))
	})

	t.Run("signature kosong = tolak", func(t *testing.T) {
		empty := n
		empty.SignatureKey = "   "
		assert.False(t, VerifySignature(empty, testServerKey))
	})

	t.Run("signature uppercase tetap diterima", func(t *testing.T) {
		upper := n
		upper.SignatureKey = "  " + upperHex(n.SignatureKey) + "  "
		assert.True(t, VerifySignature(upper, testServerKey))
	})
}

func upperHex(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func TestMapCallbackStatus(t *testing.T) {
	cases := []struct {
		txStatus, fraud, want string
	}{
		{"settlement", "", model.PaymentStatusPaid},
		{"capture", "accept", model.PaymentStatusPaid},
		{"capture", "challenge", model.PaymentStatusFailed},
		{"capture", "deny", model.PaymentStatusFailed},
		{"expire", "", model.PaymentStatusExpired},
		{"deny", "", model.PaymentStatusFailed},
		{"cancel", "", model.PaymentStatusFailed},
		{"failure", "", model.PaymentStatusFailed},
		{"pending", "", ""},
		{"refund", "", ""}, // status asing → jangan sentuh payment
		{"SETTLEMENT", "", model.PaymentStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.txStatus+"/"+tc.fraud, func(t *testing.T) {
			assert.Equal(t, tc.want, MapCallbackStatus(tc.txStatus, tc.fraud))
		})
	}
}

/* =========================================================
   Reconciler.Apply (SQLite in-memory)
========================================================= */

// Skema dibuat manual: tag default:gen_random_uuid() milik PostgreSQL
// tidak bisa dimigrasi otomatis ke SQLite.
var paymentDDL = []string{
	`CREATE TABLE payments (
		payment_id TEXT PRIMARY KEY,
		payment_user_id TEXT NOT NULL,
		payment_payable_type TEXT NOT NULL,
		payment_payable_id TEXT NOT NULL,
		payment_order_id TEXT NOT NULL UNIQUE,
		payment_amount_idr INTEGER NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'pending',
		payment_snap_token TEXT,
		payment_checkout_url TEXT,
		payment_raw_callback TEXT,
		payment_paid_at DATETIME,
		payment_failed_at DATETIME,
		payment_expired_at DATETIME,
		payment_created_at DATETIME,
		payment_updated_at DATETIME,
		payment_deleted_at DATETIME
	)`,
	`CREATE TABLE enrollments (
		enrollment_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		enrollment_user_id TEXT NOT NULL,
		enrollment_course_id TEXT NOT NULL,
		enrollment_quiz_attempts INTEGER NOT NULL DEFAULT 0,
		enrollment_finished_at DATETIME,
		enrollment_created_at DATETIME,
		enrollment_updated_at DATETIME,
		enrollment_deleted_at DATETIME
	)`,
	`CREATE TABLE progresses (
		progress_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		progress_enrollment_id TEXT NOT NULL,
		progress_user_id TEXT NOT NULL,
		progress_course_id TEXT NOT NULL,
		progress_lesson_id TEXT NOT NULL,
		progress_is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		progress_score INTEGER,
		progress_completed_at DATETIME,
		progress_created_at DATETIME,
		progress_updated_at DATETIME,
		progress_deleted_at DATETIME
	)`,
	`CREATE TABLE lessons (
		lesson_id TEXT PRIMARY KEY,
		lesson_section_id TEXT NOT NULL,
		lesson_course_id TEXT NOT NULL,
		lesson_title TEXT NOT NULL,
		lesson_type TEXT NOT NULL,
		lesson_content TEXT,
		lesson_sequence INTEGER NOT NULL DEFAULT 0,
		lesson_is_free BOOLEAN NOT NULL DEFAULT FALSE,
		lesson_created_at DATETIME,
		lesson_updated_at DATETIME,
		lesson_deleted_at DATETIME
	)`,
	`CREATE TABLE bootcamps (
		bootcamp_id TEXT PRIMARY KEY,
		bootcamp_title TEXT NOT NULL,
		bootcamp_slug TEXT NOT NULL,
		bootcamp_description TEXT,
		bootcamp_thumbnail TEXT,
		bootcamp_location TEXT,
		bootcamp_price_idr INTEGER NOT NULL DEFAULT 0,
		bootcamp_seat INTEGER NOT NULL DEFAULT 0,
		bootcamp_seat_booked INTEGER NOT NULL DEFAULT 0,
		bootcamp_start_at DATETIME,
		bootcamp_end_at DATETIME,
		bootcamp_status TEXT NOT NULL DEFAULT 'draft',
		bootcamp_created_at DATETIME,
		bootcamp_updated_at DATETIME,
		bootcamp_deleted_at DATETIME
	)`,
	`CREATE TABLE bootcamp_participants (
		bootcamp_participant_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		bootcamp_participant_bootcamp_id TEXT NOT NULL,
		bootcamp_participant_user_id TEXT NOT NULL,
		bootcamp_participant_payment_id TEXT,
		bootcamp_participant_created_at DATETIME,
		bootcamp_participant_deleted_at DATETIME
	)`,
}

func newPaymentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, ddl := range paymentDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedPayment(t *testing.T, db *gorm.DB, payableType string, payableID uuid.UUID, amount int) model.PaymentModel {
	t.Helper()
	p := model.PaymentModel{
		PaymentID:          uuid.New(),
		PaymentUserID:      uuid.New(),
		PaymentPayableType: payableType,
		PaymentPayableID:   payableID,
		PaymentOrderID:     "HAIR-" + uuid.New().String(),
		PaymentAmountIDR:   amount,
		PaymentStatus:      model.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestApplySettlementEnrollsCourse(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)
	courseID := uuid.New()
	p := seedPayment(t, db, model.PayableTypeCourse, courseID, 150000)

	got, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "200", "150000.00", "settlement", ""))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
	assert.NotNil(t, got.PaymentPaidAt)
	assert.NotEmpty(t, got.PaymentRawCallback)

	var enr enrollModel.EnrollmentModel
	require.NoError(t, db.First(&enr,
		"enrollment_user_id = ? AND enrollment_course_id = ?", p.PaymentUserID, courseID).Error)
}

func TestApplyTerminalReplayKeepsStatusAndSideEffects(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)
	courseID := uuid.New()
	p := seedPayment(t, db, model.PayableTypeCourse, courseID, 150000)

	_, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "200", "150000.00", "settlement", ""))
	require.NoError(t, err)

	// replay dengan status lain: payload mentah tersimpan, status tidak goyang
	got, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "202", "150000.00", "expire", ""))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
	assert.Nil(t, got.PaymentExpiredAt)
	assert.Contains(t, string(got.PaymentRawCallback), "expire")

	var enrCount int64
	db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_user_id = ?", p.PaymentUserID).Count(&enrCount)
	assert.Equal(t, int64(1), enrCount, "replay tidak boleh menggandakan enrollment")
}

func TestApplyPendingOnlySavesRawPayload(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)
	p := seedPayment(t, db, model.PayableTypeCourse, uuid.New(), 150000)

	got, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "201", "150000.00", "pending", ""))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus)
	assert.NotEmpty(t, got.PaymentRawCallback)

	var enrCount int64
	db.Model(&enrollModel.EnrollmentModel{}).Count(&enrCount)
	assert.Zero(t, enrCount)
}

func TestApplyExpireMarksExpired(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)
	p := seedPayment(t, db, model.PayableTypeCourse, uuid.New(), 150000)

	got, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "407", "150000.00", "expire", ""))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusExpired, got.PaymentStatus)
	assert.NotNil(t, got.PaymentExpiredAt)
}

func TestApplyUnknownOrderIDReturns404(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)

	_, err := rec.Apply(context.Background(),
		signedNotification("HAIR-tidak-ada", "200", "1.00", "settlement", ""))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestApplyBootcampSeatAllocation(t *testing.T) {
	db := newPaymentTestDB(t)
	rec := NewPaymentReconciler(db)

	bc := bootcampModel.BootcampModel{
		BootcampID:         uuid.New(),
		BootcampTitle:      "Bootcamp Fade Mastery",
		BootcampSlug:       "bootcamp-fade-mastery",
		BootcampPriceIDR:   2500000,
		BootcampSeat:       1,
		BootcampSeatBooked: 0,
		BootcampStatus:     bootcampModel.BootcampStatusPublished,
	}
	require.NoError(t, db.Create(&bc).Error)

	p := seedPayment(t, db, model.PayableTypeBootcamp, bc.BootcampID, 2500000)
	got, err := rec.Apply(context.Background(),
		signedNotification(p.PaymentOrderID, "200", "2500000.00", "settlement", ""))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)

	var fresh bootcampModel.BootcampModel
	require.NoError(t, db.First(&fresh, "bootcamp_id = ?", bc.BootcampID).Error)
	assert.Equal(t, 1, fresh.BootcampSeatBooked)

	var part bootcampModel.BootcampParticipantModel
	require.NoError(t, db.First(&part,
		"bootcamp_participant_bootcamp_id = ? AND bootcamp_participant_user_id = ?",
		bc.BootcampID, p.PaymentUserID).Error)
	require.NotNil(t, part.BootcampParticipantPaymentID)
	assert.Equal(t, p.PaymentID, *part.BootcampParticipantPaymentID)

	t.Run("seat penuh = 422 dan payment tetap pending", func(t *testing.T) {
		p2 := seedPayment(t, db, model.PayableTypeBootcamp, bc.BootcampID, 2500000)
		_, err := rec.Apply(context.Background(),
			signedNotification(p2.PaymentOrderID, "200", "2500000.00", "settlement", ""))
		require.Error(t, err)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)

		// transaksi batal total: status tidak berubah jadi paid
		var unchanged model.PaymentModel
		require.NoError(t, db.First(&unchanged, "payment_id = ?", p2.PaymentID).Error)
		assert.Equal(t, model.PaymentStatusPending, unchanged.PaymentStatus)

		var seatHolder bootcampModel.BootcampModel
		require.NoError(t, db.First(&seatHolder, "bootcamp_id = ?", bc.BootcampID).Error)
		assert.Equal(t, 1, seatHolder.BootcampSeatBooked)
	})
}
