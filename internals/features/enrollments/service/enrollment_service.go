package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	"hairnerds_backend/internals/features/enrollments/model"
)

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// CreateEnrollmentTx membuat enrollment + kerangka progress per lesson.
// Dipakai dua jalur: enroll course gratis dan reconciliation payment paid.
// Idempotent: enrollment yang sudah ada dikembalikan apa adanya.
func CreateEnrollmentTx(tx *gorm.DB, userID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	var existing model.EnrollmentModel
	err := tx.First(&existing, "enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enr := model.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
	}
	if err := tx.Create(&enr).Error; err != nil {
		return nil, err
	}

	var lessons []lessonModel.LessonModel
	if err := tx.Where("lesson_course_id = ?", courseID).Find(&lessons).Error; err != nil {
		return nil, err
	}
	for _, l := range lessons {
		p := model.ProgressModel{
			ProgressEnrollmentID: enr.EnrollmentID,
			ProgressUserID:       userID,
			ProgressCourseID:     courseID,
			ProgressLessonID:     l.LessonID,
		}
		if err := tx.Create(&p).Error; err != nil {
			return nil, err
		}
	}
	return &enr, nil
}

// CompleteLesson menandai progress satu lesson non-quiz sebagai selesai.
// Monotonic: baris yang sudah completed tidak disentuh.
func (s *EnrollmentService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*model.ProgressModel, error) {
	var lesson lessonModel.LessonModel
	if err := s.DB.WithContext(ctx).First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return nil, err
	}
	if lesson.LessonType == lessonModel.LessonTypeQuiz {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Lesson quiz diselesaikan lewat submit quiz, bukan endpoint ini")
	}

	var enr model.EnrollmentModel
	if err := s.DB.WithContext(ctx).
		First(&enr, "enrollment_user_id = ? AND enrollment_course_id = ?", userID, lesson.LessonCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Anda belum terdaftar pada course ini")
		}
		return nil, err
	}

	var prog model.ProgressModel
	err := s.DB.WithContext(ctx).
		First(&prog, "progress_enrollment_id = ? AND progress_lesson_id = ?", enr.EnrollmentID, lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// lesson ditambahkan setelah enroll → buat barisnya sekarang
		prog = model.ProgressModel{
			ProgressEnrollmentID: enr.EnrollmentID,
			ProgressUserID:       userID,
			ProgressCourseID:     lesson.LessonCourseID,
			ProgressLessonID:     lessonID,
		}
		if err := s.DB.WithContext(ctx).Create(&prog).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if prog.ProgressIsCompleted {
		return &prog, nil
	}

	now := time.Now()
	prog.ProgressIsCompleted = true
	prog.ProgressCompletedAt = &now
	if err := s.DB.WithContext(ctx).Save(&prog).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

// FinishEnrollment menutup enrollment bila seluruh lesson sudah completed.
func (s *EnrollmentService) FinishEnrollment(ctx context.Context, userID, enrollmentID uuid.UUID) (*model.EnrollmentModel, error) {
	var enr model.EnrollmentModel
	if err := s.DB.WithContext(ctx).
		First(&enr, "enrollment_id = ? AND enrollment_user_id = ?", enrollmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return nil, err
	}
	if enr.EnrollmentFinishedAt != nil {
		return &enr, nil
	}

	var remaining int64
	if err := s.DB.WithContext(ctx).Model(&model.ProgressModel{}).
		Where("progress_enrollment_id = ? AND progress_is_completed = FALSE", enr.EnrollmentID).
		Count(&remaining).Error; err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Masih ada lesson yang belum diselesaikan")
	}

	now := time.Now()
	enr.EnrollmentFinishedAt = &now
	if err := s.DB.WithContext(ctx).Save(&enr).Error; err != nil {
		return nil, err
	}
	return &enr, nil
}

// CompletionPercent menghitung persentase lesson completed satu enrollment.
func (s *EnrollmentService) CompletionPercent(ctx context.Context, enrollmentID uuid.UUID) (int, error) {
	var total, done int64
	if err := s.DB.WithContext(ctx).Model(&model.ProgressModel{}).
		Where("progress_enrollment_id = ?", enrollmentID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.DB.WithContext(ctx).Model(&model.ProgressModel{}).
		Where("progress_enrollment_id = ? AND progress_is_completed = TRUE", enrollmentID).
		Count(&done).Error; err != nil {
		return 0, err
	}
	return int(done * 100 / total), nil
}
