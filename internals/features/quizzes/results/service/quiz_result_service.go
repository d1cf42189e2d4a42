package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	"hairnerds_backend/internals/features/quizzes/results/dto"
	"hairnerds_backend/internals/features/quizzes/results/model"
)

var (
	// ErrAlreadySubmitted: attempt sudah terminal; grading tidak boleh berubah lagi.
	ErrAlreadySubmitted = errors.New("quiz result already submitted")
	// ErrExpiredForceSubmitted: attempt kedaluwarsa saat submit; hasil auto-submit
	// dikembalikan apa adanya, jawaban dari client TIDAK diproses.
	ErrExpiredForceSubmitted = errors.New("quiz time expired, attempt auto-submitted")
)

// Delayer menjadwalkan auto-submit satu attempt pada waktu tertentu.
type Delayer interface {
	Schedule(resultID uuid.UUID, at time.Time)
}

type QuizResultService struct {
	DB    *gorm.DB
	Now   func() time.Time
	Delay Delayer // opsional; sweep cron tetap jadi jaring pengaman
}

func NewQuizResultService(db *gorm.DB) *QuizResultService {
	return &QuizResultService{DB: db, Now: time.Now}
}

/* =======================================================================
   Start attempt
======================================================================= */

// Start membuat attempt baru untuk (user, quiz).
// Guard: harus enrolled; max_retakes; satu attempt aktif per (user, quiz).
func (s *QuizResultService) Start(ctx context.Context, userID, quizID uuid.UUID) (*model.QuizResultModel, *quizModel.QuizModel, error) {
	var qz quizModel.QuizModel
	if err := s.DB.WithContext(ctx).First(&qz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return nil, nil, err
	}

	var enr enrollModel.EnrollmentModel
	if err := s.DB.WithContext(ctx).
		First(&enr, "enrollment_user_id = ? AND enrollment_course_id = ?", userID, qz.QuizCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Anda belum terdaftar pada course ini")
		}
		return nil, nil, err
	}

	if qz.QuizMaxRetakes > 0 && enr.EnrollmentQuizAttempts >= qz.QuizMaxRetakes {
		return nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Batas pengulangan quiz sudah tercapai")
	}

	// Attempt aktif yang sudah kedaluwarsa diselesaikan dulu (lazy detection)
	var active model.QuizResultModel
	err := s.DB.WithContext(ctx).
		First(&active, "quiz_result_user_id = ? AND quiz_result_quiz_id = ? AND quiz_result_is_submitted = FALSE", userID, quizID).Error
	switch {
	case err == nil:
		if active.IsExpired(qz.QuizDurationSeconds, s.Now()) {
			if _, aerr := s.AutoSubmit(ctx, active.QuizResultID); aerr != nil {
				return nil, nil, aerr
			}
		} else {
			return nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Masih ada attempt aktif untuk quiz ini")
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	res := model.QuizResultModel{
		QuizResultUserID:       userID,
		QuizResultQuizID:       quizID,
		QuizResultLessonID:     qz.QuizLessonID,
		QuizResultEnrollmentID: enr.EnrollmentID,
		QuizResultStartedAt:    s.Now(),
	}
	// Partial unique index (user, quiz) WHERE is_submitted = FALSE menutup
	// race pre-check di atas; duplicate → 422, bukan dua attempt aktif.
	if err := s.DB.WithContext(ctx).Create(&res).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Masih ada attempt aktif untuk quiz ini")
		}
		return nil, nil, err
	}

	if s.Delay != nil && qz.QuizDurationSeconds > 0 {
		s.Delay.Schedule(res.QuizResultID, res.ExpectedFinishAt(qz.QuizDurationSeconds))
	}

	return &res, &qz, nil
}

/* =======================================================================
   Submit (manual, oleh peserta)
======================================================================= */

// Submit menilai jawaban lalu menutup attempt.
// Pada attempt kedaluwarsa: auto-submit dipaksa, hasilnya dikembalikan
// bersama ErrExpiredForceSubmitted (jawaban client dibuang).
func (s *QuizResultService) Submit(ctx context.Context, userID, resultID uuid.UUID, req dto.SubmitQuizRequest) (*model.QuizResultModel, *quizModel.QuizModel, error) {
	var res model.QuizResultModel
	if err := s.DB.WithContext(ctx).
		First(&res, "quiz_result_id = ? AND quiz_result_user_id = ?", resultID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Quiz result tidak ditemukan")
		}
		return nil, nil, err
	}

	var qz quizModel.QuizModel
	if err := s.DB.WithContext(ctx).First(&qz, "quiz_id = ?", res.QuizResultQuizID).Error; err != nil {
		return nil, nil, err
	}

	if res.QuizResultIsSubmitted {
		return &res, &qz, ErrAlreadySubmitted
	}

	if res.IsExpired(qz.QuizDurationSeconds, s.Now()) {
		forced, err := s.AutoSubmit(ctx, res.QuizResultID)
		if err != nil {
			return nil, nil, err
		}
		return forced, &qz, ErrExpiredForceSubmitted
	}

	outcome, err := s.gradeAgainstBank(ctx, &qz, req.Answers)
	if err != nil {
		return nil, nil, err
	}

	payload, _ := json.Marshal(req.Answers)
	if err := s.finalize(ctx, &res, outcome, datatypes.JSON(payload)); err != nil {
		return nil, nil, err
	}
	return &res, &qz, nil
}

/* =======================================================================
   Auto-submit (job terjadwal / sweep / lazy)
======================================================================= */

// AutoSubmit menutup attempt tanpa jawaban client baru. No-op bila sudah
// terminal (last-write-wins; job telat tidak merusak hasil submit manual).
func (s *QuizResultService) AutoSubmit(ctx context.Context, resultID uuid.UUID) (*model.QuizResultModel, error) {
	var res model.QuizResultModel
	if err := s.DB.WithContext(ctx).First(&res, "quiz_result_id = ?", resultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz result tidak ditemukan")
		}
		return nil, err
	}
	if res.QuizResultIsSubmitted {
		return &res, nil
	}

	var qz quizModel.QuizModel
	if err := s.DB.WithContext(ctx).First(&qz, "quiz_id = ?", res.QuizResultQuizID).Error; err != nil {
		return nil, err
	}

	// Grade ulang payload jawaban tersimpan (kalau ada); tanpa payload → nol.
	var answers []dto.SubmittedAnswer
	if len(res.QuizResultAnswers) > 0 {
		if err := json.Unmarshal(res.QuizResultAnswers, &answers); err != nil {
			log.Printf("[WARN] payload jawaban quiz_result %s tidak bisa dibaca: %v", res.QuizResultID, err)
		}
	}
	outcome, err := s.gradeAgainstBank(ctx, &qz, answers)
	if err != nil {
		return nil, err
	}

	if err := s.finalize(ctx, &res, outcome, res.QuizResultAnswers); err != nil {
		return nil, err
	}
	return &res, nil
}

/* =======================================================================
   Internals
======================================================================= */

func (s *QuizResultService) gradeAgainstBank(ctx context.Context, qz *quizModel.QuizModel, answers []dto.SubmittedAnswer) (GradedOutcome, error) {
	var questions []quizModel.QuestionModel
	if err := s.DB.WithContext(ctx).
		Where("question_quiz_id = ?", qz.QuizID).Find(&questions).Error; err != nil {
		return GradedOutcome{}, err
	}

	banks := make(map[uuid.UUID][]quizModel.AnswerBankModel, len(questions))
	if len(questions) > 0 {
		ids := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			ids = append(ids, q.QuestionID)
		}
		var rows []quizModel.AnswerBankModel
		if err := s.DB.WithContext(ctx).
			Where("answer_bank_question_id IN ?", ids).Find(&rows).Error; err != nil {
			return GradedOutcome{}, err
		}
		for _, r := range rows {
			banks[r.AnswerBankQuestionID] = append(banks[r.AnswerBankQuestionID], r)
		}
	}

	return Grade(questions, banks, answers), nil
}

// finalize menutup attempt dalam satu transaksi:
// set hasil grading + is_submitted + finished_at, naikkan quiz_attempts
// enrollment, dan lengkapi Progress lesson (monotonic, first pass wins).
func (s *QuizResultService) finalize(ctx context.Context, res *model.QuizResultModel, outcome GradedOutcome, payload datatypes.JSON) error {
	now := s.Now()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res.QuizResultAnswered = outcome.Answered
		res.QuizResultCorrectAnswers = outcome.CorrectAnswers
		res.QuizResultTotalObtainedMarks = outcome.TotalObtainedMarks
		res.QuizResultIsSubmitted = true
		res.QuizResultFinishedAt = &now
		res.QuizResultAnswers = payload
		if err := tx.Save(res).Error; err != nil {
			return err
		}

		if err := tx.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_id = ?", res.QuizResultEnrollmentID).
			UpdateColumn("enrollment_quiz_attempts", gorm.Expr("enrollment_quiz_attempts + 1")).Error; err != nil {
			return err
		}

		if res.QuizResultLessonID != nil {
			score := outcome.TotalObtainedMarks
			// Hanya baris yang BELUM completed yang ditimpa — skor pertama menang.
			if err := tx.Model(&enrollModel.ProgressModel{}).
				Where("progress_enrollment_id = ? AND progress_lesson_id = ? AND progress_is_completed = FALSE",
					res.QuizResultEnrollmentID, *res.QuizResultLessonID).
				Updates(map[string]interface{}{
					"progress_is_completed": true,
					"progress_score":        score,
					"progress_completed_at": now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	type sqlStater interface{ SQLState() string }
	var st sqlStater
	if errors.As(err, &st) {
		return st.SQLState() == "23505"
	}
	return false
}
