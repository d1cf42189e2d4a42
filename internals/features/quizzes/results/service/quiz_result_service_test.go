package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	"hairnerds_backend/internals/features/quizzes/results/dto"
	"hairnerds_backend/internals/features/quizzes/results/model"
)

// Skema dibuat manual: tag default:gen_random_uuid() milik PostgreSQL
// tidak bisa dimigrasi otomatis ke SQLite.
var testDDL = []string{
	`CREATE TABLE quizzes (
		quiz_id TEXT PRIMARY KEY,
		quiz_lesson_id TEXT,
		quiz_section_id TEXT NOT NULL,
		quiz_course_id TEXT NOT NULL,
		quiz_title TEXT NOT NULL,
		quiz_instruction TEXT,
		quiz_duration_seconds INTEGER NOT NULL DEFAULT 0,
		quiz_total_marks INTEGER NOT NULL DEFAULT 0,
		quiz_pass_marks INTEGER NOT NULL DEFAULT 0,
		quiz_max_retakes INTEGER NOT NULL DEFAULT 0,
		quiz_created_at DATETIME,
		quiz_updated_at DATETIME,
		quiz_deleted_at DATETIME
	)`,
	`CREATE TABLE questions (
		question_id TEXT PRIMARY KEY,
		question_quiz_id TEXT NOT NULL,
		question_type TEXT NOT NULL,
		question_text TEXT NOT NULL,
		question_score INTEGER NOT NULL DEFAULT 0,
		question_created_at DATETIME,
		question_updated_at DATETIME,
		question_deleted_at DATETIME
	)`,
	`CREATE TABLE answer_banks (
		answer_bank_id TEXT PRIMARY KEY,
		answer_bank_question_id TEXT NOT NULL,
		answer_bank_answer TEXT NOT NULL,
		answer_bank_is_true BOOLEAN NOT NULL DEFAULT FALSE,
		answer_bank_created_at DATETIME,
		answer_bank_updated_at DATETIME,
		answer_bank_deleted_at DATETIME
	)`,
	`CREATE TABLE quiz_results (
		quiz_result_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		quiz_result_user_id TEXT NOT NULL,
		quiz_result_quiz_id TEXT NOT NULL,
		quiz_result_lesson_id TEXT,
		quiz_result_enrollment_id TEXT NOT NULL,
		quiz_result_answered INTEGER NOT NULL DEFAULT 0,
		quiz_result_correct_answers INTEGER NOT NULL DEFAULT 0,
		quiz_result_total_obtained_marks INTEGER NOT NULL DEFAULT 0,
		quiz_result_is_submitted BOOLEAN NOT NULL DEFAULT FALSE,
		quiz_result_answers TEXT,
		quiz_result_started_at DATETIME NOT NULL,
		quiz_result_finished_at DATETIME,
		quiz_result_created_at DATETIME,
		quiz_result_updated_at DATETIME,
		quiz_result_deleted_at DATETIME
	)`,
	`CREATE UNIQUE INDEX idx_quiz_result_active
		ON quiz_results (quiz_result_user_id, quiz_result_quiz_id)
		WHERE quiz_result_is_submitted = FALSE AND quiz_result_deleted_at IS NULL`,
	`CREATE TABLE enrollments (
		enrollment_id TEXT PRIMARY KEY,
		enrollment_user_id TEXT NOT NULL,
		enrollment_course_id TEXT NOT NULL,
		enrollment_quiz_attempts INTEGER NOT NULL DEFAULT 0,
		enrollment_finished_at DATETIME,
		enrollment_created_at DATETIME,
		enrollment_updated_at DATETIME,
		enrollment_deleted_at DATETIME
	)`,
	`CREATE TABLE progresses (
		progress_id TEXT PRIMARY KEY,
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
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, ddl := range testDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

// testFixture: satu quiz (1 soal single_choice skor 10) + enrollment user.
type testFixture struct {
	userID     uuid.UUID
	quiz       quizModel.QuizModel
	question   quizModel.QuestionModel
	rightBank  quizModel.AnswerBankModel
	wrongBank  quizModel.AnswerBankModel
	enrollment enrollModel.EnrollmentModel
}

func seedQuizFixture(t *testing.T, db *gorm.DB, durationSeconds, maxRetakes int) testFixture {
	t.Helper()
	userID := uuid.New()
	courseID := uuid.New()
	lessonID := uuid.New()

	qz := quizModel.QuizModel{
		QuizID:              uuid.New(),
		QuizLessonID:        &lessonID,
		QuizSectionID:       uuid.New(),
		QuizCourseID:        courseID,
		QuizTitle:           "Quiz Dasar Fade",
		QuizDurationSeconds: durationSeconds,
		QuizMaxRetakes:      maxRetakes,
	}
	require.NoError(t, db.Create(&qz).Error)

	q := quizModel.QuestionModel{
		QuestionID:     uuid.New(),
		QuestionQuizID: qz.QuizID,
		QuestionType:   quizModel.QuestionTypeSingleChoice,
		QuestionText:   "Alat utama untuk fade?",
		QuestionScore:  10,
	}
	require.NoError(t, db.Create(&q).Error)

	right := quizModel.AnswerBankModel{
		AnswerBankID:         uuid.New(),
		AnswerBankQuestionID: q.QuestionID,
		AnswerBankAnswer:     "Clipper",
		AnswerBankIsTrue:     true,
	}
	wrong := quizModel.AnswerBankModel{
		AnswerBankID:         uuid.New(),
		AnswerBankQuestionID: q.QuestionID,
		AnswerBankAnswer:     "Sisir",
		AnswerBankIsTrue:     false,
	}
	require.NoError(t, db.Create(&right).Error)
	require.NoError(t, db.Create(&wrong).Error)

	enr := enrollModel.EnrollmentModel{
		EnrollmentID:       uuid.New(),
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
	}
	require.NoError(t, db.Create(&enr).Error)

	return testFixture{userID: userID, quiz: qz, question: q, rightBank: right, wrongBank: wrong, enrollment: enr}
}

type fakeDelayer struct {
	resultID uuid.UUID
	at       time.Time
	calls    int
}

func (f *fakeDelayer) Schedule(resultID uuid.UUID, at time.Time) {
	f.resultID = resultID
	f.at = at
	f.calls++
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %v", err)
	return fe.Code
}

func TestStartQuizAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("membuat attempt baru dan menjadwalkan auto-submit", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 600, 0)
		svc := NewQuizResultService(db)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { return now }
		delay := &fakeDelayer{}
		svc.Delay = delay

		res, qz, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)
		assert.Equal(t, fx.quiz.QuizID, qz.QuizID)
		assert.False(t, res.QuizResultIsSubmitted)
		assert.Equal(t, now, res.QuizResultStartedAt.UTC())
		assert.Equal(t, fx.enrollment.EnrollmentID, res.QuizResultEnrollmentID)

		assert.Equal(t, 1, delay.calls)
		assert.Equal(t, res.QuizResultID, delay.resultID)
		assert.Equal(t, now.Add(600*time.Second), delay.at.UTC())
	})

	t.Run("belum enrolled ditolak 422", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 0, 0)
		svc := NewQuizResultService(db)

		_, _, err := svc.Start(ctx, uuid.New(), fx.quiz.QuizID)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	})

	t.Run("quiz tidak ada = 404", func(t *testing.T) {
		db := newTestDB(t)
		seedQuizFixture(t, db, 0, 0)
		svc := NewQuizResultService(db)

		_, _, err := svc.Start(ctx, uuid.New(), uuid.New())
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})

	t.Run("batas retake tercapai ditolak 422", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 0, 2)
		svc := NewQuizResultService(db)
		require.NoError(t, db.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_id = ?", fx.enrollment.EnrollmentID).
			UpdateColumn("enrollment_quiz_attempts", 2).Error)

		_, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	})

	t.Run("attempt aktif menghalangi start kedua", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 600, 0)
		svc := NewQuizResultService(db)

		_, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)
		_, _, err = svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	})

	t.Run("attempt aktif yang kedaluwarsa ditutup dulu lalu start baru", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 60, 0)
		svc := NewQuizResultService(db)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { return now }

		first, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)

		// lewati batas waktu lalu start lagi
		now = now.Add(2 * time.Minute)
		second, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)
		assert.NotEqual(t, first.QuizResultID, second.QuizResultID)

		var old model.QuizResultModel
		require.NoError(t, db.First(&old, "quiz_result_id = ?", first.QuizResultID).Error)
		assert.True(t, old.QuizResultIsSubmitted)
		assert.NotNil(t, old.QuizResultFinishedAt)
	})
}

func TestSubmitQuizAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("submit menilai jawaban dan menutup attempt", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 0, 0)
		svc := NewQuizResultService(db)

		res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)

		got, _, err := svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
			Answers: []dto.SubmittedAnswer{
				{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.rightBank.AnswerBankID}},
			},
		})
		require.NoError(t, err)
		assert.True(t, got.QuizResultIsSubmitted)
		assert.Equal(t, 1, got.QuizResultAnswered)
		assert.Equal(t, 1, got.QuizResultCorrectAnswers)
		assert.Equal(t, 10, got.QuizResultTotalObtainedMarks)
		assert.NotNil(t, got.QuizResultFinishedAt)

		var enr enrollModel.EnrollmentModel
		require.NoError(t, db.First(&enr, "enrollment_id = ?", fx.enrollment.EnrollmentID).Error)
		assert.Equal(t, 1, enr.EnrollmentQuizAttempts)
	})

	t.Run("submit kedua ditolak dan hasil tidak berubah", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 0, 0)
		svc := NewQuizResultService(db)

		res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)
		_, _, err = svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
			Answers: []dto.SubmittedAnswer{
				{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.rightBank.AnswerBankID}},
			},
		})
		require.NoError(t, err)

		// coba timpa dengan jawaban salah
		got, _, err := svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
			Answers: []dto.SubmittedAnswer{
				{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.wrongBank.AnswerBankID}},
			},
		})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		assert.Equal(t, 10, got.QuizResultTotalObtainedMarks)

		var enr enrollModel.EnrollmentModel
		require.NoError(t, db.First(&enr, "enrollment_id = ?", fx.enrollment.EnrollmentID).Error)
		assert.Equal(t, 1, enr.EnrollmentQuizAttempts, "attempt counter tidak boleh naik dua kali")
	})

	t.Run("submit setelah waktu habis dipaksa auto-submit, jawaban client dibuang", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 60, 0)
		svc := NewQuizResultService(db)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { return now }

		res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)

		now = now.Add(5 * time.Minute)
		got, _, err := svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
			Answers: []dto.SubmittedAnswer{
				{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.rightBank.AnswerBankID}},
			},
		})
		assert.ErrorIs(t, err, ErrExpiredForceSubmitted)
		assert.True(t, got.QuizResultIsSubmitted)
		assert.Equal(t, 0, got.QuizResultTotalObtainedMarks)
		assert.Equal(t, 0, got.QuizResultAnswered)
	})

	t.Run("result milik user lain = 404", func(t *testing.T) {
		db := newTestDB(t)
		fx := seedQuizFixture(t, db, 0, 0)
		svc := NewQuizResultService(db)

		res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
		require.NoError(t, err)

		_, _, err = svc.Submit(ctx, uuid.New(), res.QuizResultID, dto.SubmitQuizRequest{})
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})
}

func TestAutoSubmitIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fx := seedQuizFixture(t, db, 60, 0)
	svc := NewQuizResultService(db)

	res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
	require.NoError(t, err)
	_, _, err = svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
		Answers: []dto.SubmittedAnswer{
			{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.rightBank.AnswerBankID}},
		},
	})
	require.NoError(t, err)

	// job telat tidak boleh merusak hasil submit manual
	got, err := svc.AutoSubmit(ctx, res.QuizResultID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.QuizResultTotalObtainedMarks)

	var enr enrollModel.EnrollmentModel
	require.NoError(t, db.First(&enr, "enrollment_id = ?", fx.enrollment.EnrollmentID).Error)
	assert.Equal(t, 1, enr.EnrollmentQuizAttempts)
}

func TestSubmitCompletesLessonProgressOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fx := seedQuizFixture(t, db, 0, 0)
	svc := NewQuizResultService(db)

	prevScore := 7
	prevAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	done := enrollModel.ProgressModel{
		ProgressID:           uuid.New(),
		ProgressEnrollmentID: fx.enrollment.EnrollmentID,
		ProgressUserID:       fx.userID,
		ProgressCourseID:     fx.quiz.QuizCourseID,
		ProgressLessonID:     *fx.quiz.QuizLessonID,
		ProgressIsCompleted:  true,
		ProgressScore:        &prevScore,
		ProgressCompletedAt:  &prevAt,
	}
	require.NoError(t, db.Create(&done).Error)

	res, _, err := svc.Start(ctx, fx.userID, fx.quiz.QuizID)
	require.NoError(t, err)
	_, _, err = svc.Submit(ctx, fx.userID, res.QuizResultID, dto.SubmitQuizRequest{
		Answers: []dto.SubmittedAnswer{
			{QuestionID: fx.question.QuestionID, AnswerBankIDs: []uuid.UUID{fx.rightBank.AnswerBankID}},
		},
	})
	require.NoError(t, err)

	// progress yang sudah completed tidak ditimpa retake
	var p enrollModel.ProgressModel
	require.NoError(t, db.First(&p, "progress_id = ?", done.ProgressID).Error)
	require.NotNil(t, p.ProgressScore)
	assert.Equal(t, 7, *p.ProgressScore)
}
