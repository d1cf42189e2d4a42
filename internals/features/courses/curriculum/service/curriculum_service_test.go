package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	currDTO "hairnerds_backend/internals/features/courses/curriculum/dto"
	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	sectionModel "hairnerds_backend/internals/features/courses/sections/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
)

// Skema dibuat manual: tag default:gen_random_uuid() milik PostgreSQL
// tidak bisa dimigrasi otomatis ke SQLite. Default ID harus format UUID
// ber-dash supaya cocok dengan FK yang ditulis GORM (uuid.String()).
var curriculumDDL = []string{
	`CREATE TABLE sections (
		section_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		section_course_id TEXT NOT NULL,
		section_title TEXT NOT NULL,
		section_sequence INTEGER NOT NULL DEFAULT 0,
		section_created_at DATETIME,
		section_updated_at DATETIME,
		section_deleted_at DATETIME
	)`,
	`CREATE TABLE lessons (
		lesson_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
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
	`CREATE TABLE attachments (
		attachment_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		attachment_lesson_id TEXT NOT NULL,
		attachment_title TEXT NOT NULL,
		attachment_type TEXT NOT NULL,
		attachment_url TEXT NOT NULL,
		attachment_is_external BOOLEAN NOT NULL DEFAULT FALSE,
		attachment_created_at DATETIME,
		attachment_updated_at DATETIME,
		attachment_deleted_at DATETIME
	)`,
	`CREATE TABLE quizzes (
		quiz_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
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
		question_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		question_quiz_id TEXT NOT NULL,
		question_type TEXT NOT NULL,
		question_text TEXT NOT NULL,
		question_score INTEGER NOT NULL DEFAULT 0,
		question_created_at DATETIME,
		question_updated_at DATETIME,
		question_deleted_at DATETIME
	)`,
	`CREATE TABLE answer_banks (
		answer_bank_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		answer_bank_question_id TEXT NOT NULL,
		answer_bank_answer TEXT NOT NULL,
		answer_bank_is_true BOOLEAN NOT NULL DEFAULT FALSE,
		answer_bank_created_at DATETIME,
		answer_bank_updated_at DATETIME,
		answer_bank_deleted_at DATETIME
	)`,
}

func newCurriculumTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, ddl := range curriculumDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

// fakeBlobStore menganggap semua URL berawalan ownPrefix sebagai milik bucket.
type fakeBlobStore struct {
	ownPrefix string
	deleted   []string
}

func (f *fakeBlobStore) IsOwnURL(publicURL string) bool {
	return strings.HasPrefix(publicURL, f.ownPrefix)
}

func (f *fakeBlobStore) DeleteByPublicURL(_ context.Context, publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return nil
}

const ownPrefix = "https://cdn.hairnerds.test/"

func sectionsPtr(s []currDTO.CurriculumSectionInput) *[]currDTO.CurriculumSectionInput {
	return &s
}

func seedSection(t *testing.T, db *gorm.DB, courseID uuid.UUID, title string, seq int) sectionModel.SectionModel {
	t.Helper()
	sec := sectionModel.SectionModel{
		SectionID:       uuid.New(),
		SectionCourseID: courseID,
		SectionTitle:    title,
		SectionSequence: seq,
	}
	require.NoError(t, db.Create(&sec).Error)
	return sec
}

func seedLesson(t *testing.T, db *gorm.DB, courseID, sectionID uuid.UUID, title, lType string) lessonModel.LessonModel {
	t.Helper()
	les := lessonModel.LessonModel{
		LessonID:        uuid.New(),
		LessonSectionID: sectionID,
		LessonCourseID:  courseID,
		LessonTitle:     title,
		LessonType:      lType,
	}
	require.NoError(t, db.Create(&les).Error)
	return les
}

func TestSyncNilSectionsIsNoOp(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()
	seedSection(t, db, courseID, "Pengenalan", 0)

	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{}))

	var count int64
	require.NoError(t, db.Model(&sectionModel.SectionModel{}).
		Where("section_course_id = ?", courseID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, blobs.deleted)
}

func TestSyncEmptySectionsDeletesEverything(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()

	sec := seedSection(t, db, courseID, "Pengenalan", 0)
	les := seedLesson(t, db, courseID, sec.SectionID, "Sejarah barbering", lessonModel.LessonTypeText)

	ownURL := ownPrefix + "lesson-attachments/materi.pdf"
	extURL := "https://youtube.com/watch?v=abc"
	require.NoError(t, db.Create(&lessonModel.AttachmentModel{
		AttachmentID:       uuid.New(),
		AttachmentLessonID: les.LessonID,
		AttachmentTitle:    "Materi PDF",
		AttachmentType:     "document",
		AttachmentURL:      ownURL,
	}).Error)
	require.NoError(t, db.Create(&lessonModel.AttachmentModel{
		AttachmentID:         uuid.New(),
		AttachmentLessonID:   les.LessonID,
		AttachmentTitle:      "Video referensi",
		AttachmentType:       "youtube",
		AttachmentURL:        extURL,
		AttachmentIsExternal: true,
	}).Error)

	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{}),
	}))

	var secCount, lesCount, attCount int64
	db.Model(&sectionModel.SectionModel{}).Where("section_course_id = ?", courseID).Count(&secCount)
	db.Model(&lessonModel.LessonModel{}).Where("lesson_course_id = ?", courseID).Count(&lesCount)
	db.Model(&lessonModel.AttachmentModel{}).Where("attachment_lesson_id = ?", les.LessonID).Count(&attCount)
	assert.Zero(t, secCount)
	assert.Zero(t, lesCount)
	assert.Zero(t, attCount)

	// hanya blob milik bucket yang dibuang; URL eksternal dibiarkan
	assert.Equal(t, []string{ownURL}, blobs.deleted)
}

func TestSyncUpdateCreateAndPrune(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()

	keep := seedSection(t, db, courseID, "Lama", 0)
	drop := seedSection(t, db, courseID, "Terbuang", 1)

	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{
			{SectionID: &keep.SectionID, SectionTitle: "Diganti Judulnya", SectionSequence: 1},
			{SectionTitle: "Baru", SectionSequence: 0},
		}),
	}))

	var sections []sectionModel.SectionModel
	require.NoError(t, db.Where("section_course_id = ?", courseID).
		Order("section_sequence ASC").Find(&sections).Error)
	require.Len(t, sections, 2)
	assert.Equal(t, "Baru", sections[0].SectionTitle)
	assert.Equal(t, "Diganti Judulnya", sections[1].SectionTitle)
	assert.Equal(t, keep.SectionID, sections[1].SectionID)

	var gone int64
	db.Model(&sectionModel.SectionModel{}).Where("section_id = ?", drop.SectionID).Count(&gone)
	assert.Zero(t, gone)
}

func TestSyncUnknownSectionIDRollsBackEverything(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()
	sec := seedSection(t, db, courseID, "Pengenalan", 0)

	bogus := uuid.New()
	err := svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{
			{SectionTitle: "Section baru yang ikut batal", SectionSequence: 0},
			{SectionID: &bogus, SectionTitle: "Tidak ada", SectionSequence: 1},
		}),
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)

	// rollback total: section baru tidak tertinggal, section lama utuh
	var sections []sectionModel.SectionModel
	require.NoError(t, db.Where("section_course_id = ?", courseID).Find(&sections).Error)
	require.Len(t, sections, 1)
	assert.Equal(t, sec.SectionID, sections[0].SectionID)
	assert.Empty(t, blobs.deleted)
}

func TestSyncReplacedAttachmentURLCollectsOldBlob(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()

	sec := seedSection(t, db, courseID, "Teknik Dasar", 0)
	les := seedLesson(t, db, courseID, sec.SectionID, "Teknik gunting", lessonModel.LessonTypeText)

	oldURL := ownPrefix + "lesson-attachments/v1.pdf"
	att := lessonModel.AttachmentModel{
		AttachmentID:       uuid.New(),
		AttachmentLessonID: les.LessonID,
		AttachmentTitle:    "Handout",
		AttachmentType:     "document",
		AttachmentURL:      oldURL,
	}
	require.NoError(t, db.Create(&att).Error)

	newURL := ownPrefix + "lesson-attachments/v2.pdf"
	atts := []currDTO.CurriculumAttachmentInput{
		{AttachmentID: &att.AttachmentID, AttachmentTitle: "Handout", AttachmentType: "document", AttachmentURL: newURL},
	}
	lessons := []currDTO.CurriculumLessonInput{
		{LessonID: &les.LessonID, LessonTitle: les.LessonTitle, LessonType: les.LessonType, Attachments: &atts},
	}
	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{
			{SectionID: &sec.SectionID, SectionTitle: sec.SectionTitle, Lessons: &lessons},
		}),
	}))

	var saved lessonModel.AttachmentModel
	require.NoError(t, db.First(&saved, "attachment_id = ?", att.AttachmentID).Error)
	assert.Equal(t, newURL, saved.AttachmentURL)
	assert.False(t, saved.AttachmentIsExternal)
	assert.Equal(t, []string{oldURL}, blobs.deleted)
}

func TestSyncLessonTypeChangeDropsQuiz(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()

	sec := seedSection(t, db, courseID, "Evaluasi", 0)
	les := seedLesson(t, db, courseID, sec.SectionID, "Kuis modul 1", lessonModel.LessonTypeQuiz)

	lid := les.LessonID
	qz := quizModel.QuizModel{
		QuizID:        uuid.New(),
		QuizLessonID:  &lid,
		QuizSectionID: sec.SectionID,
		QuizCourseID:  courseID,
		QuizTitle:     "Kuis modul 1",
	}
	require.NoError(t, db.Create(&qz).Error)
	q := quizModel.QuestionModel{
		QuestionID:     uuid.New(),
		QuestionQuizID: qz.QuizID,
		QuestionType:   quizModel.QuestionTypeSingleChoice,
		QuestionText:   "Soal lama",
		QuestionScore:  5,
	}
	require.NoError(t, db.Create(&q).Error)
	require.NoError(t, db.Create(&quizModel.AnswerBankModel{
		AnswerBankID:         uuid.New(),
		AnswerBankQuestionID: q.QuestionID,
		AnswerBankAnswer:     "Jawaban",
		AnswerBankIsTrue:     true,
	}).Error)

	// lesson berubah jadi text tanpa membawa quiz → quiz lama dibuang
	lessons := []currDTO.CurriculumLessonInput{
		{LessonID: &les.LessonID, LessonTitle: "Rangkuman modul 1", LessonType: lessonModel.LessonTypeText},
	}
	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{
			{SectionID: &sec.SectionID, SectionTitle: sec.SectionTitle, Lessons: &lessons},
		}),
	}))

	var quizCount, questionCount, bankCount int64
	db.Model(&quizModel.QuizModel{}).Where("quiz_lesson_id = ?", les.LessonID).Count(&quizCount)
	db.Model(&quizModel.QuestionModel{}).Where("question_quiz_id = ?", qz.QuizID).Count(&questionCount)
	db.Model(&quizModel.AnswerBankModel{}).Where("answer_bank_question_id = ?", q.QuestionID).Count(&bankCount)
	assert.Zero(t, quizCount)
	assert.Zero(t, questionCount)
	assert.Zero(t, bankCount)
}

func TestSyncCreatesQuizTree(t *testing.T) {
	db := newCurriculumTestDB(t)
	blobs := &fakeBlobStore{ownPrefix: ownPrefix}
	svc := NewCurriculumService(db, blobs)
	courseID := uuid.New()
	sec := seedSection(t, db, courseID, "Evaluasi", 0)

	answers := []currDTO.CurriculumAnswerInput{
		{AnswerBankAnswer: "Clipper", AnswerBankIsTrue: true},
		{AnswerBankAnswer: "Sisir"},
	}
	questions := []currDTO.CurriculumQuestionInput{
		{QuestionType: quizModel.QuestionTypeSingleChoice, QuestionText: "Alat utama?", QuestionScore: 10, Answers: &answers},
	}
	lessons := []currDTO.CurriculumLessonInput{
		{
			LessonTitle: "Kuis akhir",
			LessonType:  lessonModel.LessonTypeQuiz,
			Quiz: &currDTO.CurriculumQuizInput{
				QuizTitle:           "Kuis akhir",
				QuizDurationSeconds: 300,
				Questions:           &questions,
			},
		},
	}
	require.NoError(t, svc.Sync(context.Background(), courseID, currDTO.SyncCurriculumRequest{
		Sections: sectionsPtr([]currDTO.CurriculumSectionInput{
			{SectionID: &sec.SectionID, SectionTitle: sec.SectionTitle, Lessons: &lessons},
		}),
	}))

	var qz quizModel.QuizModel
	require.NoError(t, db.First(&qz, "quiz_course_id = ?", courseID).Error)
	assert.Equal(t, 300, qz.QuizDurationSeconds)

	var qCount, bCount int64
	db.Model(&quizModel.QuestionModel{}).Where("question_quiz_id = ?", qz.QuizID).Count(&qCount)
	require.NoError(t, db.Model(&quizModel.AnswerBankModel{}).
		Joins("JOIN questions ON questions.question_id = answer_banks.answer_bank_question_id").
		Where("questions.question_quiz_id = ?", qz.QuizID).Count(&bCount).Error)
	assert.Equal(t, int64(1), qCount)
	assert.Equal(t, int64(2), bCount)
}
