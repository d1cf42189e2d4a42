package service

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	currDTO "hairnerds_backend/internals/features/courses/curriculum/dto"
	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	sectionModel "hairnerds_backend/internals/features/courses/sections/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
)

// BlobStore: subset storage yang dibutuhkan kurikulum.
// URL eksternal tidak pernah dihapus dari storage (IsOwnURL=false → no-op).
type BlobStore interface {
	IsOwnURL(publicURL string) bool
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type CurriculumService struct {
	DB    *gorm.DB
	Blobs BlobStore
}

func NewCurriculumService(db *gorm.DB, blobs BlobStore) *CurriculumService {
	return &CurriculumService{DB: db, Blobs: blobs}
}

// Sync merekonsiliasi pohon kurikulum satu course dalam SATU transaksi.
// Error apa pun → rollback total, tidak ada pohon parsial.
// Blob attachment yang tergusur baru dihapus dari OSS SETELAH commit
// (best-effort; orphan blob lebih murah daripada dangling row).
func (s *CurriculumService) Sync(ctx context.Context, courseID uuid.UUID, req currDTO.SyncCurriculumRequest) error {
	if req.Sections == nil {
		return nil // key tidak dikirim → tidak ada perubahan
	}

	var orphanBlobs []string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		urls, err := s.syncSections(tx, courseID, *req.Sections)
		if err != nil {
			return err
		}
		orphanBlobs = urls
		return nil
	})
	if err != nil {
		return err
	}

	for _, u := range orphanBlobs {
		if delErr := s.Blobs.DeleteByPublicURL(ctx, u); delErr != nil {
			log.Printf("[WARN] gagal hapus blob attachment %s: %v", u, delErr)
		}
	}
	return nil
}

/* =======================================================================
   Level 1: sections
======================================================================= */

func (s *CurriculumService) syncSections(tx *gorm.DB, courseID uuid.UUID, inputs []currDTO.CurriculumSectionInput) ([]string, error) {
	var existing []sectionModel.SectionModel
	if err := tx.Where("section_course_id = ?", courseID).Find(&existing).Error; err != nil {
		return nil, err
	}
	existingByID := make(map[uuid.UUID]*sectionModel.SectionModel, len(existing))
	for i := range existing {
		existingByID[existing[i].SectionID] = &existing[i]
	}

	var orphanBlobs []string
	submitted := make(map[uuid.UUID]struct{}, len(inputs))

	for _, in := range inputs {
		var sec *sectionModel.SectionModel
		if in.SectionID != nil {
			found, ok := existingByID[*in.SectionID]
			if !ok {
				return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
					"section_id tidak ditemukan pada course ini: "+in.SectionID.String())
			}
			found.SectionTitle = in.SectionTitle
			found.SectionSequence = in.SectionSequence
			if err := tx.Save(found).Error; err != nil {
				return nil, err
			}
			sec = found
			submitted[sec.SectionID] = struct{}{}
		} else {
			created := sectionModel.SectionModel{
				SectionCourseID: courseID,
				SectionTitle:    in.SectionTitle,
				SectionSequence: in.SectionSequence,
			}
			if err := tx.Create(&created).Error; err != nil {
				return nil, err
			}
			sec = &created
		}

		if in.Lessons != nil {
			urls, err := s.syncLessons(tx, courseID, sec.SectionID, *in.Lessons)
			if err != nil {
				return nil, err
			}
			orphanBlobs = append(orphanBlobs, urls...)
		}
	}

	// Hapus section lama yang tidak ikut dikirim (beserta subtree-nya)
	for i := range existing {
		if _, ok := submitted[existing[i].SectionID]; ok {
			continue
		}
		urls, err := s.deleteSectionCascade(tx, &existing[i])
		if err != nil {
			return nil, err
		}
		orphanBlobs = append(orphanBlobs, urls...)
	}

	return orphanBlobs, nil
}

/* =======================================================================
   Level 2: lessons
======================================================================= */

func (s *CurriculumService) syncLessons(tx *gorm.DB, courseID, sectionID uuid.UUID, inputs []currDTO.CurriculumLessonInput) ([]string, error) {
	var existing []lessonModel.LessonModel
	if err := tx.Where("lesson_section_id = ?", sectionID).Find(&existing).Error; err != nil {
		return nil, err
	}
	existingByID := make(map[uuid.UUID]*lessonModel.LessonModel, len(existing))
	for i := range existing {
		existingByID[existing[i].LessonID] = &existing[i]
	}

	var orphanBlobs []string
	submitted := make(map[uuid.UUID]struct{}, len(inputs))

	for _, in := range inputs {
		var les *lessonModel.LessonModel
		if in.LessonID != nil {
			found, ok := existingByID[*in.LessonID]
			if !ok {
				return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
					"lesson_id tidak ditemukan pada section ini: "+in.LessonID.String())
			}
			found.LessonTitle = in.LessonTitle
			found.LessonType = in.LessonType
			found.LessonContent = in.LessonContent
			found.LessonSequence = in.LessonSequence
			found.LessonIsFree = in.LessonIsFree
			if err := tx.Save(found).Error; err != nil {
				return nil, err
			}
			les = found
			submitted[les.LessonID] = struct{}{}
		} else {
			created := lessonModel.LessonModel{
				LessonSectionID: sectionID,
				LessonCourseID:  courseID,
				LessonTitle:     in.LessonTitle,
				LessonType:      in.LessonType,
				LessonContent:   in.LessonContent,
				LessonSequence:  in.LessonSequence,
				LessonIsFree:    in.LessonIsFree,
			}
			if err := tx.Create(&created).Error; err != nil {
				return nil, err
			}
			les = &created
		}

		if in.Attachments != nil {
			urls, err := s.syncAttachments(tx, les.LessonID, *in.Attachments)
			if err != nil {
				return nil, err
			}
			orphanBlobs = append(orphanBlobs, urls...)
		}

		if in.Quiz != nil {
			if err := s.upsertQuiz(tx, courseID, sectionID, les.LessonID, *in.Quiz); err != nil {
				return nil, err
			}
		} else if les.LessonType != lessonModel.LessonTypeQuiz {
			// tipe lesson sudah bukan quiz → quiz lama (kalau ada) ikut dibuang
			if err := s.deleteQuizByLesson(tx, les.LessonID); err != nil {
				return nil, err
			}
		}
	}

	for i := range existing {
		if _, ok := submitted[existing[i].LessonID]; ok {
			continue
		}
		urls, err := s.deleteLessonCascade(tx, &existing[i])
		if err != nil {
			return nil, err
		}
		orphanBlobs = append(orphanBlobs, urls...)
	}

	return orphanBlobs, nil
}

/* =======================================================================
   Level 3a: attachments
======================================================================= */

func (s *CurriculumService) syncAttachments(tx *gorm.DB, lessonID uuid.UUID, inputs []currDTO.CurriculumAttachmentInput) ([]string, error) {
	var existing []lessonModel.AttachmentModel
	if err := tx.Where("attachment_lesson_id = ?", lessonID).Find(&existing).Error; err != nil {
		return nil, err
	}
	existingByID := make(map[uuid.UUID]*lessonModel.AttachmentModel, len(existing))
	for i := range existing {
		existingByID[existing[i].AttachmentID] = &existing[i]
	}

	var orphanBlobs []string
	submitted := make(map[uuid.UUID]struct{}, len(inputs))

	for _, in := range inputs {
		if in.AttachmentID != nil {
			found, ok := existingByID[*in.AttachmentID]
			if !ok {
				return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
					"attachment_id tidak ditemukan pada lesson ini: "+in.AttachmentID.String())
			}
			// URL berganti: blob lama milik kita jadi orphan
			if found.AttachmentURL != in.AttachmentURL && !found.AttachmentIsExternal {
				orphanBlobs = append(orphanBlobs, found.AttachmentURL)
			}
			found.AttachmentTitle = in.AttachmentTitle
			found.AttachmentType = in.AttachmentType
			found.AttachmentURL = in.AttachmentURL
			found.AttachmentIsExternal = !s.Blobs.IsOwnURL(in.AttachmentURL)
			if err := tx.Save(found).Error; err != nil {
				return nil, err
			}
			submitted[found.AttachmentID] = struct{}{}
		} else {
			created := lessonModel.AttachmentModel{
				AttachmentLessonID:   lessonID,
				AttachmentTitle:      in.AttachmentTitle,
				AttachmentType:       in.AttachmentType,
				AttachmentURL:        in.AttachmentURL,
				AttachmentIsExternal: !s.Blobs.IsOwnURL(in.AttachmentURL),
			}
			if err := tx.Create(&created).Error; err != nil {
				return nil, err
			}
		}
	}

	for i := range existing {
		if _, ok := submitted[existing[i].AttachmentID]; ok {
			continue
		}
		if !existing[i].AttachmentIsExternal {
			orphanBlobs = append(orphanBlobs, existing[i].AttachmentURL)
		}
		if err := tx.Delete(&existing[i]).Error; err != nil {
			return nil, err
		}
	}

	return orphanBlobs, nil
}

/* =======================================================================
   Level 3b: quiz → questions → answer banks
======================================================================= */

func (s *CurriculumService) upsertQuiz(tx *gorm.DB, courseID, sectionID, lessonID uuid.UUID, in currDTO.CurriculumQuizInput) error {
	var qz quizModel.QuizModel
	err := tx.Where("quiz_lesson_id = ?", lessonID).First(&qz).Error
	switch {
	case err == nil:
		if in.QuizID != nil && *in.QuizID != qz.QuizID {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"quiz_id tidak cocok dengan quiz milik lesson ini")
		}
		qz.QuizTitle = in.QuizTitle
		qz.QuizInstruction = in.QuizInstruction
		qz.QuizDurationSeconds = in.QuizDurationSeconds
		qz.QuizTotalMarks = in.QuizTotalMarks
		qz.QuizPassMarks = in.QuizPassMarks
		qz.QuizMaxRetakes = in.QuizMaxRetakes
		if err := tx.Save(&qz).Error; err != nil {
			return err
		}
	case err == gorm.ErrRecordNotFound:
		lid := lessonID
		qz = quizModel.QuizModel{
			QuizLessonID:        &lid,
			QuizSectionID:       sectionID,
			QuizCourseID:        courseID,
			QuizTitle:           in.QuizTitle,
			QuizInstruction:     in.QuizInstruction,
			QuizDurationSeconds: in.QuizDurationSeconds,
			QuizTotalMarks:      in.QuizTotalMarks,
			QuizPassMarks:       in.QuizPassMarks,
			QuizMaxRetakes:      in.QuizMaxRetakes,
		}
		if err := tx.Create(&qz).Error; err != nil {
			return err
		}
	default:
		return err
	}

	if in.Questions != nil {
		return s.syncQuestions(tx, qz.QuizID, *in.Questions)
	}
	return nil
}

func (s *CurriculumService) syncQuestions(tx *gorm.DB, quizID uuid.UUID, inputs []currDTO.CurriculumQuestionInput) error {
	var existing []quizModel.QuestionModel
	if err := tx.Where("question_quiz_id = ?", quizID).Find(&existing).Error; err != nil {
		return err
	}
	existingByID := make(map[uuid.UUID]*quizModel.QuestionModel, len(existing))
	for i := range existing {
		existingByID[existing[i].QuestionID] = &existing[i]
	}

	submitted := make(map[uuid.UUID]struct{}, len(inputs))

	for _, in := range inputs {
		var q *quizModel.QuestionModel
		if in.QuestionID != nil {
			found, ok := existingByID[*in.QuestionID]
			if !ok {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"question_id tidak ditemukan pada quiz ini: "+in.QuestionID.String())
			}
			found.QuestionType = in.QuestionType
			found.QuestionText = in.QuestionText
			found.QuestionScore = in.QuestionScore
			if err := tx.Save(found).Error; err != nil {
				return err
			}
			q = found
			submitted[q.QuestionID] = struct{}{}
		} else {
			created := quizModel.QuestionModel{
				QuestionQuizID: quizID,
				QuestionType:   in.QuestionType,
				QuestionText:   in.QuestionText,
				QuestionScore:  in.QuestionScore,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			q = &created
		}

		if in.Answers != nil {
			if err := s.syncAnswers(tx, q.QuestionID, *in.Answers); err != nil {
				return err
			}
		}
	}

	for i := range existing {
		if _, ok := submitted[existing[i].QuestionID]; ok {
			continue
		}
		if err := s.deleteQuestionCascade(tx, existing[i].QuestionID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CurriculumService) syncAnswers(tx *gorm.DB, questionID uuid.UUID, inputs []currDTO.CurriculumAnswerInput) error {
	var existing []quizModel.AnswerBankModel
	if err := tx.Where("answer_bank_question_id = ?", questionID).Find(&existing).Error; err != nil {
		return err
	}
	existingByID := make(map[uuid.UUID]*quizModel.AnswerBankModel, len(existing))
	for i := range existing {
		existingByID[existing[i].AnswerBankID] = &existing[i]
	}

	submitted := make(map[uuid.UUID]struct{}, len(inputs))

	for _, in := range inputs {
		if in.AnswerBankID != nil {
			found, ok := existingByID[*in.AnswerBankID]
			if !ok {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"answer_bank_id tidak ditemukan pada question ini: "+in.AnswerBankID.String())
			}
			found.AnswerBankAnswer = in.AnswerBankAnswer
			found.AnswerBankIsTrue = in.AnswerBankIsTrue
			if err := tx.Save(found).Error; err != nil {
				return err
			}
			submitted[found.AnswerBankID] = struct{}{}
		} else {
			created := quizModel.AnswerBankModel{
				AnswerBankQuestionID: questionID,
				AnswerBankAnswer:     in.AnswerBankAnswer,
				AnswerBankIsTrue:     in.AnswerBankIsTrue,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		}
	}

	for i := range existing {
		if _, ok := submitted[existing[i].AnswerBankID]; ok {
			continue
		}
		if err := tx.Delete(&existing[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

/* =======================================================================
   Cascade deletes (soft delete, di dalam transaksi yang sama)
======================================================================= */

func (s *CurriculumService) deleteSectionCascade(tx *gorm.DB, sec *sectionModel.SectionModel) ([]string, error) {
	var lessons []lessonModel.LessonModel
	if err := tx.Where("lesson_section_id = ?", sec.SectionID).Find(&lessons).Error; err != nil {
		return nil, err
	}

	var orphanBlobs []string
	for i := range lessons {
		urls, err := s.deleteLessonCascade(tx, &lessons[i])
		if err != nil {
			return nil, err
		}
		orphanBlobs = append(orphanBlobs, urls...)
	}

	if err := tx.Delete(sec).Error; err != nil {
		return nil, err
	}
	return orphanBlobs, nil
}

func (s *CurriculumService) deleteLessonCascade(tx *gorm.DB, les *lessonModel.LessonModel) ([]string, error) {
	var atts []lessonModel.AttachmentModel
	if err := tx.Where("attachment_lesson_id = ?", les.LessonID).Find(&atts).Error; err != nil {
		return nil, err
	}

	var orphanBlobs []string
	for i := range atts {
		if !atts[i].AttachmentIsExternal {
			orphanBlobs = append(orphanBlobs, atts[i].AttachmentURL)
		}
		if err := tx.Delete(&atts[i]).Error; err != nil {
			return nil, err
		}
	}

	if err := s.deleteQuizByLesson(tx, les.LessonID); err != nil {
		return nil, err
	}

	if err := tx.Delete(les).Error; err != nil {
		return nil, err
	}
	return orphanBlobs, nil
}

func (s *CurriculumService) deleteQuizByLesson(tx *gorm.DB, lessonID uuid.UUID) error {
	var qz quizModel.QuizModel
	if err := tx.Where("quiz_lesson_id = ?", lessonID).First(&qz).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	var questions []quizModel.QuestionModel
	if err := tx.Where("question_quiz_id = ?", qz.QuizID).Find(&questions).Error; err != nil {
		return err
	}
	for i := range questions {
		if err := s.deleteQuestionCascade(tx, questions[i].QuestionID); err != nil {
			return err
		}
	}

	return tx.Delete(&qz).Error
}

func (s *CurriculumService) deleteQuestionCascade(tx *gorm.DB, questionID uuid.UUID) error {
	if err := tx.Where("answer_bank_question_id = ?", questionID).
		Delete(&quizModel.AnswerBankModel{}).Error; err != nil {
		return err
	}
	return tx.Delete(&quizModel.QuestionModel{}, "question_id = ?", questionID).Error
}
