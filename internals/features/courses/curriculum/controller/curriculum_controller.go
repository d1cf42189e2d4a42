package controller

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	courseService "hairnerds_backend/internals/features/courses/courses/service"
	currDTO "hairnerds_backend/internals/features/courses/curriculum/dto"
	currService "hairnerds_backend/internals/features/courses/curriculum/service"
	lessonDTO "hairnerds_backend/internals/features/courses/lessons/dto"
	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	sectionModel "hairnerds_backend/internals/features/courses/sections/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	helper "hairnerds_backend/internals/helpers"
	"hairnerds_backend/internals/helpers/storage"
)

type CurriculumController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCurriculumController(db *gorm.DB) *CurriculumController {
	return &CurriculumController{DB: db, Validator: validator.New()}
}

/* =========================================================
   PUT /api/courses/:id/curriculum
   Sinkronisasi seluruh pohon kurikulum dalam satu transaksi.
========================================================= */

func (ctrl *CurriculumController) SyncCurriculum(c *fiber.Ctx) error {
	course, fail := ctrl.loadOwnedCourse(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req currDTO.SyncCurriculumRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var blobs currService.BlobStore
	if svc, err := storage.Default(); err == nil {
		blobs = svc
	} else {
		blobs = noopBlobStore{}
	}

	svc := currService.NewCurriculumService(ctrl.DB, blobs)
	if err := svc.Sync(c.Context(), course.CourseID, req); err != nil {
		return helper.FromFiberError(c, err)
	}

	return ctrl.respondTree(c, *course, true)
}

/* =========================================================
   GET /api/courses/:id/curriculum
========================================================= */

func (ctrl *CurriculumController) GetCurriculum(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	actorID, _ := helper.GetUserIDFromToken(c)
	role := helper.GetRoleFromToken(c)
	if !courseService.CanViewCourse(role, actorID, course) {
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}

	// kunci jawaban hanya utk pemilik/admin
	withAnswers := courseService.CanModifyCourse(role, actorID, course)
	return ctrl.respondTree(c, course, withAnswers)
}

/* =========================================================
   Tree response
========================================================= */

type curriculumQuizNode struct {
	QuizID          uuid.UUID            `json:"quiz_id"`
	Title           string               `json:"title"`
	Instruction     string               `json:"instruction"`
	DurationSeconds int                  `json:"duration_seconds"`
	TotalMarks      int                  `json:"total_marks"`
	PassMarks       int                  `json:"pass_marks"`
	MaxRetakes      int                  `json:"max_retakes"`
	Questions       []curriculumQuestion `json:"questions,omitempty"`
}

type curriculumQuestion struct {
	QuestionID uuid.UUID          `json:"question_id"`
	Type       string             `json:"type"`
	Text       string             `json:"text"`
	Score      int                `json:"score"`
	Answers    []curriculumAnswer `json:"answers,omitempty"`
}

type curriculumAnswer struct {
	AnswerBankID uuid.UUID `json:"answer_bank_id"`
	Answer       string    `json:"answer"`
	IsTrue       *bool     `json:"is_true,omitempty"` // hanya utk pemilik/admin
}

type curriculumLessonNode struct {
	lessonDTO.LessonDTO
	Quiz *curriculumQuizNode `json:"quiz,omitempty"`
}

type curriculumSectionNode struct {
	SectionID uuid.UUID              `json:"section_id"`
	Title     string                 `json:"title"`
	Sequence  int                    `json:"sequence"`
	Lessons   []curriculumLessonNode `json:"lessons"`
}

func (ctrl *CurriculumController) respondTree(c *fiber.Ctx, course courseModel.CourseModel, withAnswers bool) error {
	var sections []sectionModel.SectionModel
	if err := ctrl.DB.
		Where("section_course_id = ?", course.CourseID).
		Order("section_sequence ASC").
		Find(&sections).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var lessons []lessonModel.LessonModel
	if err := ctrl.DB.
		Where("lesson_course_id = ?", course.CourseID).
		Order("lesson_sequence ASC").
		Find(&lessons).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var attachments []lessonModel.AttachmentModel
	lessonIDs := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.LessonID)
	}
	if len(lessonIDs) > 0 {
		if err := ctrl.DB.
			Where("attachment_lesson_id IN ?", lessonIDs).
			Order("attachment_created_at ASC").
			Find(&attachments).Error; err != nil {
			return helper.InternalError(c, err)
		}
	}
	attachByLesson := map[uuid.UUID][]lessonModel.AttachmentModel{}
	for _, a := range attachments {
		attachByLesson[a.AttachmentLessonID] = append(attachByLesson[a.AttachmentLessonID], a)
	}

	var quizzes []quizModel.QuizModel
	if err := ctrl.DB.
		Where("quiz_course_id = ?", course.CourseID).
		Find(&quizzes).Error; err != nil {
		return helper.InternalError(c, err)
	}
	quizByLesson := map[uuid.UUID]quizModel.QuizModel{}
	quizIDs := make([]uuid.UUID, 0, len(quizzes))
	for _, q := range quizzes {
		if q.QuizLessonID != nil {
			quizByLesson[*q.QuizLessonID] = q
		}
		quizIDs = append(quizIDs, q.QuizID)
	}

	var questions []quizModel.QuestionModel
	var answers []quizModel.AnswerBankModel
	if len(quizIDs) > 0 {
		if err := ctrl.DB.
			Where("question_quiz_id IN ?", quizIDs).
			Order("question_created_at ASC").
			Find(&questions).Error; err != nil {
			return helper.InternalError(c, err)
		}
		questionIDs := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			questionIDs = append(questionIDs, q.QuestionID)
		}
		if len(questionIDs) > 0 {
			if err := ctrl.DB.
				Where("answer_bank_question_id IN ?", questionIDs).
				Order("answer_bank_created_at ASC").
				Find(&answers).Error; err != nil {
				return helper.InternalError(c, err)
			}
		}
	}
	questionsByQuiz := map[uuid.UUID][]quizModel.QuestionModel{}
	for _, q := range questions {
		questionsByQuiz[q.QuestionQuizID] = append(questionsByQuiz[q.QuestionQuizID], q)
	}
	answersByQuestion := map[uuid.UUID][]quizModel.AnswerBankModel{}
	for _, a := range answers {
		answersByQuestion[a.AnswerBankQuestionID] = append(answersByQuestion[a.AnswerBankQuestionID], a)
	}

	lessonsBySection := map[uuid.UUID][]lessonModel.LessonModel{}
	for _, l := range lessons {
		lessonsBySection[l.LessonSectionID] = append(lessonsBySection[l.LessonSectionID], l)
	}

	tree := make([]curriculumSectionNode, 0, len(sections))
	for _, sec := range sections {
		node := curriculumSectionNode{
			SectionID: sec.SectionID,
			Title:     sec.SectionTitle,
			Sequence:  sec.SectionSequence,
			Lessons:   []curriculumLessonNode{},
		}
		for _, l := range lessonsBySection[sec.SectionID] {
			ln := curriculumLessonNode{LessonDTO: lessonDTO.ToLessonDTO(l)}
			ln.Attachments = lessonDTO.ToAttachmentDTOs(attachByLesson[l.LessonID])

			if q, ok := quizByLesson[l.LessonID]; ok {
				qn := curriculumQuizNode{
					QuizID:          q.QuizID,
					Title:           q.QuizTitle,
					Instruction:     q.QuizInstruction,
					DurationSeconds: q.QuizDurationSeconds,
					TotalMarks:      q.QuizTotalMarks,
					PassMarks:       q.QuizPassMarks,
					MaxRetakes:      q.QuizMaxRetakes,
				}
				for _, qu := range questionsByQuiz[q.QuizID] {
					qq := curriculumQuestion{
						QuestionID: qu.QuestionID,
						Type:       qu.QuestionType,
						Text:       qu.QuestionText,
						Score:      qu.QuestionScore,
					}
					for _, a := range answersByQuestion[qu.QuestionID] {
						ans := curriculumAnswer{
							AnswerBankID: a.AnswerBankID,
							Answer:       a.AnswerBankAnswer,
						}
						if withAnswers {
							v := a.AnswerBankIsTrue
							ans.IsTrue = &v
						}
						qq.Answers = append(qq.Answers, ans)
					}
					qn.Questions = append(qn.Questions, qq)
				}
				ln.Quiz = &qn
			}
			node.Lessons = append(node.Lessons, ln)
		}
		tree = append(tree, node)
	}

	return helper.Success(c, "Kurikulum course", fiber.Map{
		"course_id": course.CourseID,
		"sections":  tree,
	})
}

/* ========================== shared ========================== */

func (ctrl *CurriculumController) loadOwnedCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, err
	}

	role := helper.GetRoleFromToken(c)
	if !courseService.CanModifyCourse(role, userID, course) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bukan course milik Anda")
	}
	return &course, nil
}

// fallback kalau OSS tidak dikonfigurasi: semua URL dianggap eksternal
type noopBlobStore struct{}

func (noopBlobStore) IsOwnURL(string) bool                            { return false }
func (noopBlobStore) DeleteByPublicURL(context.Context, string) error { return nil }
