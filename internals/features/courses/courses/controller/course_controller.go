package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	"hairnerds_backend/internals/features/courses/courses/dto"
	"hairnerds_backend/internals/features/courses/courses/model"
	"hairnerds_backend/internals/features/courses/courses/service"
	reviewModel "hairnerds_backend/internals/features/reviews/model"
	helper "hairnerds_backend/internals/helpers"
	"hairnerds_backend/internals/helpers/storage"
)

type CourseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validator: validator.New()}
}

/* =========================================================
   POST /api/courses  (instructor/admin)
========================================================= */

func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(req.Title, 240), "courses", "course_slug")
	if err != nil {
		return helper.InternalError(c, err)
	}

	course := model.CourseModel{
		CourseInstructorID: userID,
		CourseCategoryID:   req.CategoryID,
		CourseTitle:        req.Title,
		CourseSlug:         slug,
		CourseDescription:  req.Description,
		CourseLevel:        model.CourseLevelBeginner,
		CourseStatus:       model.CourseStatusDraft,
	}
	if req.PriceIDR != nil {
		course.CoursePriceIDR = *req.PriceIDR
	}
	if req.Level != "" {
		course.CourseLevel = req.Level
	}

	if req.CategoryID != nil {
		var count int64
		if err := ctrl.DB.Model(&model.CategoryModel{}).
			Where("category_id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return helper.InternalError(c, err)
		}
		if count == 0 {
			return helper.Error(c, fiber.StatusUnprocessableEntity, "Kategori tidak ditemukan")
		}
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course berhasil dibuat", dto.ToCourseDTO(course))
}

/* =========================================================
   GET /api/courses  (katalog publik, hanya published)
========================================================= */

func (ctrl *CourseController) GetCourses(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 50)

	base := ctrl.DB.Model(&model.CourseModel{}).
		Where("course_status = ?", model.CourseStatusPublished)

	if q := c.Query("q"); q != "" {
		base = base.Where("course_title ILIKE ?", "%"+q+"%")
	}
	if cat := c.Query("category_id"); cat != "" {
		base = base.Where("course_category_id = ?", cat)
	}
	if level := c.Query("level"); level != "" {
		base = base.Where("course_level = ?", level)
	}
	if c.Query("free") == "true" {
		base = base.Where("course_price_idr = 0")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var courses []model.CourseModel
	if err := base.
		Order("course_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&courses).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := dto.ToCourseDTOs(courses)
	return helper.SuccessList(c, "Daftar course",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* =========================================================
   GET /api/courses/mine  (instructor: semua status)
========================================================= */

func (ctrl *CourseController) GetMyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	p := helper.ResolvePaging(c, 10, 50)

	base := ctrl.DB.Model(&model.CourseModel{}).
		Where("course_instructor_id = ?", userID)
	if status := c.Query("status"); status != "" {
		base = base.Where("course_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var courses []model.CourseModel
	if err := base.
		Order("course_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&courses).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := dto.ToCourseDTOs(courses)
	return helper.SuccessList(c, "Course saya",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* =========================================================
   GET /api/courses/:slug
========================================================= */

func (ctrl *CourseController) GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	actorID, _ := helper.GetUserIDFromToken(c)
	role := helper.GetRoleFromToken(c)
	if !service.CanViewCourse(role, actorID, course) {
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}

	out := dto.ToCourseDTO(course)

	// rata-rata rating diambil sekali di detail
	var avg *float64
	if err := ctrl.DB.Model(&reviewModel.ReviewModel{}).
		Where("review_course_id = ?", course.CourseID).
		Select("AVG(review_rating)").Scan(&avg).Error; err == nil {
		out.AverageRating = avg
	}

	if course.CourseCategoryID != nil {
		var cat model.CategoryModel
		if err := ctrl.DB.First(&cat, "category_id = ?", *course.CourseCategoryID).Error; err == nil {
			catDTO := dto.ToCategoryDTO(cat)
			out.Category = &catDTO
		}
	}

	return helper.Success(c, "Detail course", out)
}

/* =========================================================
   PUT /api/courses/:id
========================================================= */

func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	course, fail := ctrl.loadOwnedCourse(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Title != nil && *req.Title != course.CourseTitle {
		course.CourseTitle = *req.Title
		slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(*req.Title, 240), "courses", "course_slug")
		if err != nil {
			return helper.InternalError(c, err)
		}
		course.CourseSlug = slug
	}
	if req.Description != nil {
		course.CourseDescription = *req.Description
	}
	if req.CategoryID != nil {
		course.CourseCategoryID = req.CategoryID
	}
	if req.PriceIDR != nil {
		course.CoursePriceIDR = *req.PriceIDR
	}
	if req.Level != nil {
		course.CourseLevel = *req.Level
	}

	if err := ctrl.DB.Save(course).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Course diperbarui", dto.ToCourseDTO(*course))
}

/* =========================================================
   DELETE /api/courses/:id  (soft delete)
========================================================= */

func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	course, fail := ctrl.loadOwnedCourse(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	if err := ctrl.DB.Delete(course).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Course dihapus", nil)
}

/* =========================================================
   POST /api/courses/:id/thumbnail  (multipart upload → OSS)
========================================================= */

func (ctrl *CourseController) UploadThumbnail(c *fiber.Ctx) error {
	course, fail := ctrl.loadOwnedCourse(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File thumbnail wajib diisi")
	}

	svc, err := storage.Default()
	if err != nil {
		return helper.InternalError(c, err)
	}

	url, _, err := svc.UploadFromFormFileToDir(c.Context(), storage.DirCourseThumbnails, fh)
	if err != nil {
		log.Printf("[ERROR] upload thumbnail course %s gagal: %v", course.CourseID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal upload thumbnail")
	}

	old := course.CourseThumbnail
	course.CourseThumbnail = &url
	if err := ctrl.DB.Save(course).Error; err != nil {
		return helper.InternalError(c, err)
	}

	// hapus object lama best-effort, setelah DB sukses
	if old != nil && svc.IsOwnURL(*old) {
		if err := svc.DeleteByPublicURL(c.Context(), *old); err != nil {
			log.Printf("[WARN] gagal hapus thumbnail lama: %v", err)
		}
	}

	return helper.Success(c, "Thumbnail diperbarui", dto.ToCourseDTO(*course))
}

/* =========================================================
   Moderasi status
========================================================= */

// POST /api/courses/:id/submit — draft/rejected → pending
func (ctrl *CourseController) SubmitForReview(c *fiber.Ctx) error {
	course, fail := ctrl.loadOwnedCourse(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	if !service.CanSubmitForReview(*course) {
		return helper.Error(c, fiber.StatusUnprocessableEntity,
			"Course hanya bisa diajukan dari status draft atau rejected")
	}

	course.CourseStatus = model.CourseStatusPending
	if err := ctrl.DB.Save(course).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Course diajukan untuk review", dto.ToCourseDTO(*course))
}

// POST /api/admin/courses/:id/verify — pending → published
func (ctrl *CourseController) VerifyCourse(c *fiber.Ctx) error {
	return ctrl.moderate(c, model.CourseStatusPublished, "Course dipublikasikan")
}

// POST /api/admin/courses/:id/reject — pending → rejected
func (ctrl *CourseController) RejectCourse(c *fiber.Ctx) error {
	return ctrl.moderate(c, model.CourseStatusRejected, "Course ditolak")
}

func (ctrl *CourseController) moderate(c *fiber.Ctx, target, message string) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if course.CourseStatus != model.CourseStatusPending {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Course tidak dalam status pending")
	}

	course.CourseStatus = target
	if err := ctrl.DB.Save(&course).Error; err != nil {
		return helper.InternalError(c, err)
	}
	log.Printf("[INFO] course %s → %s", course.CourseSlug, target)
	return helper.Success(c, message, dto.ToCourseDTO(course))
}

/* =========================================================
   Shared loader: ambil course by :id + cek kepemilikan
========================================================= */

// loadOwnedCourse mengembalikan *fiber.Error tanpa menulis response —
// caller yang konversi via helper.FromFiberError.
func (ctrl *CourseController) loadOwnedCourse(c *fiber.Ctx) (*model.CourseModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, err
	}

	role := helper.GetRoleFromToken(c)
	if !service.CanModifyCourse(role, userID, course) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bukan course milik Anda")
	}
	return &course, nil
}
