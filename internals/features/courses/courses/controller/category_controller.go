package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/features/courses/courses/dto"
	"hairnerds_backend/internals/features/courses/courses/model"
	helper "hairnerds_backend/internals/helpers"
)

type CategoryController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db, Validator: validator.New()}
}

// GET /api/categories
func (ctrl *CategoryController) GetCategories(c *fiber.Ctx) error {
	var cats []model.CategoryModel
	if err := ctrl.DB.Order("category_name ASC").Find(&cats).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]dto.CategoryDTO, 0, len(cats))
	for _, m := range cats {
		items = append(items, dto.ToCategoryDTO(m))
	}
	return helper.Success(c, "Daftar kategori", items)
}

// POST /api/admin/categories
func (ctrl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(req.Name, 110), "categories", "category_slug")
	if err != nil {
		return helper.InternalError(c, err)
	}

	cat := model.CategoryModel{
		CategoryName: req.Name,
		CategorySlug: slug,
	}
	if err := ctrl.DB.Create(&cat).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kategori dibuat", dto.ToCategoryDTO(cat))
}

// PUT /api/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kategori tidak valid")
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var cat model.CategoryModel
	if err := ctrl.DB.First(&cat, "category_id = ?", catID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	if req.Name != cat.CategoryName {
		slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(req.Name, 110), "categories", "category_slug")
		if err != nil {
			return helper.InternalError(c, err)
		}
		cat.CategorySlug = slug
	}
	cat.CategoryName = req.Name

	if err := ctrl.DB.Save(&cat).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Kategori diperbarui", dto.ToCategoryDTO(cat))
}

// DELETE /api/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kategori tidak valid")
	}

	res := ctrl.DB.Delete(&model.CategoryModel{}, "category_id = ?", catID)
	if res.Error != nil {
		return helper.InternalError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	return helper.Success(c, "Kategori dihapus", nil)
}
