package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validateClass = validator.New()

// POST /classes
func (h *ClassController) CreateClass(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	class := model.ClassModel{
		ClassStudioID:      studioID,
		ClassName:          req.ClassName,
		ClassDropInEnabled: req.ClassDropInEnabled,
		ClassDropInPrice:   req.ClassDropInPrice,
		ClassTags:          pq.StringArray(req.ClassTags),
	}
	if req.ClassCategoryID != nil {
		id, err := uuid.Parse(*req.ClassCategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		class.ClassCategoryID = &id
	}

	if err := h.DB.Create(&class).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "class created", dto.ToClassDTO(class))
}

// GET /classes
func (h *ClassController) ListClasses(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.ClassModel{}).Where("class_studio_id = ?", studioID)
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.ClassModel
	if err := base.
		Order("class_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}
	return helper.SuccessWithPagination(c, "classes",
		dto.ToClassDTOs(items), helper.BuildPagination(paging, total, len(items)))
}

// GET /classes/:id
func (h *ClassController) GetClass(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var class model.ClassModel
	if err := h.DB.Where("class_id = ? AND class_studio_id = ?", classID, studioID).
		First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
		}
		return err
	}
	return helper.Success(c, "class", dto.ToClassDTO(class))
}

// PUT /classes/:id
func (h *ClassController) UpdateClass(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class model.ClassModel
	if err := h.DB.Where("class_id = ? AND class_studio_id = ?", classID, studioID).
		First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.ClassName != nil {
		updates["class_name"] = *req.ClassName
	}
	if req.ClassCategoryID != nil {
		id, err := uuid.Parse(*req.ClassCategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		updates["class_category_id"] = id
	}
	if req.ClassDropInEnabled != nil {
		updates["class_drop_in_enabled"] = *req.ClassDropInEnabled
	}
	if req.ClassDropInPrice != nil {
		updates["class_drop_in_price"] = *req.ClassDropInPrice
	}
	if req.ClassTags != nil {
		updates["class_tags"] = pq.StringArray(req.ClassTags)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&class).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.DB.Where("class_id = ?", classID).First(&class).Error; err != nil {
		return err
	}
	return helper.Success(c, "class updated", dto.ToClassDTO(class))
}

// DELETE /classes/:id (soft)
func (h *ClassController) DeleteClass(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	res := h.DB.Where("class_id = ? AND class_studio_id = ?", classID, studioID).
		Delete(&model.ClassModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
	}
	return helper.Success(c, "class deleted", nil)
}
