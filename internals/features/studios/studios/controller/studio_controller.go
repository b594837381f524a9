package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
)

// Platform bootstrap surface. Tenants are created here; everything else in the
// service is scoped to the studio id carried by the token.
type StudioController struct {
	DB *gorm.DB
}

func NewStudioController(db *gorm.DB) *StudioController {
	return &StudioController{DB: db}
}

var validateStudio = validator.New()

// POST /studios
func (h *StudioController) CreateStudio(c *fiber.Ctx) error {
	var req dto.CreateStudioRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateStudio.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	studio := model.StudioModel{
		StudioName:     req.StudioName,
		StudioSlug:     req.StudioSlug,
		StudioTimezone: req.StudioTimezone,
	}
	if err := h.DB.Create(&studio).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "studio created", dto.ToStudioDTO(studio))
}

// GET /studios
func (h *StudioController) ListStudios(c *fiber.Ctx) error {
	var items []model.StudioModel
	if err := h.DB.Order("studio_name ASC").Find(&items).Error; err != nil {
		return err
	}
	return helper.Success(c, "studios", dto.ToStudioDTOs(items))
}

// GET /studios/:id
func (h *StudioController) GetStudio(c *fiber.Ctx) error {
	studioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var studio model.StudioModel
	if err := h.DB.Where("studio_id = ?", studioID).First(&studio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrStudioNotFound)
		}
		return err
	}
	return helper.Success(c, "studio", dto.ToStudioDTO(studio))
}
