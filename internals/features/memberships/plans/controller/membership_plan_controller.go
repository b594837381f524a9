package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

type MembershipPlanController struct {
	DB *gorm.DB
}

func NewMembershipPlanController(db *gorm.DB) *MembershipPlanController {
	return &MembershipPlanController{DB: db}
}

var validatePlan = validator.New()

// POST /membership-plans
func (h *MembershipPlanController) CreatePlan(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateMembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validatePlan.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	plan := model.MembershipPlanModel{
		MembershipPlanStudioID:       studioID,
		MembershipPlanName:           req.MembershipPlanName,
		MembershipPlanKind:           req.MembershipPlanKind,
		MembershipPlanDurationDays:   req.MembershipPlanDurationDays,
		MembershipPlanSessionCredits: req.MembershipPlanSessionCredits,
		MembershipPlanPrice:          req.MembershipPlanPrice,
	}
	if req.MembershipPlanCategoryID != nil {
		id, err := uuid.Parse(*req.MembershipPlanCategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		plan.MembershipPlanCategoryID = &id
	}

	if err := h.DB.Create(&plan).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "plan created", dto.ToMembershipPlanDTO(plan))
}

// GET /membership-plans
func (h *MembershipPlanController) ListPlans(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var items []model.MembershipPlanModel
	if err := h.DB.
		Where("membership_plan_studio_id = ?", studioID).
		Order("membership_plan_created_at ASC").
		Find(&items).Error; err != nil {
		return err
	}
	return helper.Success(c, "plans", dto.ToMembershipPlanDTOs(items))
}

// GET /membership-plans/:id
func (h *MembershipPlanController) GetPlan(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var plan model.MembershipPlanModel
	if err := h.DB.Where("membership_plan_id = ? AND membership_plan_studio_id = ?", planID, studioID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrPlanNotFound)
		}
		return err
	}
	return helper.Success(c, "plan", dto.ToMembershipPlanDTO(plan))
}

// PUT /membership-plans/:id
// Plan kind is immutable once created; memberships snapshot the rest.
func (h *MembershipPlanController) UpdatePlan(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateMembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validatePlan.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var plan model.MembershipPlanModel
	if err := h.DB.Where("membership_plan_id = ? AND membership_plan_studio_id = ?", planID, studioID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrPlanNotFound)
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.MembershipPlanName != nil {
		updates["membership_plan_name"] = *req.MembershipPlanName
	}
	if req.MembershipPlanDurationDays != nil {
		updates["membership_plan_duration_days"] = *req.MembershipPlanDurationDays
	}
	if req.MembershipPlanSessionCredits != nil {
		updates["membership_plan_session_credits"] = *req.MembershipPlanSessionCredits
	}
	if req.MembershipPlanPrice != nil {
		updates["membership_plan_price"] = *req.MembershipPlanPrice
	}
	if req.MembershipPlanCategoryID != nil {
		id, err := uuid.Parse(*req.MembershipPlanCategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		updates["membership_plan_category_id"] = id
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&plan).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.DB.Where("membership_plan_id = ?", planID).First(&plan).Error; err != nil {
		return err
	}
	return helper.Success(c, "plan updated", dto.ToMembershipPlanDTO(plan))
}

// DELETE /membership-plans/:id (soft)
func (h *MembershipPlanController) DeletePlan(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	res := h.DB.Where("membership_plan_id = ? AND membership_plan_studio_id = ?", planID, studioID).
		Delete(&model.MembershipPlanModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, constants.ErrPlanNotFound)
	}
	return helper.Success(c, "plan deleted", nil)
}
