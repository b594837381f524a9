package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/memberships/memberships/model"
	planModel "github.com/nvourlidas/CtGym-sub002/internals/features/memberships/plans/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

/* ================== Controller ================== */

type MembershipController struct {
	DB *gorm.DB
}

func NewMembershipController(db *gorm.DB) *MembershipController {
	return &MembershipController{DB: db}
}

var validateMembership = validator.New()

/* ================== CREATE (admin assigns a plan) ================== */

// POST /memberships
func (h *MembershipController) CreateMembership(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateMembership.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err1 := uuid.Parse(req.MembershipUserID)
	planID, err2 := uuid.Parse(req.MembershipPlanID)
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	startsAt := time.Now()
	if req.MembershipStartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.MembershipStartsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		startsAt = t
	}

	var membership model.MembershipModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var plan planModel.MembershipPlanModel
		if err := tx.Where("membership_plan_id = ? AND membership_plan_studio_id = ?", planID, studioID).
			First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, constants.ErrPlanNotFound)
			}
			return err
		}

		membership = model.MembershipModel{
			MembershipStudioID:  studioID,
			MembershipUserID:    userID,
			MembershipPlanID:    plan.MembershipPlanID,
			MembershipStatus:    model.MembershipStatusActive,
			MembershipStartsAt:  startsAt,
			MembershipEndsAt:    startsAt.AddDate(0, 0, plan.MembershipPlanDurationDays),
			MembershipPlanName:  plan.MembershipPlanName,
			MembershipPlanPrice: plan.MembershipPlanPrice,
		}
		// Seed the credit counter for session-metered plans; from here on only
		// the ledger may touch it.
		if plan.IsCreditBased() {
			credits := 0
			if plan.MembershipPlanSessionCredits != nil {
				credits = *plan.MembershipPlanSessionCredits
			}
			membership.MembershipRemainingSessions = &credits
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "membership created", dto.ToMembershipDTO(membership))
}

/* ================== STATUS ================== */

// PATCH /memberships/:id/status
func (h *MembershipController) UpdateMembershipStatus(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateMembershipStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateMembership.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.MembershipModel
	if err := h.DB.Where("membership_id = ? AND membership_studio_id = ?", membershipID, studioID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrMembershipNotFound)
		}
		return err
	}

	if err := h.DB.Model(&m).
		UpdateColumn("membership_status", req.MembershipStatus).Error; err != nil {
		return err
	}
	m.MembershipStatus = req.MembershipStatus
	return helper.Success(c, "membership updated", dto.ToMembershipDTO(m))
}

/* ================== LISTS ================== */

// GET /memberships?user_id= (admin)
func (h *MembershipController) ListMemberships(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.MembershipModel{}).
		Where("membership_studio_id = ?", studioID)
	if rawUser := c.Query("user_id"); rawUser != "" {
		userID, err := uuid.Parse(rawUser)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		base = base.Where("membership_user_id = ?", userID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.MembershipModel
	if err := base.
		Order("membership_starts_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}

	return helper.SuccessWithPagination(c, "memberships",
		dto.ToMembershipDTOs(items), helper.BuildPagination(paging, total, len(items)))
}

// GET /memberships/me
func (h *MembershipController) ListMyMemberships(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var items []model.MembershipModel
	if err := h.DB.
		Where("membership_studio_id = ? AND membership_user_id = ?", studioID, userID).
		Order("membership_starts_at DESC").
		Find(&items).Error; err != nil {
		return err
	}
	return helper.Success(c, "memberships", dto.ToMembershipDTOs(items))
}
