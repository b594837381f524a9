package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/members/members/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/members/members/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

var validateMember = validator.New()

// POST /members
func (h *MemberController) CreateMember(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateMember.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := uuid.Parse(req.MemberUserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	member := model.MemberModel{
		MemberStudioID: studioID,
		MemberUserID:   userID,
		MemberFullName: req.MemberFullName,
		MemberEmail:    req.MemberEmail,
		MemberPhone:    req.MemberPhone,
		MemberActive:   true,
	}
	if err := h.DB.Create(&member).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "member created", dto.ToMemberDTO(member))
}

// GET /members?q=&page=&limit=
func (h *MemberController) ListMembers(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.MemberModel{}).Where("member_studio_id = ?", studioID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(member_full_name) LIKE ? OR LOWER(member_email) LIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.MemberModel
	if err := base.
		Order("member_full_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}
	return helper.SuccessWithPagination(c, "members",
		dto.ToMemberDTOs(items), helper.BuildPagination(paging, total, len(items)))
}

// GET /members/:id
func (h *MemberController) GetMember(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var member model.MemberModel
	if err := h.DB.Where("member_id = ? AND member_studio_id = ?", memberID, studioID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrMemberNotFound)
		}
		return err
	}
	return helper.Success(c, "member", dto.ToMemberDTO(member))
}

// PUT /members/:id
func (h *MemberController) UpdateMember(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateMember.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var member model.MemberModel
	if err := h.DB.Where("member_id = ? AND member_studio_id = ?", memberID, studioID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrMemberNotFound)
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.MemberFullName != nil {
		updates["member_full_name"] = *req.MemberFullName
	}
	if req.MemberEmail != nil {
		updates["member_email"] = *req.MemberEmail
	}
	if req.MemberPhone != nil {
		updates["member_phone"] = *req.MemberPhone
	}
	if req.MemberActive != nil {
		updates["member_active"] = *req.MemberActive
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&member).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.DB.Where("member_id = ?", memberID).First(&member).Error; err != nil {
		return err
	}
	return helper.Success(c, "member updated", dto.ToMemberDTO(member))
}

// DELETE /members/:id deactivates rather than removes; booking history stays
// attached to the user id.
func (h *MemberController) DeactivateMember(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	res := h.DB.Model(&model.MemberModel{}).
		Where("member_id = ? AND member_studio_id = ?", memberID, studioID).
		Update("member_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, constants.ErrMemberNotFound)
	}
	return helper.Success(c, "member deactivated", nil)
}
