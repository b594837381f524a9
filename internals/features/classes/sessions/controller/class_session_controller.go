package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	classModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/sessions/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

type ClassSessionController struct {
	DB *gorm.DB
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{DB: db}
}

var validateSession = validator.New()

// POST /class-sessions
func (h *ClassSessionController) CreateSession(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateSession.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	classID, err := uuid.Parse(req.ClassSessionClassID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}
	startsAt, err := time.Parse(time.RFC3339, req.ClassSessionStartsAt)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}
	var endsAt *time.Time
	if req.ClassSessionEndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ClassSessionEndsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		endsAt = &t
	}

	var count int64
	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ? AND class_studio_id = ?", classID, studioID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, constants.ErrClassNotFound)
	}

	session := model.ClassSessionModel{
		ClassSessionStudioID: studioID,
		ClassSessionClassID:  classID,
		ClassSessionStartsAt: startsAt,
		ClassSessionEndsAt:   endsAt,
		ClassSessionCapacity: req.ClassSessionCapacity,
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "session created", dto.ToClassSessionDTO(session))
}

// GET /class-sessions?from=&to=&class_id=
func (h *ClassSessionController) ListSessions(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	base := h.DB.Model(&model.ClassSessionModel{}).
		Where("class_session_studio_id = ?", studioID)
	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		base = base.Where("class_session_class_id = ?", classID)
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		base = base.Where("class_session_starts_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		base = base.Where("class_session_starts_at <= ?", to)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.ClassSessionModel
	if err := base.
		Order("class_session_starts_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}
	return helper.SuccessWithPagination(c, "sessions",
		dto.ToClassSessionDTOs(items), helper.BuildPagination(paging, total, len(items)))
}

// GET /class-sessions/:id
func (h *ClassSessionController) GetSession(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var session model.ClassSessionModel
	if err := h.DB.Where("class_session_id = ? AND class_session_studio_id = ?", sessionID, studioID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
		}
		return err
	}
	return helper.Success(c, "session", dto.ToClassSessionDTO(session))
}

// PUT /class-sessions/:id
func (h *ClassSessionController) UpdateSession(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}

	var session model.ClassSessionModel
	if err := h.DB.Where("class_session_id = ? AND class_session_studio_id = ?", sessionID, studioID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.ClassSessionStartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ClassSessionStartsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		updates["class_session_starts_at"] = t
	}
	if req.ClassSessionEndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ClassSessionEndsAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		updates["class_session_ends_at"] = t
	}
	if req.ClassSessionCapacity != nil {
		updates["class_session_capacity"] = *req.ClassSessionCapacity
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&session).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.DB.Where("class_session_id = ?", sessionID).First(&session).Error; err != nil {
		return err
	}
	return helper.Success(c, "session updated", dto.ToClassSessionDTO(session))
}

// DELETE /class-sessions/:id — refused while live bookings reference it.
func (h *ClassSessionController) DeleteSession(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	return h.DB.Transaction(func(tx *gorm.DB) error {
		var liveCount int64
		if err := tx.Table("bookings").
			Where("booking_session_id = ? AND booking_status IN ?", sessionID, []string{"booked", "checked_in"}).
			Count(&liveCount).Error; err != nil {
			return err
		}
		if liveCount > 0 {
			return fiber.NewError(fiber.StatusConflict, constants.ErrSessionHasBookings)
		}

		res := tx.Where("class_session_id = ? AND class_session_studio_id = ?", sessionID, studioID).
			Delete(&model.ClassSessionModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrSessionNotFound)
		}
		return helper.Success(c, "session deleted", nil)
	})
}
