package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	classModel "github.com/nvourlidas/CtGym-sub002/internals/features/classes/classes/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/schedules/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/classes/schedules/model"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

// Recurring schedule rules are stored here; a separate expansion job turns them
// into class_sessions rows.
type ClassScheduleController struct {
	DB *gorm.DB
}

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{DB: db}
}

var validateSchedule = validator.New()

// POST /class-schedules
func (h *ClassScheduleController) CreateSchedule(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateSchedule.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	classID, err := uuid.Parse(req.ClassScheduleClassID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
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

	weekdays, err := json.Marshal(req.ClassScheduleWeekdays)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	schedule := model.ClassScheduleModel{
		ClassScheduleStudioID:    studioID,
		ClassScheduleClassID:     classID,
		ClassScheduleWeekdays:    datatypes.JSON(weekdays),
		ClassScheduleStartTime:   req.ClassScheduleStartTime,
		ClassScheduleDurationMin: req.ClassScheduleDurationMin,
		ClassScheduleCapacity:    req.ClassScheduleCapacity,
		ClassScheduleActive:      true,
	}
	if req.ClassScheduleValidFrom != nil {
		t, err := time.Parse(time.RFC3339, *req.ClassScheduleValidFrom)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		schedule.ClassScheduleValidFrom = &t
	}
	if req.ClassScheduleValidUntil != nil {
		t, err := time.Parse(time.RFC3339, *req.ClassScheduleValidUntil)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		schedule.ClassScheduleValidUntil = &t
	}

	if err := h.DB.Create(&schedule).Error; err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "schedule created", dto.ToClassScheduleDTO(schedule))
}

// GET /class-schedules?class_id=
func (h *ClassScheduleController) ListSchedules(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	base := h.DB.Model(&model.ClassScheduleModel{}).
		Where("class_schedule_studio_id = ?", studioID)
	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		base = base.Where("class_schedule_class_id = ?", classID)
	}

	var items []model.ClassScheduleModel
	if err := base.
		Order("class_schedule_created_at ASC").
		Find(&items).Error; err != nil {
		return err
	}
	return helper.Success(c, "schedules", dto.ToClassScheduleDTOs(items))
}

// PUT /class-schedules/:id
func (h *ClassScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateSchedule.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var schedule model.ClassScheduleModel
	if err := h.DB.Where("class_schedule_id = ? AND class_schedule_studio_id = ?", scheduleID, studioID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, constants.ErrScheduleNotFound)
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.ClassScheduleWeekdays != nil {
		weekdays, err := json.Marshal(req.ClassScheduleWeekdays)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		updates["class_schedule_weekdays"] = datatypes.JSON(weekdays)
	}
	if req.ClassScheduleStartTime != nil {
		updates["class_schedule_start_time"] = *req.ClassScheduleStartTime
	}
	if req.ClassScheduleDurationMin != nil {
		updates["class_schedule_duration_min"] = *req.ClassScheduleDurationMin
	}
	if req.ClassScheduleCapacity != nil {
		updates["class_schedule_capacity"] = *req.ClassScheduleCapacity
	}
	if req.ClassScheduleActive != nil {
		updates["class_schedule_active"] = *req.ClassScheduleActive
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&schedule).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.DB.Where("class_schedule_id = ?", scheduleID).First(&schedule).Error; err != nil {
		return err
	}
	return helper.Success(c, "schedule updated", dto.ToClassScheduleDTO(schedule))
}

// DELETE /class-schedules/:id (soft)
func (h *ClassScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	res := h.DB.Where("class_schedule_id = ? AND class_schedule_studio_id = ?", scheduleID, studioID).
		Delete(&model.ClassScheduleModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, constants.ErrScheduleNotFound)
	}
	return helper.Success(c, "schedule deleted", nil)
}
