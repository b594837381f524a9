package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/dto"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/model"
	"github.com/nvourlidas/CtGym-sub002/internals/features/bookings/bookings/service"
	helper "github.com/nvourlidas/CtGym-sub002/internals/helpers"
	helperAuth "github.com/nvourlidas/CtGym-sub002/internals/helpers/auth"
)

/* ================== Controller ================== */

type BookingController struct {
	DB        *gorm.DB
	Admission *service.AdmissionService
	Lifecycle *service.LifecycleService
	Checkins  *service.CheckinService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:        db,
		Admission: service.NewAdmissionService(),
		Lifecycle: service.NewLifecycleService(),
		Checkins:  service.NewCheckinService(),
	}
}

var validateBooking = validator.New()

/* ================== CREATE ================== */

// POST /bookings
func (h *BookingController) CreateBooking(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateBooking.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sessionID, err := uuid.Parse(req.BookingSessionID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var explicitUser *uuid.UUID
	if req.BookingUserID != nil {
		id, err := uuid.Parse(*req.BookingUserID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		explicitUser = &id
	}
	targetUserID, err := helperAuth.ResolveTargetUserID(c, explicitUser)
	if err != nil {
		return err
	}

	var requestedType *model.BookingType
	if req.BookingType != nil {
		bt, err := model.ParseBookingType(*req.BookingType)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidStatus)
		}
		requestedType = &bt
	}

	booking, err := h.Admission.Admit(h.DB, time.Now(), service.AdmitInput{
		StudioID:      studioID,
		SessionID:     sessionID,
		UserID:        targetUserID,
		RequestedType: requestedType,
		AsAdmin:       helperAuth.IsAdmin(c),
	})
	if err != nil {
		return err
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "booking created", dto.ToBookingDTO(*booking))
}

/* ================== CHECK-IN ================== */

// POST /checkins (admin)
func (h *BookingController) Checkin(c *fiber.Ctx) error {
	if err := helperAuth.RequireAdmin(c); err != nil {
		return err
	}
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateBooking.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sessionID, err1 := uuid.Parse(req.CheckinSessionID)
	userID, err2 := uuid.Parse(req.CheckinUserID)
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	booking, err := h.Checkins.Checkin(h.DB, time.Now(), studioID, sessionID, userID)
	if err != nil {
		return err
	}
	return helper.Success(c, "checked in", dto.ToBookingDTO(*booking))
}

/* ================== LIFECYCLE ================== */

// PATCH /bookings/:id — cancel / no_show / reassign
func (h *BookingController) UpdateBooking(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidJSON)
	}
	if err := validateBooking.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	asAdmin := helperAuth.IsAdmin(c)

	if req.TargetSessionID != nil {
		if !asAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
		}
		targetSessionID, err := uuid.Parse(*req.TargetSessionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
		}
		booking, err := h.Lifecycle.Reassign(h.DB, studioID, bookingID, targetSessionID)
		if err != nil {
			return err
		}
		return helper.Success(c, "booking reassigned", dto.ToBookingDTO(*booking))
	}

	if req.TargetStatus == nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}
	target, err := model.ParseBookingStatus(*req.TargetStatus)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidStatus)
	}

	switch target {
	case model.BookingStatusCancelled:
		callerID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		booking, err := h.Lifecycle.Cancel(h.DB, time.Now(), studioID, bookingID, callerID, asAdmin)
		if err != nil {
			return err
		}
		return helper.Success(c, "booking cancelled", dto.ToBookingDTO(*booking))
	case model.BookingStatusNoShow:
		if !asAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
		}
		booking, err := h.Lifecycle.MarkNoShow(h.DB, studioID, bookingID)
		if err != nil {
			return err
		}
		return helper.Success(c, "booking marked no-show", dto.ToBookingDTO(*booking))
	default:
		// booked / checked_in are never reachable through this endpoint;
		// admission and the check-in gate own those transitions.
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrInvalidStatus)
	}
}

// DELETE /bookings/:id (admin) — hard delete with credit restoration
func (h *BookingController) DeleteBooking(c *fiber.Ctx) error {
	if err := helperAuth.RequireAdmin(c); err != nil {
		return err
	}
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	booking, err := h.Lifecycle.Delete(h.DB, studioID, bookingID)
	if err != nil {
		return err
	}
	return helper.Success(c, "booking deleted", dto.ToBookingDTO(*booking))
}

/* ================== LISTS ================== */

// GET /bookings/me
func (h *BookingController) ListMyBookings(c *fiber.Ctx) error {
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	base := h.DB.Model(&model.BookingModel{}).
		Where("booking_studio_id = ? AND booking_user_id = ?", studioID, userID)
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.BookingModel
	if err := base.
		Order("booking_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}

	return helper.SuccessWithPagination(c, "bookings",
		dto.ToBookingDTOs(items), helper.BuildPagination(paging, total, len(items)))
}

// GET /class-sessions/:id/bookings (admin)
func (h *BookingController) ListSessionBookings(c *fiber.Ctx) error {
	if err := helperAuth.RequireAdmin(c); err != nil {
		return err
	}
	studioID, err := helperAuth.GetStudioIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMissingFields)
	}

	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	base := h.DB.Model(&model.BookingModel{}).
		Where("booking_studio_id = ? AND booking_session_id = ?", studioID, sessionID)
	if err := base.Count(&total).Error; err != nil {
		return err
	}

	var items []model.BookingModel
	if err := base.
		Order("booking_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return err
	}

	return helper.SuccessWithPagination(c, "session bookings",
		dto.ToBookingDTOs(items), helper.BuildPagination(paging, total, len(items)))
}
