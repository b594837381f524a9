package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nvourlidas/CtGym-sub002/internals/constants"
)

/* =========================================================
   Claim accessors — the auth middleware stores user_id,
   studio_id and role into fiber locals; everything below
   reads them back with tenant-safety checks.
========================================================= */

// GetStudioIDFromToken returns the caller's studio (tenant) id.
func GetStudioIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("studio_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	return id, nil
}

// GetUserIDFromToken returns the caller's user id.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	return id, nil
}

// IsAdmin reports whether the caller carries the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == constants.RoleAdmin
}

// RequireAdmin aborts with forbidden unless the caller is an admin.
func RequireAdmin(c *fiber.Ctx) error {
	if !IsAdmin(c) {
		return fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
	}
	return nil
}

// ResolveTargetUserID picks the booking target: admins may act on behalf of any
// member via an explicit id; members always act as themselves.
func ResolveTargetUserID(c *fiber.Ctx, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil && *explicit != uuid.Nil {
		if !IsAdmin(c) {
			callerID, err := GetUserIDFromToken(c)
			if err != nil {
				return uuid.Nil, err
			}
			if callerID != *explicit {
				return uuid.Nil, fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
			}
		}
		return *explicit, nil
	}
	return GetUserIDFromToken(c)
}
