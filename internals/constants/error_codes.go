package constants

// Stable error tokens returned as the response message. Calling UIs branch on
// these, so they must never be reworded.
const (
	ErrUnauthorized           = "unauthorized"
	ErrForbidden              = "forbidden"
	ErrTenantMismatch         = "tenant_mismatch"
	ErrSessionNotFound        = "session_not_found"
	ErrSessionWrongTenant     = "session_wrong_tenant"
	ErrClassNotFound          = "class_not_found"
	ErrNoActiveMembership     = "no_active_membership"
	ErrDropInNotAllowed       = "drop_in_not_allowed_for_class"
	ErrAlreadyBooked          = "already_booked"
	ErrSessionFull            = "session_full"
	ErrOutsideCheckinWindow   = "outside_checkin_window"
	ErrCancelDeadlinePassed   = "cancel_deadline_passed"
	ErrInvalidJSON            = "invalid_json"
	ErrMissingFields          = "missing_fields"
	ErrBookingNotFound        = "booking_not_found"
	ErrMemberNotFound         = "member_not_found"
	ErrPlanNotFound           = "plan_not_found"
	ErrMembershipNotFound     = "membership_not_found"
	ErrNoSessionCredit        = "no_session_credit"
	ErrBookingNotCancellable  = "booking_not_cancellable"
	ErrSessionHasBookings     = "session_has_bookings"
	ErrInvalidStatus          = "invalid_status"
	ErrStudioNotFound         = "studio_not_found"
	ErrScheduleNotFound       = "schedule_not_found"
	ErrInternal               = "internal_error"
)
