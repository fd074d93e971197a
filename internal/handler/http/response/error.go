package response

import (
	"errors"
	"net/http"

	"github.com/dokterku/klinik-backend-go/internal/domain/attendance"
	"github.com/dokterku/klinik-backend-go/internal/domain/auth"
	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/domain/user"
	"github.com/dokterku/klinik-backend-go/internal/domain/worklocation"
	"github.com/dokterku/klinik-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")

	// Attendance state machine rejections. All carry a stable code so
	// mobile clients can branch without parsing messages.
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequestWithCode(w, "ALREADY_CHECKED_IN", "You have already checked in today", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequestWithCode(w, "NOT_CHECKED_IN", "You have not checked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequestWithCode(w, "ALREADY_CHECKED_OUT", "You have already checked out", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Geofence rejections
	case errors.Is(err, worklocation.ErrOutsideRadius):
		BadRequestWithCode(w, "GPS_VALIDATION_FAILED", "You are outside the allowed work location radius", nil)
	case errors.Is(err, worklocation.ErrAccuracyTooLow):
		BadRequestWithCode(w, "GPS_ACCURACY_INSUFFICIENT", "GPS accuracy is insufficient, please try again outdoors", nil)
	case errors.Is(err, worklocation.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrNoScheduleFound):
		BadRequestWithCode(w, "NO_SCHEDULE_FOUND", "You have no schedule for today", nil)
	case errors.Is(err, schedule.ErrShiftTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrScheduleEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, schedule.ErrDuplicateEntry):
		Conflict(w, "Schedule entry already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
