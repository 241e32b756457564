package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Form validation ───────────────────────────────────────────────
	ErrMissingField  ErrCode = "MISSING_FIELD"
	ErrInvalidNumber ErrCode = "INVALID_NUMBER"
	ErrInvalidAge    ErrCode = "INVALID_AGE"

	// ─── Roster state ──────────────────────────────────────────────────
	ErrDuplicateID          ErrCode = "DUPLICATE_ID"
	ErrNoSelection          ErrCode = "NO_SELECTION"
	ErrNotFound             ErrCode = "NOT_FOUND"
	ErrConfirmationRequired ErrCode = "CONFIRMATION_REQUIRED"

	// ─── Payload ───────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Server ────────────────────────────────────────────────────────
	ErrRateLimited ErrCode = "RATE_LIMITED"
	ErrInternal    ErrCode = "INTERNAL_ERROR"
)

// Informational messages shown by the roster views.
const (
	MsgStudentAdded   = "Student added successfully"
	MsgNoMatch        = "No matching students found"
	MsgConfirmDelete  = "Are you sure to delete the selected student?"
	MsgConfirmReset   = "Are you sure to reset all student data?"
	MsgStudentDeleted = "Student deleted"
	MsgRosterReset    = "All student data has been reset"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrMissingField:
		return "ID, name, and age cannot be empty"
	case ErrInvalidNumber:
		return "Age must be a number"
	case ErrInvalidAge:
		return "Age must be a positive integer"

	case ErrDuplicateID:
		return "ID already exists"
	case ErrNoSelection:
		return "Please select a student to delete"
	case ErrNotFound:
		return "Student not found"
	case ErrConfirmationRequired:
		return "This action must be confirmed"

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrRateLimited:
		return "Too many changes. Please slow down."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
