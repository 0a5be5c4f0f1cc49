package errors

import "fmt"

// ErrorCode represents a shortcuts-mcp error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED" // 403
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrStoreCorrupt     ErrorCode = "STORE_CORRUPT"     // 500
	ErrRunFailed        ErrorCode = "RUN_FAILED"        // 502
	ErrSamplingFailed   ErrorCode = "SAMPLING_FAILED"   // 502
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// ShortcutError represents a structured error with code, status, and details.
type ShortcutError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ShortcutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ShortcutError {
	return &ShortcutError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPermissionDenied creates a 403 error for an automation-access denial.
// The message carries the one-time grant instructions so callers can relay
// them verbatim to the user.
func NewPermissionDenied(shortcut string) *ShortcutError {
	return &ShortcutError{
		Code:   ErrPermissionDenied,
		Status: 403,
		Message: fmt.Sprintf("not authorized to run shortcut %q: grant automation access under "+
			"System Settings > Privacy & Security > Automation, then retry", shortcut),
		Details: map[string]any{"shortcut": shortcut},
	}
}

// NewNotFound creates a 404 error for when a shortcut cannot be found.
func NewNotFound(name string) *ShortcutError {
	return &ShortcutError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("shortcut not found: %s", name),
		Details: map[string]any{"name": name},
	}
}

// NewStoreCorrupt creates a 500 error for an unreadable durable document.
// Profile and statistics corruption is never silently discarded; the error
// names the file so the user can inspect or reset it by hand.
func NewStoreCorrupt(path string, err error) *ShortcutError {
	return &ShortcutError{
		Code:    ErrStoreCorrupt,
		Status:  500,
		Message: fmt.Sprintf("document %s is corrupt and must be repaired or removed manually: %v", path, err),
		Details: map[string]any{"path": path},
	}
}

// NewRunFailed creates a 502 error for a failed automation run or view.
func NewRunFailed(shortcut, reason string) *ShortcutError {
	msg := fmt.Sprintf("shortcut %q failed", shortcut)
	if reason != "" {
		msg = fmt.Sprintf("shortcut %q failed: %s", shortcut, reason)
	}
	return &ShortcutError{
		Code:    ErrRunFailed,
		Status:  502,
		Message: msg,
		Details: map[string]any{"shortcut": shortcut},
	}
}

// NewSamplingFailed creates a 502 error for a failed statistics generation.
func NewSamplingFailed(err error) *ShortcutError {
	return &ShortcutError{
		Code:    ErrSamplingFailed,
		Status:  502,
		Message: fmt.Sprintf("statistics generation failed: %v", err),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ShortcutError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ShortcutError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ShortcutError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ShortcutError); ok {
		return sErr.Code == code
	}
	return false
}
