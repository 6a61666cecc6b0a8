package errors

import (
	"net/http"
	"strings"
)

// Queue-specific error types. Each issuance or transition failure aborts the
// enclosing transaction and surfaces one of these to the caller; the HTTP
// layer maps Code to the response status.
const (
	ErrorTypeLocationClosed      ErrorType = "location_closed"
	ErrorTypeCounterClosed       ErrorType = "counter_closed"
	ErrorTypeCapacityExhausted   ErrorType = "capacity_exhausted"
	ErrorTypeDuplicateTicket     ErrorType = "duplicate_ticket"
	ErrorTypeInvalidTicketStatus ErrorType = "invalid_ticket_status"
	ErrorTypeBusinessLogic       ErrorType = "business_logic"
	ErrorTypeLockTimeout         ErrorType = "lock_timeout"
)

// NewLocationClosedError indicates issuance was attempted while the owning
// location is inactive.
func NewLocationClosedError(locationName string) *AppError {
	return &AppError{
		Type:    ErrorTypeLocationClosed,
		Message: "location is not accepting tickets",
		Code:    http.StatusUnprocessableEntity,
		Details: locationName,
	}
}

// NewCounterClosedError indicates issuance was attempted while the counter is
// inactive or outside its open-hour window.
func NewCounterClosedError(counterName string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeCounterClosed,
		Message: "counter " + counterName + " is closed: " + reason,
		Code:    http.StatusUnprocessableEntity,
		Details: reason,
	}
}

// NewCapacityError indicates the counter has reached its daily issuance cap.
func NewCapacityError(counterName string, capacity int) *AppError {
	return &AppError{
		Type:    ErrorTypeCapacityExhausted,
		Message: "counter " + counterName + " has reached its daily capacity",
		Code:    http.StatusConflict,
	}
}

// NewDuplicateTicketError indicates the holder already has an active ticket
// at the conflicting counter for the same service date.
func NewDuplicateTicketError(counterName string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateTicket,
		Message: "an active ticket already exists at counter " + counterName,
		Code:    http.StatusConflict,
		Details: counterName,
	}
}

// NewInvalidTicketStatusError indicates an operation was attempted from a
// status outside its legal source set. It names the attempted operation and
// the allowed source states.
func NewInvalidTicketStatusError(operation string, current string, allowed []string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTicketStatus,
		Message: "cannot " + operation + " a ticket in status " + current,
		Code:    http.StatusConflict,
		Details: "allowed from: " + strings.Join(allowed, ", "),
	}
}

// NewBusinessLogicError is the catch-all for terminal-state and other
// domain-rule violations that do not fit a more specific kind.
func NewBusinessLogicError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeBusinessLogic,
		Message: message,
		Code:    http.StatusUnprocessableEntity,
		Details: firstDetail(details),
	}
}

// NewLockTimeoutError marks a transaction that could not acquire its row lock,
// whether it timed out waiting or was chosen as a deadlock victim. Transient:
// the caller may retry, the engine never does.
func NewLockTimeoutError(resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeLockTimeout,
		Message: "could not acquire lock on " + resource + ", please retry",
		Code:    http.StatusServiceUnavailable,
		Details: resource,
	}
}

// IsLockTimeout reports whether err is a transient lock-acquisition failure,
// either our own kind or a driver-level lock wait or deadlock error. Deadlock
// victims belong here too: two first-of-day issuances can both take the
// compatible gap lock on an empty counter+date range, then deadlock on
// insert, and InnoDB rolls one back with error 1213.
func IsLockTimeout(err error) bool {
	if err == nil {
		return false
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type == ErrorTypeLockTimeout
	}
	errStr := err.Error()
	// MySQL 1205 / Postgres lock_timeout
	if strings.Contains(errStr, "Lock wait timeout exceeded") ||
		strings.Contains(errStr, "canceling statement due to lock timeout") {
		return true
	}
	// MySQL 1213 / Postgres 40P01
	return strings.Contains(errStr, "Deadlock found when trying to get lock") ||
		strings.Contains(errStr, "deadlock detected")
}
