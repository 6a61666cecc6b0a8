package usecases

import (
	stderrors "errors"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

// mapDomainError converts domain-level failures into the typed application
// errors surfaced to callers. Operations attempted on a ticket already in a
// terminal status are business-logic violations; any other illegal source
// status is an invalid-ticket-status failure naming the operation and its
// allowed sources.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	var transErr *queue.TransitionError
	if stderrors.As(err, &transErr) {
		if transErr.From.IsTerminal() {
			return errors.NewBusinessLogicError(
				"ticket is already "+transErr.From.String(),
				transErr.Error(),
			)
		}
		return errors.NewInvalidTicketStatusError(
			transErr.Operation.String(),
			transErr.From.String(),
			transErr.AllowedNames(),
		)
	}

	if errors.IsAppError(err) {
		return err
	}
	return errors.NewValidationError(err.Error())
}

// translateStoreError maps driver-level lock wait timeouts to the transient
// error kind so callers can distinguish "retry later" from a hard failure.
func translateStoreError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	if errors.IsLockTimeout(err) {
		return errors.NewLockTimeoutError(resource)
	}
	return err
}
