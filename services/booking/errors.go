package booking

import "fmt"

// ValidationError reports a malformed or out-of-range argument. Recoverable;
// surfaced to the user as a message naming the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports a slot collision. Recoverable; Message carries the
// user-facing suggestion to pick another time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown booking id.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no booking found with ID: %s", e.BookingID)
}

// TransactionError reports a failed atomic booking+audit write. Hard failure;
// the update was aborted with no partial visibility.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
