package cart

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationError reports an invariant violated before any write. It is never
// retried; the message is safe to surface to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StockConflictError reports a write rejected because concurrent demand
// exhausted stock between read and write.
type StockConflictError struct {
	MedicineID primitive.ObjectID
	Name       string
	Requested  int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

// NotFoundError reports an operation referencing a document that no longer
// exists. Deletes treat it as success; updates surface it.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// TransientError wraps a network or service failure. The core never retries
// it; callers may offer a manual retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
