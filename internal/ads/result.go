package ads

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// unknownError is shown when a failure carries no detail.
const unknownError = "Neznámá chyba"

// Result is the outcome of one operation: a success carrying an optional
// payload, or a failure carrying only a message.
type Result[T any] struct {
	ok      bool
	message string
	data    *T
}

// Succeed returns a success carrying data.
func Succeed[T any](data T, message string) Result[T] {
	return Result[T]{ok: true, message: message, data: &data}
}

// SucceedEmpty returns a success without payload, used when the platform
// had nothing to report.
func SucceedEmpty[T any](message string) Result[T] {
	return Result[T]{ok: true, message: message}
}

// Fail returns a failure.
func Fail[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Message returns the human-readable message, possibly empty on success.
func (r Result[T]) Message() string { return r.message }

// Value returns the payload. ok is false for failures and empty successes.
func (r Result[T]) Value() (T, bool) {
	if !r.ok || r.data == nil {
		var zero T
		return zero, false
	}
	return *r.data, true
}

// MarshalJSON renders {"success":true,"message":...,"data":...} or
// {"success":false,"message":...}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{false, r.message})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
		Data    *T     `json:"data"`
	}{true, r.message, r.data})
}

// failure logs err and converts it into a failed Result whose message names
// the action that failed.
func failure[T any](logger *zap.Logger, action string, err error, fields ...zap.Field) Result[T] {
	detail := unknownError
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	logger.Error("operation failed", append(fields, zap.String("action", action), zap.Error(err))...)
	return Fail[T](fmt.Sprintf("Chyba při %s: %s", action, detail))
}
