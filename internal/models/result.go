package models

// Envelope codes.
const (
	CodeFailure = 0
	CodeSuccess = 1
)

// Result is the envelope every endpoint responds with.
type Result[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Success wraps data in a successful result.
func Success[T any](message string, data T) Result[T] {
	return Result[T]{Code: CodeSuccess, Message: message, Data: data}
}

// Failure builds a failed result carrying only a message.
func Failure(message string) Result[any] {
	return Result[any]{Code: CodeFailure, Message: message}
}
