// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов об ошибках. Тело ошибки для 400/404 содержит только message,
// для 500 дополнительно текст внутренней ошибки.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse тело ответа для ошибок валидации, конфликтов и "не найдено".
type ErrorResponse struct {
	Message string `json:"message" example:"Book not found"`
}

// InternalErrorResponse тело ответа для необработанных ошибок сервера:
// сообщение и текст исходной ошибки.
type InternalErrorResponse struct {
	Message string `json:"message" example:"Failed to issue book"`
	Error   string `json:"error" example:"connection refused"`
}

// Error возвращает тело ошибки с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// Internal возвращает тело внутренней ошибки: сообщение и текст причины.
func Internal(msg string, err error) InternalErrorResponse {
	return InternalErrorResponse{
		Message: msg,
		Error:   err.Error(),
	}
}

// ValidationError формирует тело ошибки на основе нарушений валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединённый
// через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must not be negative", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Message: strings.Join(errsMsgs, ", ")}
}
