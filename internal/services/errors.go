package services

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AppError is an error the handlers can show to the client as is.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newError(status int, msg string) *AppError {
	return &AppError{Status: status, Message: msg}
}

func BadRequest(msg string) *AppError { return newError(http.StatusBadRequest, msg) }
func NotFound(msg string) *AppError { return newError(http.StatusNotFound, msg) }
func Conflict(msg string) *AppError { return newError(http.StatusConflict, msg) }

// StatusOf maps err to an HTTP status and a client-safe message. Anything
// that is not an AppError is an internal error and its text is not exposed.
func StatusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, "Server Error"
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
