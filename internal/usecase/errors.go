package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種別。handlerはこれを見てHTTPステータスに写す。
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindCapacityExceeded ErrorKind = "capacity_exceeded"
	KindConflict         ErrorKind = "conflict"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindInternal         ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, status int, message string) error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func NewValidationError(message string) error {
	return newError(KindValidation, http.StatusBadRequest, message)
}

func NewNotFoundError() error {
	return newError(KindNotFound, http.StatusNotFound, "not found")
}

func NewCapacityError(message string) error {
	return newError(KindCapacityExceeded, http.StatusRequestEntityTooLarge, message)
}

func NewConflictError(message string) error {
	return newError(KindConflict, http.StatusConflict, message)
}

func NewUnauthorizedError() error {
	return newError(KindUnauthorized, http.StatusUnauthorized, "unauthorized")
}

func NewForbiddenError(message string) error {
	return newError(KindForbidden, http.StatusForbidden, message)
}

func NewInternalError(message string) error {
	return newError(KindInternal, http.StatusInternalServerError, message)
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
