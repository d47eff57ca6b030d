package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by stores when an identifier does not resolve to a record.
var ErrNotFound = errors.New("record not found")

const (
	CodeNotFound       = "NOT_FOUND"
	CodeStorageFailure = "STORAGE_FAILURE"
	CodeBadRequest     = "BAD_REQUEST"
	CodeHTTP           = "HTTP_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NewNotFound(err error) error {
	return NewDomainError(CodeNotFound, "Not found", http.StatusNotFound, err)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

// NewStorageFailure hides the storage cause behind a generic message; the cause stays
// reachable through Unwrap for logging.
func NewStorageFailure(err error) error {
	return NewDomainError(CodeStorageFailure, "internal server error", http.StatusInternalServerError, err)
}

// IsNotFound reports whether err means a missing record at any layer.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == CodeNotFound
	}
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, mongo.ErrNoDocuments)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if IsNotFound(err) {
		return NewNotFound(err).(*DomainError)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return NewStorageFailure(err).(*DomainError)
}

// fromFiberError covers errors raised by the router itself, such as unmatched
// routes and unparseable bodies.
func fromFiberError(err *fiber.Error) *DomainError {
	switch err.Code {
	case http.StatusNotFound:
		return NewNotFound(err).(*DomainError)
	case http.StatusBadRequest:
		return NewDomainError(CodeBadRequest, err.Message, err.Code, err)
	default:
		return NewDomainError(CodeHTTP, err.Message, err.Code, err)
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
