// Package errors holds the failure taxonomy shared by the use cases. Each
// error carries the HTTP status it maps to so presenters translate it only
// at the boundary.
package errors

import (
	stdErrors "errors"
	"net/http"
	"strings"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindValidationFailed
	KindDuplicateKey
	KindOwnerNotFound
	KindNotFound
)

type (
	Error struct {
		kind    Kind
		code    int
		message string
		details []string
	}
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationFailed"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindOwnerNotFound:
		return "OwnerNotFound"
	case KindNotFound:
		return "NotFound"
	}
	return "Internal"
}

func (k Kind) defaultCode() int {
	switch k {
	case KindValidationFailed, KindDuplicateKey, KindOwnerNotFound:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string, details ...string) *Error {
	return &Error{
		kind:    kind,
		code:    kind.defaultCode(),
		message: message,
		details: details,
	}
}

func ValidationFailed(message string, details ...string) *Error {
	return New(KindValidationFailed, message, details...)
}

func DuplicateKey(message string, details ...string) *Error {
	return New(KindDuplicateKey, message, details...)
}

func OwnerNotFound(message string, details ...string) *Error {
	return New(KindOwnerNotFound, message, details...)
}

func NotFound(message string, details ...string) *Error {
	return New(KindNotFound, message, details...)
}

// WithCode overrides the HTTP status, e.g. missing ids reported by a bulk
// operation are a 400 rather than a 404.
func (e *Error) WithCode(code int) *Error {
	e.code = code
	return e
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Code() int {
	return e.code
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Details() []string {
	return e.details
}

func (e *Error) Error() string {
	if len(e.details) == 0 {
		return e.message
	}
	var builder strings.Builder
	_, _ = builder.WriteString(e.message)
	_, _ = builder.WriteString(": ")
	_, _ = builder.WriteString(strings.Join(e.details, "; "))
	return builder.String()
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !stdErrors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

// As unwraps err into *Error; infrastructure errors yield nil.
func As(err error) *Error {
	var e *Error
	if stdErrors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if e := As(err); e != nil {
		return e.kind == kind
	}
	return false
}

// Code returns the HTTP status for any error, 500 for untyped ones.
func Code(err error) int {
	if e := As(err); e != nil {
		return e.code
	}
	return http.StatusInternalServerError
}
