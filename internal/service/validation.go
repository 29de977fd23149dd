package service

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/storage"
)

var validate = validator.New()

// validateRequest checks the validate tags of msg and reports every failing
// field in one InvalidArgument error.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Namespace(), fieldErrorMsg(fe)))
	}
	return connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(details, "; ")))
}

func fieldErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	default:
		return "invalid value"
	}
}

// toConnectError maps store and auth errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, storage.ErrConstraintViolation), errors.Is(err, auth.ErrUsernameExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
