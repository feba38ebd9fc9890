package usecases

import (
	stderrors "errors"
	"fmt"

	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/shared/errors"
)

// translateError maps domain failures onto the API error taxonomy. Errors
// that are already AppErrors, and unknown errors, pass through unchanged.
func translateError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}

	var verrs serviceorder.ValidationErrors
	if stderrors.As(err, &verrs) {
		return errors.NewFieldsValidationError(verrs.Fields())
	}
	var terr *serviceorder.TransitionError
	if stderrors.As(err, &terr) {
		return errors.NewInvalidTransitionError(terr.Error())
	}

	switch {
	case stderrors.Is(err, serviceorder.ErrNotFound):
		return errors.NewNotFoundError("Service order not found")
	case stderrors.Is(err, serviceorder.ErrItemNotFound):
		return errors.NewNotFoundError("Service item not found")
	case stderrors.Is(err, product.ErrInsufficientStock):
		return errors.NewFieldValidationError("items", err.Error())
	case stderrors.Is(err, client.ErrNotFound),
		stderrors.Is(err, vehicle.ErrNotFound),
		stderrors.Is(err, servicecenter.ErrNotFound),
		stderrors.Is(err, product.ErrNotFound),
		stderrors.Is(err, payment.ErrNotFound),
		stderrors.Is(err, user.ErrNotFound),
		stderrors.Is(err, status.ErrNotFound):
		return errors.NewNotFoundError(err.Error())
	}
	return err
}

// fieldErrors accumulates validation messages keyed by JSON field name.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, format string, args ...any) {
	f[field] = append(f[field], fmt.Sprintf(format, args...))
}

// merge copies the messages of a domain validation error. Any other error is
// returned for the caller to handle.
func (f fieldErrors) merge(prefix string, err error) error {
	var verrs serviceorder.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	for field, msgs := range verrs.Fields() {
		f[prefix+field] = append(f[prefix+field], msgs...)
	}
	return nil
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return errors.NewFieldsValidationError(map[string][]string(f))
}
