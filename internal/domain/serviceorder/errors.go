package serviceorder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"garage/internal/domain/status"
)

var (
	ErrNotFound              = errors.New("service order not found")
	ErrItemNotFound          = errors.New("service item not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrLocked                = errors.New("field is locked in the current status")
	ErrDuplicateProduct      = errors.New("product already added to this service order")
	ErrTechnicianRequired    = errors.New("a technician must be assigned before starting")
	ErrPaymentMethodRequired = errors.New("a payment method is required to complete")
)

// TransitionError describes an illegal lifecycle event.
type TransitionError struct {
	Event string
	From  status.Name
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a service order that is %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// FieldError is a validation failure bound to an input field.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationErrors collects FieldErrors raised by one operation.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, fe := range v {
		errs = append(errs, fe)
	}
	return errs
}

// Fields groups messages by field name.
func (v ValidationErrors) Fields() map[string][]string {
	m := make(map[string][]string, len(v))
	for _, fe := range v {
		m[fe.Field] = append(m[fe.Field], fe.Message)
	}
	return m
}

// FieldNames returns the sorted set of offending fields.
func (v ValidationErrors) FieldNames() []string {
	names := make([]string, 0, len(v))
	for f := range v.Fields() {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

func (v *ValidationErrors) add(field, message string, err error) {
	*v = append(*v, &FieldError{Field: field, Message: message, Err: err})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func fieldError(field, message string, err error) error {
	return ValidationErrors{{Field: field, Message: message, Err: err}}
}
