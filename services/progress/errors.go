package progress

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrValidation is returned for bad or missing ids before any store access.
	ErrValidation = stderrors.New("validation failed")
	// ErrNotEnrolled is returned by the read path when no ACTIVE enrollment exists.
	ErrNotEnrolled = stderrors.New("student is not enrolled in this course")
	// ErrNotFound is returned when the referenced video or course is missing.
	ErrNotFound = stderrors.New("not found")
	// ErrStoreUnavailable wraps transient database failures. Safe to retry.
	ErrStoreUnavailable = stderrors.New("progress store unavailable")
)

// storeErr classifies a GORM error. Record-not-found maps to ErrNotFound,
// everything else to ErrStoreUnavailable; the cause stays in the chain.
func storeErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, what)
	}
	if isClassified(err) {
		return err
	}
	return &classifiedError{sentinel: ErrStoreUnavailable, cause: errors.Wrap(err, what)}
}

func isClassified(err error) bool {
	return stderrors.Is(err, ErrValidation) ||
		stderrors.Is(err, ErrNotEnrolled) ||
		stderrors.Is(err, ErrNotFound) ||
		stderrors.Is(err, ErrStoreUnavailable)
}

// classifiedError keeps both the sentinel and the underlying cause reachable
// through errors.Is.
type classifiedError struct {
	sentinel error
	cause    error
}

func (e *classifiedError) Error() string { return e.sentinel.Error() + ": " + e.cause.Error() }

func (e *classifiedError) Is(target error) bool { return target == e.sentinel }

func (e *classifiedError) Unwrap() error { return e.cause }

func validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}
