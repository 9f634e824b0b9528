package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAlertNotFound     = errors.New("alert not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrDateParse         = errors.New("unparseable due date")
	ErrEmptyDate         = errors.New("empty due date")
)

// DateParseError reports a due date that could not be normalized.
type DateParseError struct {
	Raw any
	Err error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("normalize due date %v: %v", e.Raw, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}
