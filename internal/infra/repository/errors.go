package repository

import "errors"

var (
	ErrInvalidAlertData   = errors.New("invalid alert data")
	ErrUnexpectedReply    = errors.New("unexpected redis script reply")
	ErrMissingAlertRecord = errors.New("alert key references a missing record")
)
