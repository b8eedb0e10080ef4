package focuslib

import "errors"

var (
	ErrItemNotFound  = errors.New("schedule item not found")
	ErrEventNotFound = errors.New("calendar event not found")
	ErrAlarmNotFound = errors.New("alarm not found")

	ErrDurationInvalid = errors.New("duration must be a positive number of minutes")
	ErrTimeInvalid     = errors.New("alarm time must be in HH:MM form")
)
