package booking

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrNoScheduleForDate   = errors.New("doctor does not have available slots on this date")
	ErrSlotUnavailable     = errors.New("time slot is not available")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrScheduleNotFound    = errors.New("no schedule found for this doctor")
	ErrDayNotFound         = errors.New("no schedule found, please set availability first")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrBookedSlotRemoved   = errors.New("new availability drops a booked time slot")
	ErrInvalidInput        = errors.New("invalid input")
	ErrScheduleContention  = errors.New("schedule is being modified concurrently, try again")
)
