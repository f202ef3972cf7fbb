package booking

import (
	"time"

	"curabot/database"
	appointmentRepo "curabot/database/repository/appointment"
	doctorRepo "curabot/database/repository/doctor"
	scheduleRepo "curabot/database/repository/schedule"
	userRepo "curabot/database/repository/user"
	"curabot/utils"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of the Mongo repositories.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Schedules    scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Tx           database.Transactor
	Reminders    ReminderScheduler
	Metrics      *utils.Metrics
	Logger       *zap.Logger
	Now          func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultBookingService) tx() database.Transactor {
	if s.Tx != nil {
		return s.Tx
	}
	return database.NoopTransactor{}
}
