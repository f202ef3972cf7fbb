package doctor

import (
	"context"
	"errors"
	"time"

	appointmentRepo "curabot/database/repository/appointment"
	doctorRepo "curabot/database/repository/doctor"
	userRepo "curabot/database/repository/user"
	"curabot/models"

	"go.uber.org/zap"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorProfileNotFound = errors.New("doctor profile not found")
	ErrInvalidDoctorUser     = errors.New("invalid doctor user ID")
	ErrDoctorExists          = errors.New("doctor profile already exists for this user")
	ErrDateRequired          = errors.New("date is required")
	ErrInvalidDate           = errors.New("invalid date")
)

// DoctorService manages the doctor roster and the doctor's own appointment views.
type DoctorService interface {
	AddDoctor(ctx context.Context, in models.DoctorInput) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, in models.DoctorInput) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error
	TodayAppointments(ctx context.Context, doctorUserID string) ([]models.AppointmentView, error)
	AppointmentsByDate(ctx context.Context, doctorUserID, date string) ([]models.AppointmentView, error)
}

type DefaultDoctorService struct {
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Logger       *zap.Logger
	Now          func() time.Time
}

func (s *DefaultDoctorService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultDoctorService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
