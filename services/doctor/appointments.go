package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	"curabot/models"
	"curabot/utils"
)

// TodayAppointments lists the calling doctor's appointments for the current calendar day.
func (s *DefaultDoctorService) TodayAppointments(ctx context.Context, doctorUserID string) ([]models.AppointmentView, error) {
	return s.appointmentsOn(ctx, doctorUserID, utils.Today(s.now()))
}

func (s *DefaultDoctorService) AppointmentsByDate(ctx context.Context, doctorUserID, date string) ([]models.AppointmentView, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrDateRequired
	}
	day, err := utils.ParseCalendarDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.appointmentsOn(ctx, doctorUserID, day)
}

func (s *DefaultDoctorService) appointmentsOn(ctx context.Context, doctorUserID string, day time.Time) ([]models.AppointmentView, error) {
	doc, err := s.Doctors.GetByUserID(ctx, doctorUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDoctorProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load doctor profile: %w", err)
	}

	appts, err := s.Appointments.List(ctx, appointmentRepo.ListFilter{
		DoctorID: doc.ID,
		From:     day,
		To:       day.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	patients := map[string]*models.PublicUser{}
	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		p, ok := patients[a.PatientID]
		if !ok {
			u, err := s.Users.GetByID(ctx, a.PatientID)
			switch {
			case err == nil:
				pub := u.Public()
				p = &pub
			case !errors.Is(err, repository.ErrNotFound):
				return nil, fmt.Errorf("load patient: %w", err)
			}
			patients[a.PatientID] = p
		}
		views = append(views, models.AppointmentView{Appointment: a, Doctor: doc, Patient: p})
	}
	return views, nil
}
