// Package memstore holds mutex-guarded in-memory repositories with the same
// semantics as the Mongo ones, for tests and local runs without a database.
package memstore

import (
	"sync"

	"curabot/models"
)

// Store is the shared backing state of every in-memory repository.
type Store struct {
	mu           sync.Mutex
	users        map[string]models.User
	doctors      map[string]models.Doctor
	schedules    map[string]*models.Schedule // by doctorId
	appointments map[string]models.Appointment
	chats        map[string]*models.Chat // by userId

	// FailAppointmentCreate makes the next appointment inserts fail.
	FailAppointmentCreate error
}

func New() *Store {
	return &Store{
		users:        map[string]models.User{},
		doctors:      map[string]models.Doctor{},
		schedules:    map[string]*models.Schedule{},
		appointments: map[string]models.Appointment{},
		chats:        map[string]*models.Chat{},
	}
}

func (s *Store) Users() *UserRepo               { return &UserRepo{s: s} }
func (s *Store) Doctors() *DoctorRepo           { return &DoctorRepo{s: s} }
func (s *Store) Schedules() *ScheduleRepo       { return &ScheduleRepo{s: s} }
func (s *Store) Appointments() *AppointmentRepo { return &AppointmentRepo{s: s} }
func (s *Store) Chats() *ChatRepo               { return &ChatRepo{s: s} }

func cloneSchedule(in *models.Schedule) *models.Schedule {
	out := *in
	out.AvailableSlots = make([]models.DaySlots, len(in.AvailableSlots))
	for i, d := range in.AvailableSlots {
		out.AvailableSlots[i] = models.DaySlots{Date: d.Date, Times: append([]models.TimeSlot(nil), d.Times...)}
	}
	return &out
}
