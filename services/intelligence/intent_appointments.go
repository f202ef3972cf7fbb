package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curabot/database/repository"
	appointmentRepo "curabot/database/repository/appointment"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
)

const (
	maxListedAppointments  = 5
	maxProfileAppointments = 3

	appointmentInfoApology = "I'm having trouble retrieving your appointment information right now. Please try again later."
	rescheduleApology      = "I'm having trouble processing your reschedule request right now. Please try again later or use the appointments page."
	profileApology         = "I'm having trouble retrieving your profile information right now. Please try again later."
)

func (d *Dispatcher) handleAppointmentInfo(ctx context.Context, q Query) models.ChatReply {
	filter := appointmentRepo.ListFilter{PatientID: q.UserID, Limit: maxListedAppointments}
	single := false
	if _, err := uuid.Parse(q.Intent.AppointmentID); err == nil {
		filter.AppointmentID = q.Intent.AppointmentID
		single = true
	}

	appts, err := d.Appointments.List(ctx, filter)
	if err != nil {
		return d.fail(q.Intent.Type, err, appointmentInfoApology)
	}
	if len(appts) == 0 {
		return models.ChatReply{Response: "You don't have any upcoming appointments scheduled."}
	}
	doctors, err := d.doctorsFor(ctx, appts)
	if err != nil {
		return d.fail(q.Intent.Type, err, appointmentInfoApology)
	}

	var sb strings.Builder
	if single {
		sb.WriteString("Here's your appointment information:\n\n")
	} else {
		sb.WriteString("Here are your upcoming appointments:\n\n")
	}
	for i, a := range appts {
		doc := doctors[a.DoctorID]
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, drName(doc.Name), doc.Speciality)
		fmt.Fprintf(&sb, "   Date: %s\n", utils.FormatDisplayDay(a.Date))
		fmt.Fprintf(&sb, "   Time: %s\n", a.Time)
		fmt.Fprintf(&sb, "   Status: %s\n\n", a.Status)
	}
	return models.ChatReply{Response: sb.String()}
}

// handleRescheduleRequest is informational only; it never changes an appointment.
func (d *Dispatcher) handleRescheduleRequest(ctx context.Context, q Query) models.ChatReply {
	if _, err := uuid.Parse(q.Intent.AppointmentID); err != nil {
		return models.ChatReply{Response: "To reschedule an appointment, please specify which appointment you'd like to change. You can ask me 'What are my appointments?' to see your scheduled appointments first."}
	}

	appt, err := d.Appointments.GetByID(ctx, q.Intent.AppointmentID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && appt.PatientID != q.UserID) {
		return models.ChatReply{Response: "I couldn't find that appointment in your records."}
	}
	if err != nil {
		return d.fail(q.Intent.Type, err, rescheduleApology)
	}
	doctors, err := d.doctorsFor(ctx, []models.Appointment{*appt})
	if err != nil {
		return d.fail(q.Intent.Type, err, rescheduleApology)
	}
	name := drName(doctors[appt.DoctorID].Name)

	if q.Intent.NewDate == "" && q.Intent.NewTime == "" {
		return models.ChatReply{Response: fmt.Sprintf(
			"Your appointment with %s is currently scheduled for %s at %s. To reschedule, please specify a new date and time, or visit the appointments page.",
			name, utils.FormatDisplayDay(appt.Date), appt.Time)}
	}
	return models.ChatReply{Response: fmt.Sprintf(
		"I understand you want to reschedule your appointment with %s. To complete the rescheduling process, please use the 'Reschedule' button on the appointments page. I've noted your preferred new date/time.",
		name)}
}

func (d *Dispatcher) handleUserProfile(ctx context.Context, q Query) models.ChatReply {
	user, err := d.Users.GetByID(ctx, q.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.ChatReply{Response: "I couldn't find your user profile. Please try again later or contact support."}
	}
	if err != nil {
		return d.fail(q.Intent.Type, err, profileApology)
	}

	appts, err := d.Appointments.List(ctx, appointmentRepo.ListFilter{
		PatientID: q.UserID,
		Statuses:  []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
		From:      utils.Today(d.Now()),
		Limit:     maxProfileAppointments,
	})
	if err != nil {
		return d.fail(q.Intent.Type, err, profileApology)
	}
	doctors, err := d.doctorsFor(ctx, appts)
	if err != nil {
		return d.fail(q.Intent.Type, err, profileApology)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s, here's your profile information:\n\n", user.Name)
	fmt.Fprintf(&sb, "Name: %s\n", user.Name)
	fmt.Fprintf(&sb, "Email: %s\n", user.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", user.Phone)
	fmt.Fprintf(&sb, "Member since: %s\n\n", user.CreatedAt.Format("January 2, 2006"))

	if len(appts) == 0 {
		sb.WriteString("You don't have any upcoming appointments.")
		return models.ChatReply{Response: sb.String()}
	}
	sb.WriteString("Upcoming appointments:\n")
	for i, a := range appts {
		doc := doctors[a.DoctorID]
		fmt.Fprintf(&sb, "%d. %s (%s) on %s at %s\n", i+1, drName(doc.Name), doc.Speciality, utils.FormatDisplayDay(a.Date), a.Time)
	}
	return models.ChatReply{Response: sb.String()}
}

// doctorsFor loads the doctors referenced by appts. Deleted doctors map to a
// placeholder so listings still render.
func (d *Dispatcher) doctorsFor(ctx context.Context, appts []models.Appointment) (map[string]models.Doctor, error) {
	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, a.DoctorID)
	}
	found, err := d.Doctors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Doctor, len(ids))
	for _, id := range ids {
		out[id] = models.Doctor{ID: id, Name: "Unknown", Speciality: "N/A"}
	}
	for _, doc := range found {
		out[doc.ID] = doc
	}
	return out, nil
}
