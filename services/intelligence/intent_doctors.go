package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
)

const (
	maxAvailabilityDays     = 5
	availabilityApology     = "I'm having trouble checking the doctor's availability right now. Please try again later."
	doctorInfoApology       = "I'm having trouble retrieving the doctor's information right now. Please try again later."
	doctorNotInSystemReply  = "I couldn't find that doctor in our system."
	doctorNotSpecifiedReply = "Which doctor would you like to know about? Please tell me the doctor's name."
)

// resolveDoctor finds a doctor by id or by a case-insensitive name fragment.
// When no single doctor matches, the returned text is the reply to send.
func (d *Dispatcher) resolveDoctor(ctx context.Context, ref string) (*models.Doctor, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, doctorNotSpecifiedReply, nil
	}

	if _, err := uuid.Parse(ref); err == nil {
		doctor, err := d.Doctors.GetByID(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, doctorNotInSystemReply, nil
		}
		if err != nil {
			return nil, "", err
		}
		return doctor, "", nil
	}

	matches, err := d.Doctors.SearchByName(ctx, stripDoctorTitle(ref))
	if err != nil {
		return nil, "", err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Sprintf("I couldn't find a doctor matching %q. Could you please provide the full name or try another doctor?", ref), nil
	case 1:
		return &matches[0], "", nil
	}

	var sb strings.Builder
	sb.WriteString("I found multiple doctors matching that name. Which one did you mean?\n\n")
	for i, doc := range matches {
		fmt.Fprintf(&sb, "%d. %s (%s, %s)\n", i+1, drName(doc.Name), doc.Speciality, doc.Qualification)
	}
	return nil, sb.String(), nil
}

func (d *Dispatcher) handleDoctorAvailability(ctx context.Context, q Query) models.ChatReply {
	doctor, text, err := d.resolveDoctor(ctx, q.Intent.DoctorID)
	if err != nil {
		return d.fail(q.Intent.Type, err, availabilityApology)
	}
	if doctor == nil {
		return models.ChatReply{Response: text}
	}

	schedule, err := d.Schedules.GetByDoctorID(ctx, doctor.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return d.fail(q.Intent.Type, err, availabilityApology)
	}
	if schedule == nil || len(schedule.AvailableSlots) == 0 {
		return models.ChatReply{Response: fmt.Sprintf("%s doesn't have any available slots in the schedule yet.", drName(doctor.Name))}
	}

	var days []models.DaySlots
	if date, err := utils.ParseCalendarDate(q.Intent.Date); err == nil {
		for _, day := range schedule.AvailableSlots {
			if utils.SameDay(day.Date, date) && len(day.FreeTimes()) > 0 {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			return models.ChatReply{Response: fmt.Sprintf("%s doesn't have any available slots on %s.", drName(doctor.Name), utils.FormatDisplayDay(date))}
		}
	} else {
		days = d.upcomingFreeDays(schedule.AvailableSlots)
		if len(days) == 0 {
			return models.ChatReply{Response: fmt.Sprintf("%s doesn't have any upcoming available slots.", drName(doctor.Name))}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's %s's availability:\n\n", drName(doctor.Name))
	for _, day := range days {
		fmt.Fprintf(&sb, "%s: %s\n", utils.FormatDisplayDay(day.Date), strings.Join(day.FreeTimes(), ", "))
	}
	return models.ChatReply{Response: sb.String()}
}

// upcomingFreeDays returns the next days from today with at least one free slot.
func (d *Dispatcher) upcomingFreeDays(all []models.DaySlots) []models.DaySlots {
	today := utils.Today(d.Now())
	var days []models.DaySlots
	for _, day := range all {
		if !day.Date.Before(today) && len(day.FreeTimes()) > 0 {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	if len(days) > maxAvailabilityDays {
		days = days[:maxAvailabilityDays]
	}
	return days
}

func (d *Dispatcher) handleDoctorInfo(ctx context.Context, q Query) models.ChatReply {
	doctor, text, err := d.resolveDoctor(ctx, q.Intent.DoctorID)
	if err != nil {
		return d.fail(q.Intent.Type, err, doctorInfoApology)
	}
	if doctor == nil {
		return models.ChatReply{Response: text}
	}

	free := 0
	schedule, err := d.Schedules.GetByDoctorID(ctx, doctor.ID)
	switch {
	case err == nil:
		today := utils.Today(d.Now())
		for _, day := range schedule.AvailableSlots {
			if !day.Date.Before(today) {
				free += len(day.FreeTimes())
			}
		}
	case !errors.Is(err, repository.ErrNotFound):
		return d.fail(q.Intent.Type, err, doctorInfoApology)
	}

	name := drName(doctor.Name)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's information about %s:\n\n", name)
	fmt.Fprintf(&sb, "Name: %s\n", name)
	fmt.Fprintf(&sb, "Speciality: %s\n", doctor.Speciality)
	fmt.Fprintf(&sb, "Qualification: %s\n", doctor.Qualification)
	fmt.Fprintf(&sb, "Expertise: %s\n\n", strings.Join(doctor.Expertise, ", "))
	fmt.Fprintf(&sb, "Overview: %s\n\n", doctor.Overview)
	fmt.Fprintf(&sb, "Available Slots: %d\n", free)
	return models.ChatReply{Response: sb.String()}
}

// stripDoctorTitle removes a leading "Dr" / "Dr." honorific.
func stripDoctorTitle(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for _, prefix := range []string{"dr. ", "dr.", "dr "} {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(name[len(prefix):])
		}
	}
	return name
}

func drName(name string) string {
	return "Dr. " + stripDoctorTitle(name)
}
