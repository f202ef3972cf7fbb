package booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"curabot/models"
)

// GenerateTimeSlots cuts [start, end) into free slots every interval minutes.
// start and end are "HH:MM" clock times on the same day.
func GenerateTimeSlots(start, end string, interval int) ([]models.TimeSlot, error) {
	from, err := parseClock(start)
	if err != nil {
		return nil, err
	}
	to, err := parseClock(end)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidInput)
	}
	if from >= to {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, start, end)
	}

	slots := make([]models.TimeSlot, 0, (to-from)/interval+1)
	for m := from; m < to; m += interval {
		slots = append(slots, models.TimeSlot{Time: formatClock(m)})
	}
	return slots, nil
}

// parseClock returns minutes since midnight for "H:MM" or "HH:MM".
func parseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: bad clock time %q", ErrInvalidInput, raw)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad clock time %q", ErrInvalidInput, raw)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock rewrites "9:00" as "09:00" so times compare as stored.
func NormalizeClock(raw string) (string, error) {
	m, err := parseClock(raw)
	if err != nil {
		return "", err
	}
	return formatClock(m), nil
}

// MergeDay builds the replacement for a day from freshly generated slots.
// Times present in both keep their booked flag; dropping a booked time is refused.
func MergeDay(current *models.DaySlots, day time.Time, fresh []models.TimeSlot) (models.DaySlots, error) {
	booked := map[string]bool{}
	if current != nil {
		for _, t := range current.Times {
			if t.IsBooked {
				booked[t.Time] = true
			}
		}
	}

	next := models.DaySlots{Date: day, Times: make([]models.TimeSlot, 0, len(fresh))}
	for _, t := range fresh {
		t.IsBooked = booked[t.Time]
		delete(booked, t.Time)
		next.Times = append(next.Times, t)
	}

	if len(booked) > 0 {
		dropped := make([]string, 0, len(booked))
		for t := range booked {
			dropped = append(dropped, t)
		}
		sort.Strings(dropped)
		return models.DaySlots{}, fmt.Errorf("%w: %s", ErrBookedSlotRemoved, strings.Join(dropped, ", "))
	}
	return next, nil
}
