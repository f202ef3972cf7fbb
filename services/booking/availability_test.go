package booking

import (
	"context"
	"testing"

	"curabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "10:30", 30)
	require.NoError(t, err)

	var times []string
	for _, s := range slots {
		assert.False(t, s.IsBooked)
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times)

	slots, err = GenerateTimeSlots("9:00", "9:50", 20)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
	assert.Equal(t, "09:40", slots[2].Time)

	for _, tc := range []struct {
		start, end string
		interval   int
	}{
		{"10:00", "09:00", 30},
		{"09:00", "09:00", 30},
		{"09:00", "10:00", 0},
		{"25:00", "26:00", 30},
		{"nine", "10:00", 30},
	} {
		_, err := GenerateTimeSlots(tc.start, tc.end, tc.interval)
		assert.ErrorIs(t, err, ErrInvalidInput, "%s-%s/%d", tc.start, tc.end, tc.interval)
	}
}

func TestMergeDay_KeepsBookedFlags(t *testing.T) {
	current := &models.DaySlots{Date: slotDay, Times: []models.TimeSlot{
		{Time: "09:00", IsBooked: true},
		{Time: "09:30"},
	}}
	fresh, err := GenerateTimeSlots("09:00", "10:30", 30)
	require.NoError(t, err)

	next, err := MergeDay(current, slotDay, fresh)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{
		{Time: "09:00", IsBooked: true},
		{Time: "09:30"},
		{Time: "10:00"},
	}, next.Times)

	fresh, err = GenerateTimeSlots("09:30", "10:30", 30)
	require.NoError(t, err)
	_, err = MergeDay(current, slotDay, fresh)
	assert.ErrorIs(t, err, ErrBookedSlotRemoved)
	assert.Contains(t, err.Error(), "09:00")
}

func TestAvailability_SetUpdateGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, "patient-1", "doc-alice", slotDay, "09:30")
	require.NoError(t, err)

	sch, err := svc.UpdateAvailability(ctx, "user-alice", models.AvailabilityInput{
		Date: "2024-06-01", StartTime: "09:30", EndTime: "11:00", Interval: 30,
	})
	require.NoError(t, err)
	require.Len(t, sch.AvailableSlots, 1)
	assert.Equal(t, []models.TimeSlot{
		{Time: "09:30", IsBooked: true},
		{Time: "10:00"},
		{Time: "10:30"},
	}, sch.AvailableSlots[0].Times)

	_, err = svc.UpdateAvailability(ctx, "user-alice", models.AvailabilityInput{
		Date: "2024-06-02", StartTime: "09:00", EndTime: "10:00", Interval: 30,
	})
	assert.ErrorIs(t, err, ErrDayNotFound)

	sch, err = svc.SetAvailability(ctx, "user-alice", models.AvailabilityInput{
		Date: "2024-06-02T00:00:00Z", StartTime: "14:00", EndTime: "15:00", Interval: 60,
	})
	require.NoError(t, err)
	assert.Len(t, sch.AvailableSlots, 2)

	_, err = svc.SetAvailability(ctx, "nobody", models.AvailabilityInput{
		Date: "2024-06-02", StartTime: "14:00", EndTime: "15:00", Interval: 60,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	got, err := svc.GetAvailability(ctx, "doc-alice")
	require.NoError(t, err)
	assert.Equal(t, sch.ID, got.ID)

	_, err = svc.GetAvailability(ctx, "doc-bob")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
