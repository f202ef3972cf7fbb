package models

import "time"

// TimeSlot is a single bookable time within a day, "HH:MM" in 24h format.
type TimeSlot struct {
	Time     string `bson:"time" json:"time"`
	IsBooked bool   `bson:"isBooked" json:"isBooked"`
}

// DaySlots holds the ordered times of one calendar date. Date is always UTC midnight.
type DaySlots struct {
	Date  time.Time  `bson:"date" json:"date"`
	Times []TimeSlot `bson:"times" json:"times"`
}

// FreeTimes returns the unbooked times in schedule order.
func (d DaySlots) FreeTimes() []string {
	var free []string
	for _, t := range d.Times {
		if !t.IsBooked {
			free = append(free, t.Time)
		}
	}
	return free
}

// Schedule is the single availability document of a doctor.
type Schedule struct {
	ID             string     `bson:"id" json:"id"`
	DoctorID       string     `bson:"doctorId" json:"doctorId"`
	AvailableSlots []DaySlots `bson:"availableSlots" json:"availableSlots"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
}

// AvailabilityInput describes one day of slots generated from a working window.
type AvailabilityInput struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Interval  int    `json:"interval" binding:"required,gt=0"`
}
