package memstore

import (
	appointmentRepo "curabot/database/repository/appointment"
	chatRepo "curabot/database/repository/chat"
	doctorRepo "curabot/database/repository/doctor"
	scheduleRepo "curabot/database/repository/schedule"
	userRepo "curabot/database/repository/user"
)

var (
	_ userRepo.UserRepository               = (*UserRepo)(nil)
	_ doctorRepo.DoctorRepository           = (*DoctorRepo)(nil)
	_ scheduleRepo.ScheduleRepository       = (*ScheduleRepo)(nil)
	_ appointmentRepo.AppointmentRepository = (*AppointmentRepo)(nil)
	_ chatRepo.ChatRepository               = (*ChatRepo)(nil)
)
