// Seeds a development database with an admin, a few doctors and a week of slots.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"curabot/config"
	"curabot/database"
	appointmentRepo "curabot/database/repository/appointment"
	doctorRepo "curabot/database/repository/doctor"
	scheduleRepo "curabot/database/repository/schedule"
	userRepoPkg "curabot/database/repository/user"
	"curabot/models"
	"curabot/services/booking"
	"curabot/services/doctor"
	"curabot/services/user"
	"curabot/utils"
)

type seedDoctor struct {
	Name          string
	Email         string
	Speciality    string
	Qualification string
	Overview      string
	Expertise     []string
}

var seedDoctors = []seedDoctor{
	{"Dr. Alice Mwangi", "alice@curabot.dev", "General Physician", "MBBS", "Primary care for adults and children.", []string{"fever", "cold", "general checkup"}},
	{"Dr. Brian Otieno", "brian@curabot.dev", "Cardiologist", "MBBS, MD (Cardiology)", "Heart health and blood pressure management.", []string{"chest pain", "hypertension", "palpitations"}},
	{"Dr. Carol Njeri", "carol@curabot.dev", "Dermatologist", "MBBS, MD (Dermatology)", "Skin, hair and nail conditions.", []string{"rash", "acne", "eczema"}},
	{"Dr. David Kamau", "david@curabot.dev", "Neurologist", "MBBS, DM (Neurology)", "Headaches, migraines and nerve disorders.", []string{"headache", "migraine", "dizziness"}},
}

const seedPassword = "password123"

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	database.InitDB()
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	users := userRepoPkg.NewMongoUserRepo(db)
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	schedules := scheduleRepo.NewMongoScheduleRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)

	userService := &user.DefaultUserService{Repo: users, Logger: logger}
	doctorService := &doctor.DefaultDoctorService{Doctors: doctors, Users: users, Appointments: appointments, Logger: logger}
	bookingService := &booking.DefaultBookingService{
		Doctors:      doctors,
		Schedules:    schedules,
		Appointments: appointments,
		Users:        users,
		Logger:       logger,
	}

	if _, err := register(ctx, userService, "CuraBot Admin", "admin@curabot.dev", models.RoleAdmin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if _, err := register(ctx, userService, "Jane Patient", "jane@curabot.dev", models.RolePatient); err != nil {
		log.Fatalf("Failed to seed patient: %v", err)
	}

	today := utils.Today(time.Now())
	for _, sd := range seedDoctors {
		account, err := register(ctx, userService, sd.Name, sd.Email, models.RoleDoctor)
		if err != nil {
			log.Fatalf("Failed to seed doctor user %s: %v", sd.Email, err)
		}
		if _, err := doctorService.AddDoctor(ctx, models.DoctorInput{
			UserID:        account.ID,
			Name:          sd.Name,
			Speciality:    sd.Speciality,
			Qualification: sd.Qualification,
			Overview:      sd.Overview,
			Expertise:     sd.Expertise,
		}); err != nil && !errors.Is(err, doctor.ErrDoctorExists) {
			log.Fatalf("Failed to seed doctor profile %s: %v", sd.Email, err)
		}

		for i := 1; i <= 7; i++ {
			in := models.AvailabilityInput{
				Date:      today.AddDate(0, 0, i).Format("2006-01-02"),
				StartTime: "09:00",
				EndTime:   "12:00",
				Interval:  30,
			}
			if _, err := bookingService.SetAvailability(ctx, account.ID, in); err != nil {
				log.Fatalf("Failed to seed availability for %s on %s: %v", sd.Email, in.Date, err)
			}
		}
		fmt.Printf("Seeded %s (%s)\n", sd.Name, sd.Speciality)
	}

	if err := database.Disconnect(ctx); err != nil {
		log.Printf("Disconnect failed: %v", err)
	}
	fmt.Printf("Done. All seeded accounts use password %q\n", seedPassword)
}

// register creates the account, or logs in when it already exists, and returns the public user.
func register(ctx context.Context, svc *user.DefaultUserService, name, email, role string) (*models.PublicUser, error) {
	resp, err := svc.Register(ctx, user.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: seedPassword,
		Role:     role,
	}, models.RoleAdmin)
	if errors.Is(err, user.ErrUserExists) {
		resp, err = svc.Login(ctx, email, seedPassword)
	}
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}
