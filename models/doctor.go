package models

import "time"

// Doctor is the public profile linked to a user with the doctor role.
type Doctor struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Name          string    `bson:"name" json:"name"`
	ProfilePic    string    `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Speciality    string    `bson:"speciality" json:"speciality"`
	Qualification string    `bson:"qualification" json:"qualification"`
	Overview      string    `bson:"overview" json:"overview"`
	Expertise     []string  `bson:"expertise" json:"expertise"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// DoctorInput carries create/update fields; empty fields are left untouched on update.
type DoctorInput struct {
	UserID        string   `json:"userId"`
	Name          string   `json:"name"`
	ProfilePic    string   `json:"profilePic"`
	Speciality    string   `json:"speciality"`
	Qualification string   `json:"qualification"`
	Overview      string   `json:"overview"`
	Expertise     []string `json:"expertise"`
}
