// Package model contains the GORM persistence models mirroring the record
// store collections.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientModel is the GORM model for the patients collection.
type PatientModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID   string    `gorm:"column:patient_id;size:50;not null"`
	FullName    string    `gorm:"column:full_name;size:100;not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Gender      string    `gorm:"column:gender;size:10;not null"`
	County      string    `gorm:"column:county;size:50;not null"`

	SubCounty             string `gorm:"column:sub_county;size:50"`
	Ward                  string `gorm:"column:ward;size:50"`
	Village               string `gorm:"column:village;size:50"`
	PhoneNumber           string `gorm:"column:phone_number;size:15"`
	Email                 string `gorm:"column:email;size:255"`
	BloodType             string `gorm:"column:blood_type;size:5"`
	Allergies             string `gorm:"column:allergies;size:500"`
	ChronicConditions     string `gorm:"column:chronic_conditions;size:500"`
	EmergencyContactName  string `gorm:"column:emergency_contact_name;size:100"`
	EmergencyContactPhone string `gorm:"column:emergency_contact_phone;size:15"`
	Notes                 string `gorm:"column:notes;size:1000"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM.
func (PatientModel) TableName() string {
	return "patients"
}
