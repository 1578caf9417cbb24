package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the enumerated gender value recorded on a patient.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid checks if the Gender is one of the accepted values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// PatientRecord is the primary entity of the system: one registered patient.
//
// ID and CreatedAt are assigned by the store. CreatedBy is stamped once at
// creation and never changes afterwards; every other field may be rewritten by
// an authorized staff member.
type PatientRecord struct {
	ID          uuid.UUID // Store-assigned unique key.
	PatientID   string    // External patient identifier, unique per facility in practice.
	FullName    string
	DateOfBirth time.Time
	Gender      Gender
	County      string

	// Optional demographic and clinical fields. Blank means not recorded.
	SubCounty             string
	Ward                  string
	Village               string
	PhoneNumber           string
	Email                 string
	BloodType             string
	Allergies             string
	ChronicConditions     string
	EmergencyContactName  string
	EmergencyContactPhone string
	Notes                 string

	CreatedBy uuid.UUID // Identity that registered the record. Immutable.
	CreatedAt time.Time // Server-assigned creation timestamp.
}
