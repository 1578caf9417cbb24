package usecase

import (
	"context"

	"afya/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientUsecase defines the interface for patient record business operations.
// Every authenticated staff member may call these; administrative gating
// applies only to role management, not to clinical records.
type PatientUsecase interface {
	// ListPatients retrieves records matching the search term, most recently
	// created first. A blank term returns everything.
	ListPatients(ctx context.Context, searchTerm string) ([]*entity.PatientRecord, error)

	// GetPatient retrieves a single record by its store id.
	GetPatient(ctx context.Context, id uuid.UUID) (*entity.PatientRecord, error)

	// CreatePatient validates the input, stamps the acting user as creator and
	// persists a new record.
	CreatePatient(ctx context.Context, actorID uuid.UUID, input *PatientInput) (*entity.PatientRecord, error)

	// UpdatePatient validates the input and overwrites every mutable field of
	// the record. Optional fields absent from the input are blanked.
	UpdatePatient(ctx context.Context, id uuid.UUID, input *PatientInput) (*entity.PatientRecord, error)

	// DeletePatient permanently removes the record.
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// PatientInput carries a full patient submission. Updates resend the whole
// form, so an absent optional field means "clear it", not "keep it".
type PatientInput struct {
	PatientID   string `json:"patient_id" validate:"required,max=50"`
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	County      string `json:"county" validate:"required,max=50"`

	SubCounty             string `json:"sub_county,omitempty" validate:"max=50"`
	Ward                  string `json:"ward,omitempty" validate:"max=50"`
	Village               string `json:"village,omitempty" validate:"max=50"`
	PhoneNumber           string `json:"phone_number,omitempty" validate:"max=15"`
	Email                 string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	BloodType             string `json:"blood_type,omitempty" validate:"max=5"`
	Allergies             string `json:"allergies,omitempty" validate:"max=500"`
	ChronicConditions     string `json:"chronic_conditions,omitempty" validate:"max=500"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty" validate:"max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" validate:"max=15"`
	Notes                 string `json:"notes,omitempty" validate:"max=1000"`
}
