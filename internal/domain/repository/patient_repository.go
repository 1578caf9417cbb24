// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"afya/internal/domain/entity"
	"afya/internal/errors"

	"github.com/google/uuid"
)

// ErrPatientNotFound is a domain-specific error returned when a patient record is absent.
var ErrPatientNotFound = errors.New("patient record not found")

// PatientFilter narrows a patient listing. A blank substring means no filter.
type PatientFilter struct {
	// Substring is matched case-insensitively against the full name, the
	// external patient id and the county. No other fields are searched.
	Substring string
}

// PatientRepository defines the standard operations for patient record persistence.
// The application layer depends on this interface, not the concrete implementation.
type PatientRepository interface {
	// List retrieves patient records matching the filter, most recently
	// created first.
	List(ctx context.Context, filter PatientFilter) ([]*entity.PatientRecord, error)

	// FindByID retrieves a single patient record by its store id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PatientRecord, error)

	// Create persists a new record and returns it with store-assigned id and
	// creation timestamp filled in.
	Create(ctx context.Context, record *entity.PatientRecord) (*entity.PatientRecord, error)

	// Update overwrites every mutable field of the record with the given id.
	// Returns ErrPatientNotFound if the id no longer exists.
	Update(ctx context.Context, id uuid.UUID, record *entity.PatientRecord) (*entity.PatientRecord, error)

	// Delete permanently removes the record with the given id.
	// Returns ErrPatientNotFound if the id no longer exists.
	Delete(ctx context.Context, id uuid.UUID) error
}
