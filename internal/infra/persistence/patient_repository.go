// Package persistence implements the domain repositories on top of the record
// store client. The repositories translate entities to store rows and store
// failures to domain errors; they do not decide authorization or validation.
package persistence

import (
	"context"
	"strings"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/repository"
	"afya/internal/domain/store"
	"afya/internal/errors"

	"github.com/google/uuid"
)

type patientRepository struct {
	client store.Client
}

// NewPatientRepository creates a patient repository backed by the record store.
func NewPatientRepository(client store.Client) repository.PatientRepository {
	return &patientRepository{client: client}
}

// List retrieves patient records matching the filter, most recently created first.
func (r *patientRepository) List(ctx context.Context, filter repository.PatientFilter) ([]*entity.PatientRecord, error) {
	query := store.Query{
		Order: &store.Order{Column: "created_at", Descending: true},
	}

	if substring := strings.TrimSpace(filter.Substring); substring != "" {
		query.Filter.Any = []store.Cond{
			{Column: "full_name", Op: store.OpContainsFold, Value: substring},
			{Column: "patient_id", Op: store.OpContainsFold, Value: substring},
			{Column: "county", Op: store.OpContainsFold, Value: substring},
		}
	}

	rows, err := r.client.Select(ctx, store.CollectionPatients, query)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "list patients")
	}

	records := make([]*entity.PatientRecord, len(rows))
	for i, row := range rows {
		records[i] = patientFromRow(row)
	}

	return records, nil
}

// FindByID retrieves a single patient record by its store id.
func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PatientRecord, error) {
	query := store.Query{
		Filter: store.Filter{All: []store.Cond{{Column: "id", Op: store.OpEq, Value: id}}},
	}

	rows, err := r.client.Select(ctx, store.CollectionPatients, query)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "find patient")
	}
	if len(rows) == 0 {
		return nil, repository.ErrPatientNotFound
	}

	return patientFromRow(rows[0]), nil
}

// Create persists a new record and returns it with store-assigned columns.
func (r *patientRepository) Create(ctx context.Context, record *entity.PatientRecord) (*entity.PatientRecord, error) {
	row := patientToRow(record)
	row["created_by"] = record.CreatedBy

	stored, err := r.client.Insert(ctx, store.CollectionPatients, row)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "create patient")
	}

	return patientFromRow(stored), nil
}

// Update overwrites every mutable field of the record with the given id.
// The creation audit columns are never part of the patch.
func (r *patientRepository) Update(ctx context.Context, id uuid.UUID, record *entity.PatientRecord) (*entity.PatientRecord, error) {
	stored, err := r.client.Update(ctx, store.CollectionPatients, id, patientToRow(record))
	if err != nil {
		if errors.Is(err, store.ErrNoRows) {
			return nil, repository.ErrPatientNotFound
		}

		return nil, domainerrors.NewTransportError(err, "update patient")
	}

	return patientFromRow(stored), nil
}

// Delete permanently removes the record with the given id.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter := store.Filter{All: []store.Cond{{Column: "id", Op: store.OpEq, Value: id}}}

	if err := r.client.Delete(ctx, store.CollectionPatients, filter, true); err != nil {
		if errors.Is(err, store.ErrNoRows) {
			return repository.ErrPatientNotFound
		}

		return domainerrors.NewTransportError(err, "delete patient")
	}

	return nil
}

// patientToRow maps the mutable fields of a record to store columns.
func patientToRow(record *entity.PatientRecord) store.Row {
	return store.Row{
		"patient_id":              record.PatientID,
		"full_name":               record.FullName,
		"date_of_birth":           record.DateOfBirth,
		"gender":                  string(record.Gender),
		"county":                  record.County,
		"sub_county":              record.SubCounty,
		"ward":                    record.Ward,
		"village":                 record.Village,
		"phone_number":            record.PhoneNumber,
		"email":                   record.Email,
		"blood_type":              record.BloodType,
		"allergies":               record.Allergies,
		"chronic_conditions":      record.ChronicConditions,
		"emergency_contact_name":  record.EmergencyContactName,
		"emergency_contact_phone": record.EmergencyContactPhone,
		"notes":                   record.Notes,
	}
}

func patientFromRow(row store.Row) *entity.PatientRecord {
	return &entity.PatientRecord{
		ID:          row.UUID("id"),
		PatientID:   row.String("patient_id"),
		FullName:    row.String("full_name"),
		DateOfBirth: row.Time("date_of_birth"),
		Gender:      entity.Gender(row.String("gender")),
		County:      row.String("county"),

		SubCounty:             row.String("sub_county"),
		Ward:                  row.String("ward"),
		Village:               row.String("village"),
		PhoneNumber:           row.String("phone_number"),
		Email:                 row.String("email"),
		BloodType:             row.String("blood_type"),
		Allergies:             row.String("allergies"),
		ChronicConditions:     row.String("chronic_conditions"),
		EmergencyContactName:  row.String("emergency_contact_name"),
		EmergencyContactPhone: row.String("emergency_contact_phone"),
		Notes:                 row.String("notes"),

		CreatedBy: row.UUID("created_by"),
		CreatedAt: row.Time("created_at"),
	}
}
