package persistence

import (
	"context"
	"testing"
	"time"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/repository"
	"afya/internal/domain/store"
	"afya/internal/errors"
	"afya/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPatient(st *memory.Store, name, patientID, county string, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	st.Seed(store.CollectionPatients, store.Row{
		"id":            id,
		"patient_id":    patientID,
		"full_name":     name,
		"date_of_birth": time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		"gender":        "Female",
		"county":        county,
		"created_by":    uuid.New(),
		"created_at":    createdAt,
	})

	return id
}

func TestPatientRepositoryList(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", base)
	seedPatient(st, "Brian Otieno", "PT-002", "Kisumu", base.Add(2*time.Hour))
	seedPatient(st, "Cynthia Moraa", "PT-003", "Nakuru", base.Add(time.Hour))

	records, err := repo.List(context.Background(), repository.PatientFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Brian Otieno", records[0].FullName)
	assert.Equal(t, "Cynthia Moraa", records[1].FullName)
	assert.Equal(t, "Amina Wanjiru", records[2].FullName)
}

func TestPatientRepositoryListSubstring(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)
	now := time.Now()

	seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", now)
	seedPatient(st, "Brian Otieno", "PT-002", "Kisumu", now)

	tests := []struct {
		name      string
		substring string
		want      []string
	}{
		{name: "matches full name case-insensitively", substring: "amina", want: []string{"Amina Wanjiru"}},
		{name: "matches patient id", substring: "pt-002", want: []string{"Brian Otieno"}},
		{name: "matches county", substring: "nairo", want: []string{"Amina Wanjiru"}},
		{name: "one hit per record across fields", substring: "PT-0", want: []string{"Amina Wanjiru", "Brian Otieno"}},
		{name: "no match", substring: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := repo.List(context.Background(), repository.PatientFilter{Substring: tt.substring})
			require.NoError(t, err)

			var names []string
			for _, record := range records {
				names = append(names, record.FullName)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestPatientRepositoryFindByID(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)

	id := seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", time.Now())

	record, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "Amina Wanjiru", record.FullName)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
}

func TestPatientRepositoryCreate(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)
	creator := uuid.New()

	record, err := repo.Create(context.Background(), &entity.PatientRecord{
		PatientID:   "PT-100",
		FullName:    "Dennis Kiprop",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderMale,
		County:      "Uasin Gishu",
		CreatedBy:   creator,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, creator, record.CreatedBy)
	assert.Equal(t, "Dennis Kiprop", record.FullName)
}

func TestPatientRepositoryUpdate(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)

	id := seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", time.Now())

	updated, err := repo.Update(context.Background(), id, &entity.PatientRecord{
		PatientID:   "PT-001",
		FullName:    "Amina W. Kamau",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
		County:      "Nairobi",
		PhoneNumber: "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina W. Kamau", updated.FullName)
	assert.Equal(t, "0712345678", updated.PhoneNumber)
	// Fields absent from the submission are overwritten with blanks.
	assert.Empty(t, updated.Notes)

	_, err = repo.Update(context.Background(), uuid.New(), &entity.PatientRecord{})
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
}

func TestPatientRepositoryUpdateKeepsAudit(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)

	id := seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", time.Now())
	before, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), id, &entity.PatientRecord{
		PatientID:   "PT-001",
		FullName:    "Amina Wanjiru",
		DateOfBirth: before.DateOfBirth,
		Gender:      entity.GenderFemale,
		County:      "Mombasa",
		CreatedBy:   uuid.New(), // must be ignored
	})
	require.NoError(t, err)

	assert.Equal(t, before.CreatedBy, updated.CreatedBy)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestPatientRepositoryDelete(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)

	id := seedPatient(st, "Amina Wanjiru", "PT-001", "Nairobi", time.Now())

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), repository.ErrPatientNotFound)
}

func TestPatientRepositoryTransportFailure(t *testing.T) {
	st := memory.NewStore()
	repo := NewPatientRepository(st)
	st.Fail(errors.New("connection refused"))

	_, err := repo.List(context.Background(), repository.PatientFilter{})
	require.Error(t, err)

	var transportErr *domainerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "STORE_UNAVAILABLE", transportErr.ErrorCode())
}
