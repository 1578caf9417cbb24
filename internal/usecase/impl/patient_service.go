package impl

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/repository"
	"afya/internal/domain/service"
	"afya/internal/errors"
	"afya/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dateOfBirthLayout = "2006-01-02"

// patientService implements the PatientUsecase interface.
type patientService struct {
	patientRepo repository.PatientRepository
	cache       service.QueryCache
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewPatientService is the constructor for patientService.
func NewPatientService(
	patientRepo repository.PatientRepository,
	cache service.QueryCache,
	logger *slog.Logger,
) usecase.PatientUsecase {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report offending fields by their store column spelling.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &patientService{
		patientRepo: patientRepo,
		cache:       cache,
		validate:    validate,
		logger:      logger,
	}
}

// ListPatients retrieves records matching the search term, most recently
// created first.
func (srv *patientService) ListPatients(ctx context.Context, searchTerm string) ([]*entity.PatientRecord, error) {
	searchTerm = strings.TrimSpace(searchTerm)
	key := service.NewCacheKey(service.OpPatients, searchTerm)

	return service.Fetch(ctx, srv.cache, key, func(ctx context.Context) ([]*entity.PatientRecord, error) {
		return srv.patientRepo.List(ctx, repository.PatientFilter{Substring: searchTerm})
	})
}

// GetPatient retrieves a single record by its store id.
func (srv *patientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.PatientRecord, error) {
	key := service.NewCacheKey(service.OpPatient, id.String())

	record, err := service.Fetch(ctx, srv.cache, key, func(ctx context.Context) (*entity.PatientRecord, error) {
		return srv.patientRepo.FindByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, domainerrors.ErrPatientNotFound
		}

		return nil, err
	}

	return record, nil
}

// CreatePatient validates the input, stamps the acting user as creator and
// persists a new record.
func (srv *patientService) CreatePatient(ctx context.Context, actorID uuid.UUID, input *usecase.PatientInput) (*entity.PatientRecord, error) {
	record, err := srv.toRecord(input)
	if err != nil {
		return nil, err
	}
	record.CreatedBy = actorID

	created, err := srv.patientRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	srv.logger.Info("patient record created", "id", created.ID, "createdBy", actorID)
	srv.invalidatePatientViews(nil)

	return created, nil
}

// UpdatePatient validates the input and overwrites every mutable field of the
// record. Optional fields absent from the input are blanked.
func (srv *patientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *usecase.PatientInput) (*entity.PatientRecord, error) {
	record, err := srv.toRecord(input)
	if err != nil {
		return nil, err
	}

	updated, err := srv.patientRepo.Update(ctx, id, record)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, domainerrors.ErrPatientNotFound
		}

		return nil, err
	}

	srv.logger.Info("patient record updated", "id", id)
	srv.invalidatePatientViews(&id)

	return updated, nil
}

// DeletePatient permanently removes the record.
func (srv *patientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := srv.patientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return domainerrors.ErrPatientNotFound
		}

		return err
	}

	srv.logger.Info("patient record deleted", "id", id)
	srv.invalidatePatientViews(&id)

	return nil
}

// invalidatePatientViews marks every cached view derived from the patient
// collection stale: all listings, the dashboard figures and, when known, the
// single-record view of the mutated id.
func (srv *patientService) invalidatePatientViews(id *uuid.UUID) {
	predicates := []service.KeyPredicate{
		service.ForOperation(service.OpPatients),
		service.ForOperation(service.OpStats),
	}
	if id != nil {
		predicates = append(predicates, service.ForKey(service.NewCacheKey(service.OpPatient, id.String())))
	}

	srv.cache.Invalidate(service.AnyOf(predicates...))
}

// toRecord trims, validates and converts a submission. Validation happens
// before any store call, so a rejected submission never reaches the network.
func (srv *patientService) toRecord(input *usecase.PatientInput) (*entity.PatientRecord, error) {
	trimmed := *input
	trimFields(&trimmed)

	if err := srv.validate.Struct(&trimmed); err != nil {
		return nil, asValidationError(err)
	}

	dateOfBirth, err := time.Parse(dateOfBirthLayout, trimmed.DateOfBirth)
	if err != nil {
		return nil, domainerrors.NewValidationError("date_of_birth", "must be a valid date in YYYY-MM-DD form")
	}

	return &entity.PatientRecord{
		PatientID:   trimmed.PatientID,
		FullName:    trimmed.FullName,
		DateOfBirth: dateOfBirth,
		Gender:      entity.Gender(trimmed.Gender),
		County:      trimmed.County,

		SubCounty:             trimmed.SubCounty,
		Ward:                  trimmed.Ward,
		Village:               trimmed.Village,
		PhoneNumber:           trimmed.PhoneNumber,
		Email:                 trimmed.Email,
		BloodType:             trimmed.BloodType,
		Allergies:             trimmed.Allergies,
		ChronicConditions:     trimmed.ChronicConditions,
		EmergencyContactName:  trimmed.EmergencyContactName,
		EmergencyContactPhone: trimmed.EmergencyContactPhone,
		Notes:                 trimmed.Notes,
	}, nil
}

func trimFields(input *usecase.PatientInput) {
	v := reflect.ValueOf(input).Elem()
	for i := range v.NumField() {
		field := v.Field(i)
		if field.Kind() == reflect.String {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
}

// asValidationError maps the first offending field to a field-attributed
// domain error.
func asValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid patient submission")
	}

	fe := fieldErrors[0]

	return domainerrors.NewValidationError(fe.Field(), validationReason(fe))
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datetime":
		return "must be a valid date in YYYY-MM-DD form"
	case "oneof":
		return "must be one of Male, Female or Other"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
