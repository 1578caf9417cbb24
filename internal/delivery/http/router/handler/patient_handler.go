// Package handler contains the HTTP handlers of the service.
package handler

import (
	"net/http"
	"time"

	deliverycontext "afya/internal/delivery/context"
	"afya/internal/delivery/http/response"
	"afya/internal/domain/entity"
	"afya/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PatientHandler handles patient record endpoints.
type PatientHandler struct {
	patientUC usecase.PatientUsecase
}

// NewPatientHandler is the constructor for PatientHandler.
func NewPatientHandler(patientUC usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{patientUC: patientUC}
}

// patientResponse is the wire shape of one patient record.
type patientResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   string    `json:"patient_id"`
	FullName    string    `json:"full_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	County      string    `json:"county"`

	SubCounty             string `json:"sub_county,omitempty"`
	Ward                  string `json:"ward,omitempty"`
	Village               string `json:"village,omitempty"`
	PhoneNumber           string `json:"phone_number,omitempty"`
	Email                 string `json:"email,omitempty"`
	BloodType             string `json:"blood_type,omitempty"`
	Allergies             string `json:"allergies,omitempty"`
	ChronicConditions     string `json:"chronic_conditions,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	Notes                 string `json:"notes,omitempty"`

	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toPatientResponse(record *entity.PatientRecord) patientResponse {
	return patientResponse{
		ID:          record.ID,
		PatientID:   record.PatientID,
		FullName:    record.FullName,
		DateOfBirth: record.DateOfBirth.Format("2006-01-02"),
		Gender:      string(record.Gender),
		County:      record.County,

		SubCounty:             record.SubCounty,
		Ward:                  record.Ward,
		Village:               record.Village,
		PhoneNumber:           record.PhoneNumber,
		Email:                 record.Email,
		BloodType:             record.BloodType,
		Allergies:             record.Allergies,
		ChronicConditions:     record.ChronicConditions,
		EmergencyContactName:  record.EmergencyContactName,
		EmergencyContactPhone: record.EmergencyContactPhone,
		Notes:                 record.Notes,

		CreatedBy: record.CreatedBy,
		CreatedAt: record.CreatedAt,
	}
}

func toPatientResponses(records []*entity.PatientRecord) []patientResponse {
	responses := make([]patientResponse, len(records))
	for i, record := range records {
		responses[i] = toPatientResponse(record)
	}

	return responses
}

// ListPatients returns the records matching the optional search query.
func (h *PatientHandler) ListPatients(c echo.Context) error {
	records, err := h.patientUC.ListPatients(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPatientResponses(records), "")
}

// GetPatient returns one record by id.
func (h *PatientHandler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Patient id must be a UUID")
	}

	record, err := h.patientUC.GetPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPatientResponse(record), "")
}

// CreatePatient registers a new patient record.
func (h *PatientHandler) CreatePatient(c echo.Context) error {
	var input usecase.PatientInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "BINDING_ERROR", "Malformed request body")
	}

	record, err := h.patientUC.CreatePatient(c.Request().Context(), deliverycontext.GetUserID(c), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toPatientResponse(record), "Patient record created")
}

// UpdatePatient overwrites the record with the given id.
func (h *PatientHandler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Patient id must be a UUID")
	}

	var input usecase.PatientInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "BINDING_ERROR", "Malformed request body")
	}

	record, err := h.patientUC.UpdatePatient(c.Request().Context(), id, &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPatientResponse(record), "Patient record updated")
}

// DeletePatient removes the record with the given id.
func (h *PatientHandler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Patient id must be a UUID")
	}

	if err := h.patientUC.DeletePatient(c.Request().Context(), id); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Patient record deleted")
}
