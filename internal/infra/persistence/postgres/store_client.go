package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"afya/internal/domain/store"
	"afya/internal/errors"
	"afya/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// StoreClient implements store.Client on top of GORM. Reads are routed to
// replicas when the resolver has any registered; mutations always hit the
// primary.
type StoreClient struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewStoreClient creates the PostgreSQL-backed record store client.
func NewStoreClient(db *gorm.DB, logger *slog.Logger) store.Client {
	return &StoreClient{db: db, logger: logger}
}

// Select returns the rows of collection matching query, in query order.
func (c *StoreClient) Select(ctx context.Context, collection string, query store.Query) ([]store.Row, error) {
	tx := c.db.WithContext(ctx).Clauses(dbresolver.Read)

	switch collection {
	case store.CollectionPatients:
		return selectRows[model.PatientModel](tx, query, patientRow)
	case store.CollectionProfiles:
		return selectRows[model.ProfileModel](tx, query, profileRow)
	case store.CollectionUserRoles:
		return selectRows[model.UserRoleModel](tx, query, userRoleRow)
	default:
		return nil, errors.Errorf("select: unknown collection %q", collection)
	}
}

// Insert adds one row and returns it with store-assigned columns filled in.
func (c *StoreClient) Insert(ctx context.Context, collection string, row store.Row) (store.Row, error) {
	tx := c.db.WithContext(ctx).Clauses(dbresolver.Write)

	switch collection {
	case store.CollectionPatients:
		record := patientModelFromRow(row)
		if err := tx.Create(record).Error; err != nil {
			return nil, wrapMutationError(err, "insert patient")
		}

		return patientRow(record), nil
	case store.CollectionUserRoles:
		record := userRoleModelFromRow(row)
		if err := tx.Create(record).Error; err != nil {
			return nil, wrapMutationError(err, "insert user role")
		}

		return userRoleRow(record), nil
	default:
		return nil, errors.Errorf("insert: unsupported collection %q", collection)
	}
}

// Update patches the row with the given id and returns the stored result.
func (c *StoreClient) Update(ctx context.Context, collection string, id uuid.UUID, patch store.Row) (store.Row, error) {
	if collection != store.CollectionPatients {
		return nil, errors.Errorf("update: unsupported collection %q", collection)
	}

	tx := c.db.WithContext(ctx).Clauses(dbresolver.Write)

	res := tx.Model(&model.PatientModel{}).Where("id = ?", id).Updates(map[string]any(patch))
	if res.Error != nil {
		return nil, wrapMutationError(res.Error, "update patient")
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNoRows
	}

	var record model.PatientModel
	if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNoRows
		}

		return nil, errors.Wrap(err, "reload updated patient")
	}

	return patientRow(&record), nil
}

// Delete removes rows matching the filter.
func (c *StoreClient) Delete(ctx context.Context, collection string, filter store.Filter, atLeastOne bool) error {
	tx := c.db.WithContext(ctx).Clauses(dbresolver.Write)
	tx = applyFilter(tx, filter)

	var res *gorm.DB
	switch collection {
	case store.CollectionPatients:
		res = tx.Delete(&model.PatientModel{})
	case store.CollectionUserRoles:
		res = tx.Delete(&model.UserRoleModel{})
	default:
		return errors.Errorf("delete: unsupported collection %q", collection)
	}

	if res.Error != nil {
		return wrapMutationError(res.Error, "delete rows")
	}
	if res.RowsAffected == 0 && atLeastOne {
		return store.ErrNoRows
	}

	return nil
}

func selectRows[M any](tx *gorm.DB, query store.Query, toRow func(*M) store.Row) ([]store.Row, error) {
	tx = applyFilter(tx, query.Filter)
	if query.Order != nil {
		direction := "ASC"
		if query.Order.Descending {
			direction = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", query.Order.Column, direction))
	}

	var records []M
	if err := tx.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "select rows")
	}

	rows := make([]store.Row, len(records))
	for i := range records {
		rows[i] = toRow(&records[i])
	}

	return rows, nil
}

func applyFilter(tx *gorm.DB, filter store.Filter) *gorm.DB {
	for _, cond := range filter.All {
		tx = tx.Where(condExpr(cond), condValue(cond))
	}

	if len(filter.Any) > 0 {
		group := tx.Session(&gorm.Session{NewDB: true})
		or := group.Where(condExpr(filter.Any[0]), condValue(filter.Any[0]))
		for _, cond := range filter.Any[1:] {
			or = or.Or(condExpr(cond), condValue(cond))
		}
		tx = tx.Where(or)
	}

	return tx
}

func condExpr(cond store.Cond) string {
	if cond.Op == store.OpContainsFold {
		return fmt.Sprintf("%s ILIKE ?", cond.Column)
	}

	return fmt.Sprintf("%s = ?", cond.Column)
}

func condValue(cond store.Cond) any {
	if cond.Op == store.OpContainsFold {
		return fmt.Sprintf("%%%v%%", cond.Value)
	}

	return cond.Value
}

func wrapMutationError(err error, msg string) error {
	if isUniqueConstraintViolation(err) {
		return store.ErrConflict
	}
	if isForeignKeyConstraintViolation(err) {
		return errors.Wrap(err, msg+": referenced row missing")
	}

	return errors.Wrap(err, msg)
}

func patientRow(m *model.PatientModel) store.Row {
	return store.Row{
		"id":                      m.ID,
		"patient_id":              m.PatientID,
		"full_name":               m.FullName,
		"date_of_birth":           m.DateOfBirth,
		"gender":                  m.Gender,
		"county":                  m.County,
		"sub_county":              m.SubCounty,
		"ward":                    m.Ward,
		"village":                 m.Village,
		"phone_number":            m.PhoneNumber,
		"email":                   m.Email,
		"blood_type":              m.BloodType,
		"allergies":               m.Allergies,
		"chronic_conditions":      m.ChronicConditions,
		"emergency_contact_name":  m.EmergencyContactName,
		"emergency_contact_phone": m.EmergencyContactPhone,
		"notes":                   m.Notes,
		"created_by":              m.CreatedBy,
		"created_at":              m.CreatedAt,
	}
}

func patientModelFromRow(row store.Row) *model.PatientModel {
	return &model.PatientModel{
		ID:                    row.UUID("id"),
		PatientID:             row.String("patient_id"),
		FullName:              row.String("full_name"),
		DateOfBirth:           row.Time("date_of_birth"),
		Gender:                row.String("gender"),
		County:                row.String("county"),
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
		CreatedBy:             row.UUID("created_by"),
	}
}

func profileRow(m *model.ProfileModel) store.Row {
	return store.Row{
		"id":            m.ID,
		"full_name":     m.FullName,
		"email":         m.Email,
		"county":        m.County,
		"facility_name": m.FacilityName,
	}
}

func userRoleRow(m *model.UserRoleModel) store.Row {
	return store.Row{
		"user_id": m.UserID,
		"role":    m.Role,
	}
}

func userRoleModelFromRow(row store.Row) *model.UserRoleModel {
	return &model.UserRoleModel{
		UserID: row.UUID("user_id"),
		Role:   row.String("role"),
	}
}
