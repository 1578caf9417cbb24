package model

import "github.com/google/uuid"

// ProfileModel is the GORM model for the profiles collection. Profiles are
// provisioned by the external identity system; this service only reads them.
type ProfileModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name;size:100"`
	Email        string    `gorm:"column:email;size:255"`
	County       string    `gorm:"column:county;size:50"`
	FacilityName string    `gorm:"column:facility_name;size:100"`
}

// TableName specifies the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
