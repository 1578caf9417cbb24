package model

import "github.com/google/uuid"

// UserRoleModel is the GORM model for the user_roles collection. The
// composite primary key keeps one row per (user, role) pair.
type UserRoleModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Role   string    `gorm:"column:role;size:32;primaryKey"`
}

// TableName specifies the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
