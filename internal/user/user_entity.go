package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// UsernameConstraint is the unique index on users.username. It only covers
// live rows, so a soft-deleted account does not hold its username.
const UsernameConstraint = "uq_users_username_live"

type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string         `gorm:"column:username;type:varchar(100);not null;uniqueIndex:uq_users_username_live,where:deleted_at IS NULL"`
	Password  string         `gorm:"column:password;type:text;not null"`
	Name      string         `gorm:"column:name;type:varchar(255)"`
	Role      string         `gorm:"column:role;type:varchar(50);not null;default:'employee'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
