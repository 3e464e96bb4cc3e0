package auth

import (
	"time"

	"github.com/google/uuid"
)

// User exists for authentication and authorization only; employee records
// reference it by id through CreatedBy/UpdatedBy.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
