package models

import (
	"time"

	"github.com/lib/pq"
)

// User represents a marketplace member. Users own materials, tools, and the
// projects they create.
type User struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	DisplayName  string         `gorm:"column:display_name;not null"`
	Location     *string        `gorm:"column:location"`
	Interests    pq.StringArray `gorm:"column:interests;type:text[]"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
