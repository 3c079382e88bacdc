package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account holder. The password column only ever holds a
// bcrypt hash; the plaintext is stripped before the record is first written.
type User struct {
	ID          uuid.UUID `json:"pk" gorm:"type:char(36);primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName   string    `json:"first_name" gorm:"size:255"`
	LastName    string    `json:"last_name" gorm:"size:255"`
	Password    string    `json:"-" gorm:"size:255"`
	DateCreated time.Time `json:"date_created" gorm:"column:date_created;autoCreateTime"`
	LastUpdated time.Time `json:"last_updated" gorm:"column:last_updated;autoUpdateTime"`
}

// TableName overrides the gorm table name.
func (User) TableName() string { return "users" }

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
