package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template represents a mail template owned by exactly one user. Templates
// are never removed physically; Deleted marks them invisible to every read.
type Template struct {
	ID          uuid.UUID `json:"pk" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Body        string    `json:"body" gorm:"type:text;not null"`
	Subject     string    `json:"subject" gorm:"size:255;not null"`
	UserID      string    `json:"user_id" gorm:"size:36;index"`
	Deleted     bool      `json:"deleted" gorm:"default:false;index"`
	DateCreated time.Time `json:"date_created" gorm:"column:date_created;autoCreateTime"`
	LastUpdated time.Time `json:"last_updated" gorm:"column:last_updated;autoUpdateTime"`
}

// TableName overrides the gorm table name.
func (Template) TableName() string { return "templates" }

// BeforeCreate sets the UUID before creating the record.
func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
