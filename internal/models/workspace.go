package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workspace struct {
	ID             string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	OrganizationID string         `gorm:"type:varchar(36);not null;index" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Boards       []Board      `gorm:"foreignKey:WorkspaceID" json:"boards,omitempty"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
