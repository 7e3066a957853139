package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board is an ordered container of columns. Boards themselves are
// ordered within their workspace; new boards are prepended (order
// min-1) while columns and issues append.
type Board struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	WorkspaceID string         `gorm:"type:varchar(36);not null;index" json:"workspace_id"`
	Order       int            `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Workspace Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Columns   []BoardColumn `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
