package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardColumn is an ordered container of issues within a board.
// "Column" alone collides with too many SQL concepts to be a table name.
type BoardColumn struct {
	ID        string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	BoardID   string         `gorm:"type:varchar(36);not null;index" json:"board_id"`
	Order     int            `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Board  Board   `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Issues []Issue `gorm:"foreignKey:ColumnID" json:"issues,omitempty"`
}

func (c *BoardColumn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
