package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssueStatusTodo  IssueStatus = "todo"
	IssueStatusDoing IssueStatus = "doing"
	IssueStatusDone  IssueStatus = "done"
)

// Issue always belongs to a workspace; ColumnID is nil for backlog
// issues that have not been placed on a board.
type Issue struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      IssueStatus    `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	WorkspaceID string         `gorm:"type:varchar(36);not null;index" json:"workspace_id"`
	ColumnID    *string        `gorm:"type:varchar(36);index" json:"column_id"`
	AssigneeID  *string        `gorm:"type:varchar(36)" json:"assignee_id"`
	DueAt       *time.Time     `json:"due_at"`
	Order       int            `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Workspace Workspace    `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Column    *BoardColumn `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignee  *User        `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
