package dto

import (
	"time"

	"github.com/hinagiku/kanban-api/internal/models"
)

// IssueDTO represents an issue in API responses
type IssueDTO struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      models.IssueStatus `json:"status"`
	WorkspaceID string             `json:"workspace_id"`
	ColumnID    *string            `json:"column_id"`
	Order       int                `json:"order"`
	DueAt       *time.Time         `json:"due_at"`
	Assignee    *UserDTO           `json:"assignee,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ColumnDTO represents a board column in API responses
type ColumnDTO struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	BoardID string     `json:"board_id"`
	Order   int        `json:"order"`
	Issues  []IssueDTO `json:"issues,omitempty"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	WorkspaceID string      `json:"workspace_id"`
	Order       int         `json:"order"`
	Columns     []ColumnDTO `json:"columns,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ToIssueDTO converts an Issue model to IssueDTO
func ToIssueDTO(issue models.Issue) IssueDTO {
	dto := IssueDTO{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      issue.Status,
		WorkspaceID: issue.WorkspaceID,
		ColumnID:    issue.ColumnID,
		Order:       issue.Order,
		DueAt:       issue.DueAt,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}

	// Include assignee if preloaded
	if issue.Assignee != nil && issue.Assignee.ID != "" {
		assignee := ToUserDTO(*issue.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToColumnDTO converts a BoardColumn model to ColumnDTO
func ToColumnDTO(column models.BoardColumn) ColumnDTO {
	dto := ColumnDTO{
		ID:      column.ID,
		Name:    column.Name,
		BoardID: column.BoardID,
		Order:   column.Order,
	}

	if len(column.Issues) > 0 {
		dto.Issues = make([]IssueDTO, len(column.Issues))
		for i, issue := range column.Issues {
			dto.Issues[i] = ToIssueDTO(issue)
		}
	}

	return dto
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	dto := BoardDTO{
		ID:          board.ID,
		Name:        board.Name,
		WorkspaceID: board.WorkspaceID,
		Order:       board.Order,
		CreatedAt:   board.CreatedAt,
	}

	if len(board.Columns) > 0 {
		dto.Columns = make([]ColumnDTO, len(board.Columns))
		for i, column := range board.Columns {
			dto.Columns[i] = ToColumnDTO(column)
		}
	}

	return dto
}

// ToIssueDTOs converts a slice of issues
func ToIssueDTOs(issues []models.Issue) []IssueDTO {
	dtos := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		dtos[i] = ToIssueDTO(issue)
	}
	return dtos
}

// ToColumnDTOs converts a slice of columns
func ToColumnDTOs(columns []models.BoardColumn) []ColumnDTO {
	dtos := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		dtos[i] = ToColumnDTO(column)
	}
	return dtos
}

// ToBoardDTOs converts a slice of boards
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	dtos := make([]BoardDTO, len(boards))
	for i, board := range boards {
		dtos[i] = ToBoardDTO(board)
	}
	return dtos
}
