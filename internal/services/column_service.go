package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/repository"
	"gorm.io/gorm"
)

var ErrColumnNotFound = errors.New("column not found")

// ColumnService handles board-column business logic.
type ColumnService struct {
	columnRepo repository.ColumnRepository
	engine     *ordering.Engine
}

// NewColumnService creates a new ColumnService.
func NewColumnService(columnRepo repository.ColumnRepository, engine *ordering.Engine) *ColumnService {
	return &ColumnService{
		columnRepo: columnRepo,
		engine:     engine,
	}
}

// CreateColumn appends a column at the end of its board.
func (s *ColumnService) CreateColumn(name, boardID string) (*models.BoardColumn, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	position, err := s.engine.AppendPosition(ordering.BoardContainer(boardID))
	if err != nil {
		if errors.Is(err, ordering.ErrContainerNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to compute column position: %w", err)
	}

	column := &models.BoardColumn{
		Name:    strings.TrimSpace(name),
		BoardID: boardID,
		Order:   position,
	}

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return column, nil
}

// ListColumns lists a board's columns in order, with their issues.
func (s *ColumnService) ListColumns(boardID string) ([]models.BoardColumn, error) {
	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// RenameColumn updates a column's name.
func (s *ColumnService) RenameColumn(id, name string) (*models.BoardColumn, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	column, err := s.columnRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	column.Name = strings.TrimSpace(name)
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

// DeleteColumn removes a column; a column that still has issues
// requires allowCascade. Surviving siblings are resequenced.
func (s *ColumnService) DeleteColumn(id string, allowCascade bool) error {
	return s.engine.DeleteColumn(id, allowCascade)
}

// ReorderIssues applies a drag-and-drop ordering of issues inside one
// column. The list may be partial: clients only know the ids local to
// the column being dropped into, so unnamed issues keep their prior
// relative order after the named ones, and an issue dragged in from
// another column is adopted.
func (s *ColumnService) ReorderIssues(columnID string, issueIDs []string) error {
	return s.engine.ReorderWithin(ordering.ColumnContainer(columnID), issueIDs, ordering.PolicyPartial)
}

// ReorderColumns applies a full ordering of a board's columns; every
// existing column must be named exactly once.
func (s *ColumnService) ReorderColumns(boardID string, columnIDs []string) error {
	return s.engine.ReorderWithin(ordering.BoardContainer(boardID), columnIDs, ordering.PolicyFull)
}
