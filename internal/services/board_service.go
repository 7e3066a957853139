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

var (
	ErrBoardNotFound     = errors.New("board not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNameRequired      = errors.New("name is required")
)

// BoardService handles board business logic.
type BoardService struct {
	boardRepo repository.BoardRepository
	engine    *ordering.Engine
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, engine *ordering.Engine) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		engine:    engine,
	}
}

// CreateBoard creates a board at the front of its workspace: new
// boards get order min-1 while columns and issues append at the end.
func (s *BoardService) CreateBoard(name, workspaceID string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	position, err := s.engine.BoardCreatePosition(workspaceID)
	if err != nil {
		if errors.Is(err, ordering.ErrContainerNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to compute board position: %w", err)
	}

	board := &models.Board{
		Name:        strings.TrimSpace(name),
		WorkspaceID: workspaceID,
		Order:       position,
	}

	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// GetBoard returns a board with its columns in order.
func (s *BoardService) GetBoard(id string) (*models.Board, error) {
	board, err := s.boardRepo.FindByIDWithColumns(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// GetBoardFull returns the board with ordered columns, ordered issues
// and assignees, the payload a kanban client renders from.
func (s *BoardService) GetBoardFull(id string) (*models.Board, error) {
	board, err := s.boardRepo.FindFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// ListBoards lists a workspace's boards in order.
func (s *BoardService) ListBoards(workspaceID string) ([]models.Board, error) {
	boards, err := s.boardRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// RenameBoard updates a board's name.
func (s *BoardService) RenameBoard(id, name string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	board.Name = strings.TrimSpace(name)
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// DeleteBoard removes a board; without allowCascade a board that
// still has columns is rejected.
func (s *BoardService) DeleteBoard(id string, allowCascade bool) error {
	return s.engine.DeleteBoard(id, allowCascade)
}
