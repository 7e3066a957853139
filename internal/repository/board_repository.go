package repository

import (
	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

func (r *GormBoardRepository) FindByID(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByIDWithColumns loads the board and its columns order ascending
func (r *GormBoardRepository) FindByIDWithColumns(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" asc`)
		}).
		First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindFull loads the board with ordered columns, each carrying its
// ordered issues and their assignees. This backs GET /boards/:id/full.
func (r *GormBoardRepository) FindFull(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" asc`)
		}).
		Preload("Columns.Issues", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" asc, created_at asc`)
		}).
		Preload("Columns.Issues.Assignee").
		First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListByWorkspace lists boards of a workspace, order ascending, with
// ordered columns preloaded
func (r *GormBoardRepository) ListByWorkspace(workspaceID string) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" asc`)
		}).
		Where("workspace_id = ?", workspaceID).
		Order(`"order" asc`).
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}
