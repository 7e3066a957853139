package repository

import (
	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

func (r *GormColumnRepository) Create(column *models.BoardColumn) error {
	return r.db.Create(column).Error
}

func (r *GormColumnRepository) FindByID(id string) (*models.BoardColumn, error) {
	var column models.BoardColumn
	if err := r.db.First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByBoard lists a board's columns order ascending with their
// issues preloaded in order
func (r *GormColumnRepository) ListByBoard(boardID string) ([]models.BoardColumn, error) {
	var columns []models.BoardColumn
	if err := r.db.
		Preload("Issues", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" asc`)
		}).
		Where("board_id = ?", boardID).
		Order(`"order" asc`).
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *GormColumnRepository) Update(column *models.BoardColumn) error {
	return r.db.Save(column).Error
}
