package repository

import (
	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

func (r *GormWorkspaceRepository) Create(workspace *models.Workspace) error {
	return r.db.Create(workspace).Error
}

func (r *GormWorkspaceRepository) FindByID(id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *GormWorkspaceRepository) ListByOrganization(orgID string) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	if err := r.db.Where("organization_id = ?", orgID).
		Order("created_at asc").
		Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *GormWorkspaceRepository) Update(workspace *models.Workspace) error {
	return r.db.Save(workspace).Error
}
