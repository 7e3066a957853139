package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/repository"
	"gorm.io/gorm"
)

// WorkspaceService handles workspace business logic.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	orgRepo       repository.OrganizationRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, orgRepo repository.OrganizationRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		orgRepo:       orgRepo,
	}
}

// CreateWorkspace creates a workspace within an organization.
func (s *WorkspaceService) CreateWorkspace(name, orgID string) (*models.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	workspace := &models.Workspace{
		Name:           strings.TrimSpace(name),
		OrganizationID: orgID,
	}

	if err := s.workspaceRepo.Create(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspace returns one workspace.
func (s *WorkspaceService) GetWorkspace(id string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	return workspace, nil
}

// ListWorkspaces lists an organization's workspaces.
func (s *WorkspaceService) ListWorkspaces(orgID string) ([]models.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}
