package dto

import (
	"time"

	"github.com/hinagiku/kanban-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code,omitempty"`
}

// WorkspaceDTO represents a workspace in API responses
type WorkspaceDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization, includeInviteCode bool) OrganizationDTO {
	dto := OrganizationDTO{
		ID:   org.ID,
		Name: org.Name,
	}
	if includeInviteCode {
		dto.InviteCode = org.InviteCode
	}
	return dto
}

// ToWorkspaceDTO converts a Workspace model to WorkspaceDTO
func ToWorkspaceDTO(workspace models.Workspace) WorkspaceDTO {
	return WorkspaceDTO{
		ID:             workspace.ID,
		Name:           workspace.Name,
		OrganizationID: workspace.OrganizationID,
		CreatedAt:      workspace.CreatedAt,
	}
}
