package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/dto"
	apierrors "github.com/hinagiku/kanban-api/internal/errors"
	"github.com/hinagiku/kanban-api/internal/services"
)

type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// CreateWorkspace creates a new workspace inside an organization.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	type CreateWorkspaceRequest struct {
		Name  string `json:"name" binding:"required"`
		OrgID string `json:"orgId" binding:"required"`
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(req.Name, req.OrgID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceDTO(*workspace))
}

// GetWorkspace returns a single workspace
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	workspace, err := h.workspaceService.GetWorkspace(c.Param("id"))
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace))
}

// ListWorkspaces returns all workspaces of an organization
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	orgID := c.Query("orgId")
	if orgID == "" {
		apierrors.BadRequest(c, "orgId is required")
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(orgID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	workspaceDTOs := make([]dto.WorkspaceDTO, len(workspaces))
	for i, w := range workspaces {
		workspaceDTOs[i] = dto.ToWorkspaceDTO(w)
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": workspaceDTOs,
	})
}

func respondWorkspaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
