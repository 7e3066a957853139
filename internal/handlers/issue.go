package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/dto"
	apierrors "github.com/hinagiku/kanban-api/internal/errors"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/repository"
	"github.com/hinagiku/kanban-api/internal/services"
	"github.com/hinagiku/kanban-api/internal/utils"
)

type IssueHandler struct {
	issueService *services.IssueService
}

func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// CreateIssue creates an issue, appended at the end of its column when
// one is given, otherwise in the workspace backlog.
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	type CreateIssueRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		WorkspaceID string     `json:"workspaceId" binding:"required"`
		ColumnID    *string    `json:"columnId"`
		AssigneeID  *string    `json:"assigneeId"`
		Status      string     `json:"status"`
		DueAt       *time.Time `json:"dueAt"`
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.CreateIssue(services.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		WorkspaceID: req.WorkspaceID,
		ColumnID:    req.ColumnID,
		AssigneeID:  req.AssigneeID,
		Status:      models.IssueStatus(req.Status),
		DueAt:       req.DueAt,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueDTO(*issue))
}

// ListIssues lists issues filtered by workspace, column, status or assignee
func (h *IssueHandler) ListIssues(c *gin.Context) {
	filter := repository.IssueFilter{
		WorkspaceID: c.Query("workspaceId"),
		ColumnID:    c.Query("columnId"),
		AssigneeID:  c.Query("assigneeId"),
	}
	if status := c.Query("status"); status != "" {
		st := models.IssueStatus(status)
		filter.Status = &st
	}

	page := utils.GetPaginationParams(c)
	issues, total, err := h.issueService.ListIssues(filter, page)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": dto.ToIssueDTOs(issues),
		"pagination": utils.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	})
}

// GetIssue returns one issue
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issue, err := h.issueService.GetIssue(c.Param("id"))
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// UpdateIssue applies a partial update. Sending columnId moves the
// issue: into another column at the requested position, or back to the
// backlog when columnId is an empty string.
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	type UpdateIssueRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		AssigneeID  *string    `json:"assigneeId"`
		DueAt       *time.Time `json:"dueAt"`
		ColumnID    *string    `json:"columnId"`
		Position    *int       `json:"position"`
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueAt:       req.DueAt,
		ColumnID:    req.ColumnID,
		Position:    req.Position,
	}
	if req.Status != nil {
		st := models.IssueStatus(*req.Status)
		input.Status = &st
	}

	issue, err := h.issueService.UpdateIssue(c.Param("id"), input)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// DeleteIssue removes an issue and keeps its column dense
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	if err := h.issueService.DeleteIssue(c.Param("id")); err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue deleted successfully",
	})
}

// GenerateIssues drafts issues from free-form text and files them into
// the workspace backlog.
func (h *IssueHandler) GenerateIssues(c *gin.Context) {
	type GenerateIssuesRequest struct {
		WorkspaceID string `json:"workspaceId" binding:"required"`
		Text        string `json:"text" binding:"required"`
	}

	var req GenerateIssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issues, err := h.issueService.GenerateIssues(c.Request.Context(), req.WorkspaceID, req.Text)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"issues": dto.ToIssueDTOs(issues),
	})
}

func respondIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, ordering.ErrContainerNotFound),
		errors.Is(err, ordering.ErrChildNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidIssueStatus),
		errors.Is(err, ordering.ErrUnknownMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.Unavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoIssuesGenerated):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, ordering.ErrStoreUnavailable):
		apierrors.Unavailable(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
