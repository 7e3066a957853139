package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/dto"
	apierrors "github.com/hinagiku/kanban-api/internal/errors"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/services"
)

type ColumnHandler struct {
	columnService *services.ColumnService
}

func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn appends a column at the end of its board.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	type CreateColumnRequest struct {
		Name    string `json:"name" binding:"required"`
		BoardID string `json:"boardId" binding:"required"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(req.Name, req.BoardID)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// ListColumns returns a board's columns in order
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	boardID := c.Query("boardId")
	if boardID == "" {
		apierrors.BadRequest(c, "boardId is required")
		return
	}

	columns, err := h.columnService.ListColumns(boardID)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": dto.ToColumnDTOs(columns),
	})
}

// UpdateColumn renames a column
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	type UpdateColumnRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.RenameColumn(c.Param("id"), req.Name)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn deletes a column. Without cascade=true a column that
// still has issues is rejected with DELETE_RESTRICTED.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	if err := h.columnService.DeleteColumn(c.Param("id"), cascadeRequested(c)); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Column deleted successfully",
	})
}

// ReorderIssues rearranges a column's issues. The list may be partial:
// named issues lead in the given order, the rest keep their relative
// order behind them, and issues named from other columns are adopted.
func (h *ColumnHandler) ReorderIssues(c *gin.Context) {
	type ReorderIssuesRequest struct {
		IssueIDs []string `json:"issueIds" binding:"required"`
	}

	var req ReorderIssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.columnService.ReorderIssues(c.Param("id"), req.IssueIDs); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issues reordered successfully",
	})
}

// ReorderColumns rearranges a board's columns. The list must name
// every column of the board exactly once.
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	type ReorderColumnsRequest struct {
		BoardID   string   `json:"boardId" binding:"required"`
		ColumnIDs []string `json:"columnIds" binding:"required"`
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.columnService.ReorderColumns(req.BoardID, req.ColumnIDs); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Columns reordered successfully",
	})
}

func respondColumnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, ordering.ErrContainerNotFound),
		errors.Is(err, ordering.ErrChildNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, ordering.ErrUnknownMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, ordering.ErrDeleteRestricted):
		apierrors.DeleteRestricted(c, "Column still has issues")
	case errors.Is(err, ordering.ErrStoreUnavailable):
		apierrors.Unavailable(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
