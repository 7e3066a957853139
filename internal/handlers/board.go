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

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a board at the front of its workspace.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	type CreateBoardRequest struct {
		Name        string `json:"name" binding:"required"`
		WorkspaceID string `json:"workspaceId" binding:"required"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(req.Name, req.WorkspaceID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns a workspace's boards in order
func (h *BoardHandler) ListBoards(c *gin.Context) {
	workspaceID := c.Query("workspaceId")
	if workspaceID == "" {
		apierrors.BadRequest(c, "workspaceId is required")
		return
	}

	boards, err := h.boardService.ListBoards(workspaceID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": dto.ToBoardDTOs(boards),
	})
}

// GetBoard returns a board with its columns
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.boardService.GetBoard(c.Param("id"))
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// GetBoardFull returns the board with ordered columns, issues and
// assignees. A vanished board yields {"deleted": true} so a client
// polling an open board can drop it instead of erroring.
func (h *BoardHandler) GetBoardFull(c *gin.Context) {
	board, err := h.boardService.GetBoardFull(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBoardNotFound) {
			c.JSON(http.StatusOK, gin.H{"deleted": true})
			return
		}
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// UpdateBoard renames a board
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	type UpdateBoardRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.RenameBoard(c.Param("id"), req.Name)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard deletes a board. Without cascade=true a board that
// still has columns is rejected with DELETE_RESTRICTED.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	if err := h.boardService.DeleteBoard(c.Param("id"), cascadeRequested(c)); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

func cascadeRequested(c *gin.Context) bool {
	switch c.Query("cascade") {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, ordering.ErrContainerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, ordering.ErrDeleteRestricted):
		apierrors.DeleteRestricted(c, "Board still has columns")
	case errors.Is(err, ordering.ErrStoreUnavailable):
		apierrors.Unavailable(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
