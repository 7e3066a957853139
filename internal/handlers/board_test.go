package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/database"
	"github.com/hinagiku/kanban-api/internal/dto"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/repository"
	"github.com/hinagiku/kanban-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type kanbanTestEnv struct {
	db            *gorm.DB
	ws            models.Workspace
	boardHandler  *BoardHandler
	columnHandler *ColumnHandler
	issueHandler  *IssueHandler
}

func setupKanbanTestEnv(t *testing.T) kanbanTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Workspace{},
		&models.Board{},
		&models.BoardColumn{},
		&models.Issue{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	ws := models.Workspace{Name: "ws", OrganizationID: "org-1"}
	require.NoError(t, db.Create(&ws).Error)

	engine := ordering.NewEngine(db)
	boardService := services.NewBoardService(repository.NewBoardRepository(db), engine)
	columnService := services.NewColumnService(repository.NewColumnRepository(db), engine)
	issueService := services.NewIssueService(repository.NewIssueRepository(db), repository.NewWorkspaceRepository(db), engine, nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return kanbanTestEnv{
		db:            db,
		ws:            ws,
		boardHandler:  NewBoardHandler(boardService),
		columnHandler: NewColumnHandler(columnService),
		issueHandler:  NewIssueHandler(issueService),
	}
}

func (env kanbanTestEnv) router() *gin.Engine {
	r := gin.New()
	r.POST("/api/boards", env.boardHandler.CreateBoard)
	r.GET("/api/boards", env.boardHandler.ListBoards)
	r.GET("/api/boards/:id/full", env.boardHandler.GetBoardFull)
	r.DELETE("/api/boards/:id", env.boardHandler.DeleteBoard)
	r.POST("/api/columns", env.columnHandler.CreateColumn)
	r.POST("/api/columns/reorder", env.columnHandler.ReorderColumns)
	r.POST("/api/columns/:id/reorder", env.columnHandler.ReorderIssues)
	r.POST("/api/issues", env.issueHandler.CreateIssue)
	r.GET("/api/issues", env.issueHandler.ListIssues)
	r.PATCH("/api/issues/:id", env.issueHandler.UpdateIssue)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBoardHandler_CreateBoardPrepends(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	first := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":        "first",
		"workspaceId": env.ws.ID,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":        "second",
		"workspaceId": env.ws.ID,
	})
	require.Equal(t, http.StatusCreated, second.Code)

	// The newest board lists first: boards prepend while everything
	// else appends.
	list := doJSON(t, r, http.MethodGet, "/api/boards?workspaceId="+env.ws.ID, nil)
	require.Equal(t, http.StatusOK, list.Code)

	var response struct {
		Boards []dto.BoardDTO `json:"boards"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &response))
	require.Len(t, response.Boards, 2)
	require.Equal(t, "second", response.Boards[0].Name)
	require.Equal(t, "first", response.Boards[1].Name)
}

func TestBoardHandler_CreateBoardUnknownWorkspace(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":        "orphan",
		"workspaceId": "no-such-workspace",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoardHandler_GetBoardFullDeleted(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodGet, "/api/boards/vanished/full", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["deleted"])
}

func TestBoardHandler_DeleteBoardCascade(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	board := models.Board{Name: "doomed", WorkspaceID: env.ws.ID}
	require.NoError(t, env.db.Create(&board).Error)
	column := models.BoardColumn{Name: "col", BoardID: board.ID}
	require.NoError(t, env.db.Create(&column).Error)

	// Without cascade the populated board survives.
	w := doJSON(t, r, http.MethodDelete, "/api/boards/"+board.ID, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "DELETE_RESTRICTED")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/boards/%s?cascade=true", board.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestColumnHandler_ReorderIssuesPartial(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	board := models.Board{Name: "board", WorkspaceID: env.ws.ID}
	require.NoError(t, env.db.Create(&board).Error)
	column := models.BoardColumn{Name: "col", BoardID: board.ID}
	require.NoError(t, env.db.Create(&column).Error)

	ids := make([]string, 3)
	for i := range ids {
		issue := models.Issue{
			Title:       fmt.Sprintf("issue-%d", i),
			WorkspaceID: env.ws.ID,
			ColumnID:    &column.ID,
			Order:       i,
		}
		require.NoError(t, env.db.Create(&issue).Error)
		ids[i] = issue.ID
	}

	w := doJSON(t, r, http.MethodPost, "/api/columns/"+column.ID+"/reorder", gin.H{
		"issueIds": []string{ids[2]},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var issues []models.Issue
	require.NoError(t, env.db.Where("column_id = ?", column.ID).Order(`"order" asc`).Find(&issues).Error)
	require.Equal(t, ids[2], issues[0].ID)
	require.Equal(t, ids[0], issues[1].ID)
	require.Equal(t, ids[1], issues[2].ID)
}

func TestColumnHandler_ReorderColumnsRejectsPartialList(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	board := models.Board{Name: "board", WorkspaceID: env.ws.ID}
	require.NoError(t, env.db.Create(&board).Error)
	c0 := models.BoardColumn{Name: "c0", BoardID: board.ID, Order: 0}
	require.NoError(t, env.db.Create(&c0).Error)
	c1 := models.BoardColumn{Name: "c1", BoardID: board.ID, Order: 1}
	require.NoError(t, env.db.Create(&c1).Error)

	w := doJSON(t, r, http.MethodPost, "/api/columns/reorder", gin.H{
		"boardId":   board.ID,
		"columnIds": []string{c1.ID},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueHandler_UpdateMovesAcrossColumns(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	board := models.Board{Name: "board", WorkspaceID: env.ws.ID}
	require.NoError(t, env.db.Create(&board).Error)
	colA := models.BoardColumn{Name: "a", BoardID: board.ID, Order: 0}
	require.NoError(t, env.db.Create(&colA).Error)
	colB := models.BoardColumn{Name: "b", BoardID: board.ID, Order: 1}
	require.NoError(t, env.db.Create(&colB).Error)

	issue := models.Issue{Title: "moving", WorkspaceID: env.ws.ID, ColumnID: &colA.ID}
	require.NoError(t, env.db.Create(&issue).Error)
	stay := models.Issue{Title: "staying", WorkspaceID: env.ws.ID, ColumnID: &colB.ID}
	require.NoError(t, env.db.Create(&stay).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/issues/"+issue.ID, gin.H{
		"columnId": colB.ID,
		"position": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.ColumnID)
	require.Equal(t, colB.ID, *response.ColumnID)
	require.Equal(t, 0, response.Order)

	var displaced models.Issue
	require.NoError(t, env.db.First(&displaced, "id = ?", stay.ID).Error)
	require.Equal(t, 1, displaced.Order)
}

func TestIssueHandler_UpdateUnfilesToBacklog(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	board := models.Board{Name: "board", WorkspaceID: env.ws.ID}
	require.NoError(t, env.db.Create(&board).Error)
	column := models.BoardColumn{Name: "col", BoardID: board.ID}
	require.NoError(t, env.db.Create(&column).Error)

	filed := models.Issue{Title: "filed", WorkspaceID: env.ws.ID, ColumnID: &column.ID, Order: 0}
	require.NoError(t, env.db.Create(&filed).Error)
	tail := models.Issue{Title: "tail", WorkspaceID: env.ws.ID, ColumnID: &column.ID, Order: 1}
	require.NoError(t, env.db.Create(&tail).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/issues/"+filed.ID, gin.H{
		"columnId": "",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.ColumnID)

	// The survivor closes the gap.
	var survivor models.Issue
	require.NoError(t, env.db.First(&survivor, "id = ?", tail.ID).Error)
	require.Equal(t, 0, survivor.Order)
}

func TestIssueHandler_ListPaginates(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	for i := 0; i < 5; i++ {
		issue := models.Issue{Title: fmt.Sprintf("issue-%d", i), WorkspaceID: env.ws.ID}
		require.NoError(t, env.db.Create(&issue).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/issues?workspaceId="+env.ws.ID+"&page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Issues     []dto.IssueDTO `json:"issues"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Issues, 2)
	require.Equal(t, 2, response.Pagination.Page)
	require.EqualValues(t, 5, response.Pagination.Total)
}

func TestIssueHandler_CreateInBacklog(t *testing.T) {
	env := setupKanbanTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodPost, "/api/issues", gin.H{
		"title":       "loose end",
		"workspaceId": env.ws.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.ColumnID)
	require.Equal(t, models.IssueStatusTodo, response.Status)
}
