package ordering

import (
	"fmt"
	"testing"

	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type orderingTestEnv struct {
	db     *gorm.DB
	engine *Engine
}

func setupOrderingTestEnv(t *testing.T) orderingTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Workspace{},
		&models.Board{},
		&models.BoardColumn{},
		&models.Issue{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return orderingTestEnv{
		db:     db,
		engine: NewEngine(db),
	}
}

func (env orderingTestEnv) seedWorkspace(t *testing.T) models.Workspace {
	t.Helper()
	ws := models.Workspace{Name: "ws", OrganizationID: "org-1"}
	require.NoError(t, env.db.Create(&ws).Error)
	return ws
}

func (env orderingTestEnv) seedBoard(t *testing.T, workspaceID string, order int) models.Board {
	t.Helper()
	board := models.Board{Name: "board", WorkspaceID: workspaceID, Order: order}
	require.NoError(t, env.db.Create(&board).Error)
	return board
}

func (env orderingTestEnv) seedColumn(t *testing.T, boardID string, order int) models.BoardColumn {
	t.Helper()
	column := models.BoardColumn{Name: fmt.Sprintf("col-%d", order), BoardID: boardID, Order: order}
	require.NoError(t, env.db.Create(&column).Error)
	return column
}

// seedIssues files count issues into the column with dense orders and
// returns their ids in order.
func (env orderingTestEnv) seedIssues(t *testing.T, workspaceID, columnID string, count int) []string {
	t.Helper()
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		issue := models.Issue{
			Title:       fmt.Sprintf("issue-%d", i),
			WorkspaceID: workspaceID,
			ColumnID:    &columnID,
			Order:       i,
		}
		require.NoError(t, env.db.Create(&issue).Error)
		ids[i] = issue.ID
	}
	return ids
}

// columnIssueIDs reads back the column's issues in order and asserts
// the orders are dense starting at zero.
func (env orderingTestEnv) columnIssueIDs(t *testing.T, columnID string) []string {
	t.Helper()
	var issues []models.Issue
	require.NoError(t, env.db.
		Where("column_id = ?", columnID).
		Order(`"order" asc`).
		Find(&issues).Error)

	ids := make([]string, len(issues))
	for i, issue := range issues {
		require.Equal(t, i, issue.Order, "orders must be dense 0..N-1")
		ids[i] = issue.ID
	}
	return ids
}

func (env orderingTestEnv) boardColumnIDs(t *testing.T, boardID string) []string {
	t.Helper()
	var columns []models.BoardColumn
	require.NoError(t, env.db.
		Where("board_id = ?", boardID).
		Order(`"order" asc`).
		Find(&columns).Error)

	ids := make([]string, len(columns))
	for i, column := range columns {
		require.Equal(t, i, column.Order)
		ids[i] = column.ID
	}
	return ids
}

func TestAppendPosition(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	env.seedIssues(t, ws.ID, column.ID, 3)

	pos, err := env.engine.AppendPosition(ColumnContainer(column.ID))
	require.NoError(t, err)
	require.Equal(t, 3, pos)

	pos, err = env.engine.AppendPosition(BoardContainer(board.ID))
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	_, err = env.engine.AppendPosition(ColumnContainer("no-such-column"))
	require.ErrorIs(t, err, ErrContainerNotFound)
}

func TestBoardCreatePosition(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)

	// First board in an empty workspace starts at -1.
	pos, err := env.engine.BoardCreatePosition(ws.ID)
	require.NoError(t, err)
	require.Equal(t, -1, pos)

	// Boards prepend: each new board goes in front of the current min.
	env.seedBoard(t, ws.ID, -1)
	env.seedBoard(t, ws.ID, 0)

	pos, err = env.engine.BoardCreatePosition(ws.ID)
	require.NoError(t, err)
	require.Equal(t, -2, pos)

	_, err = env.engine.BoardCreatePosition("no-such-workspace")
	require.ErrorIs(t, err, ErrContainerNotFound)
}

func TestReorderWithin_PartialLeadsNamedIDs(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 4) // [a b c d]

	// Naming only c moves it to the front; the rest keep their
	// relative order behind it.
	err := env.engine.ReorderWithin(ColumnContainer(column.ID), []string{ids[2]}, PolicyPartial)
	require.NoError(t, err)

	got := env.columnIssueIDs(t, column.ID)
	require.Equal(t, []string{ids[2], ids[0], ids[1], ids[3]}, got)
}

func TestReorderWithin_PartialAdoptsForeignIssue(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	colA := env.seedColumn(t, board.ID, 0)
	colB := env.seedColumn(t, board.ID, 1)
	aIDs := env.seedIssues(t, ws.ID, colA.ID, 2)
	bIDs := env.seedIssues(t, ws.ID, colB.ID, 2)

	// A drag across columns names the moved issue in the destination's
	// reorder; the destination adopts it.
	err := env.engine.ReorderWithin(ColumnContainer(colB.ID), []string{aIDs[0], bIDs[0], bIDs[1]}, PolicyPartial)
	require.NoError(t, err)

	require.Equal(t, []string{aIDs[0], bIDs[0], bIDs[1]}, env.columnIssueIDs(t, colB.ID))

	var moved models.Issue
	require.NoError(t, env.db.First(&moved, "id = ?", aIDs[0]).Error)
	require.NotNil(t, moved.ColumnID)
	require.Equal(t, colB.ID, *moved.ColumnID)
}

func TestReorderWithin_PartialRejectsUnknownID(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 2)

	err := env.engine.ReorderWithin(ColumnContainer(column.ID), []string{"no-such-issue"}, PolicyPartial)
	require.ErrorIs(t, err, ErrUnknownMember)

	// State is untouched on rejection.
	require.Equal(t, ids, env.columnIssueIDs(t, column.ID))
}

func TestReorderWithin_RejectsDuplicateID(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 3)

	err := env.engine.ReorderWithin(ColumnContainer(column.ID), []string{ids[0], ids[0]}, PolicyPartial)
	require.ErrorIs(t, err, ErrUnknownMember)
}

func TestReorderWithin_EmptyListIsNoOp(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 2)

	require.NoError(t, env.engine.ReorderWithin(ColumnContainer(column.ID), nil, PolicyPartial))
	require.Equal(t, ids, env.columnIssueIDs(t, column.ID))
}

func TestReorderWithin_FullPermutation(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	c0 := env.seedColumn(t, board.ID, 0)
	c1 := env.seedColumn(t, board.ID, 1)
	c2 := env.seedColumn(t, board.ID, 2)

	err := env.engine.ReorderWithin(BoardContainer(board.ID), []string{c2.ID, c0.ID, c1.ID}, PolicyFull)
	require.NoError(t, err)

	require.Equal(t, []string{c2.ID, c0.ID, c1.ID}, env.boardColumnIDs(t, board.ID))
}

func TestReorderWithin_FullRejectsIncompleteList(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	c0 := env.seedColumn(t, board.ID, 0)
	c1 := env.seedColumn(t, board.ID, 1)

	// Omitting a column is an unknown-member rejection, not a partial
	// reorder.
	err := env.engine.ReorderWithin(BoardContainer(board.ID), []string{c1.ID}, PolicyFull)
	require.ErrorIs(t, err, ErrUnknownMember)

	require.Equal(t, []string{c0.ID, c1.ID}, env.boardColumnIDs(t, board.ID))
}

func TestReorderWithin_FullRejectsForeignID(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	c0 := env.seedColumn(t, board.ID, 0)
	c1 := env.seedColumn(t, board.ID, 1)

	err := env.engine.ReorderWithin(BoardContainer(board.ID), []string{c0.ID, c1.ID, "elsewhere"}, PolicyFull)
	require.ErrorIs(t, err, ErrUnknownMember)
}

func TestReorderWithin_ContainerNotFound(t *testing.T) {
	env := setupOrderingTestEnv(t)

	err := env.engine.ReorderWithin(ColumnContainer("no-such-column"), []string{"x"}, PolicyPartial)
	require.ErrorIs(t, err, ErrContainerNotFound)
}

func TestMoveIssue_CrossColumn(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	colA := env.seedColumn(t, board.ID, 0)
	colB := env.seedColumn(t, board.ID, 1)
	aIDs := env.seedIssues(t, ws.ID, colA.ID, 2) // [x y]
	bIDs := env.seedIssues(t, ws.ID, colB.ID, 1) // [z]

	err := env.engine.MoveIssue(aIDs[0], colA.ID, colB.ID, 0)
	require.NoError(t, err)

	require.Equal(t, []string{aIDs[1]}, env.columnIssueIDs(t, colA.ID))
	require.Equal(t, []string{aIDs[0], bIDs[0]}, env.columnIssueIDs(t, colB.ID))
}

func TestMoveIssue_CrossColumnClampsIndex(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	colA := env.seedColumn(t, board.ID, 0)
	colB := env.seedColumn(t, board.ID, 1)
	aIDs := env.seedIssues(t, ws.ID, colA.ID, 1)
	bIDs := env.seedIssues(t, ws.ID, colB.ID, 2)

	// A destination index beyond the end appends.
	err := env.engine.MoveIssue(aIDs[0], colA.ID, colB.ID, 99)
	require.NoError(t, err)

	require.Equal(t, []string{bIDs[0], bIDs[1], aIDs[0]}, env.columnIssueIDs(t, colB.ID))
}

func TestMoveIssue_SameColumnSplice(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 3) // [a b c]

	// Moving c to the front.
	require.NoError(t, env.engine.MoveIssue(ids[2], column.ID, column.ID, 0))
	require.Equal(t, []string{ids[2], ids[0], ids[1]}, env.columnIssueIDs(t, column.ID))
}

func TestMoveIssue_SameColumnForward(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 3) // [a b c]

	// Indexes are pre-removal: moving a "before c" lands it between b
	// and c once its own slot has closed.
	require.NoError(t, env.engine.MoveIssue(ids[0], column.ID, column.ID, 2))
	require.Equal(t, []string{ids[1], ids[0], ids[2]}, env.columnIssueIDs(t, column.ID))
}

func TestMoveIssue_ChildNotFound(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	colA := env.seedColumn(t, board.ID, 0)
	colB := env.seedColumn(t, board.ID, 1)
	env.seedIssues(t, ws.ID, colA.ID, 1)

	err := env.engine.MoveIssue("no-such-issue", colA.ID, colB.ID, 0)
	require.ErrorIs(t, err, ErrChildNotFound)
}

func TestDeleteBoard_RestrictedWithColumns(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	env.seedColumn(t, board.ID, 0)

	err := env.engine.DeleteBoard(board.ID, false)
	require.ErrorIs(t, err, ErrDeleteRestricted)

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDeleteBoard_CascadeRemovesTree(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	env.seedIssues(t, ws.ID, column.ID, 2)

	require.NoError(t, env.engine.DeleteBoard(board.ID, true))

	var boards, columns, issues int64
	require.NoError(t, env.db.Model(&models.Board{}).Where("id = ?", board.ID).Count(&boards).Error)
	require.NoError(t, env.db.Model(&models.BoardColumn{}).Where("board_id = ?", board.ID).Count(&columns).Error)
	require.NoError(t, env.db.Model(&models.Issue{}).Where("column_id = ?", column.ID).Count(&issues).Error)
	require.Zero(t, boards)
	require.Zero(t, columns)
	require.Zero(t, issues)
}

func TestDeleteBoard_EmptyBoardNeedsNoCascade(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)

	require.NoError(t, env.engine.DeleteBoard(board.ID, false))
}

func TestDeleteColumn_RestrictedWithIssues(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	env.seedIssues(t, ws.ID, column.ID, 1)

	err := env.engine.DeleteColumn(column.ID, false)
	require.ErrorIs(t, err, ErrDeleteRestricted)
}

func TestDeleteColumn_ResequencesSurvivors(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	c0 := env.seedColumn(t, board.ID, 0)
	c1 := env.seedColumn(t, board.ID, 1)
	c2 := env.seedColumn(t, board.ID, 2)

	require.NoError(t, env.engine.DeleteColumn(c1.ID, false))

	// Survivors close the gap: c2 drops from order 2 to 1.
	require.Equal(t, []string{c0.ID, c2.ID}, env.boardColumnIDs(t, board.ID))
}

func TestDeleteIssue_ClosesGap(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)
	ids := env.seedIssues(t, ws.ID, column.ID, 3)

	require.NoError(t, env.engine.DeleteIssue(ids[1]))

	require.Equal(t, []string{ids[0], ids[2]}, env.columnIssueIDs(t, column.ID))
}

func TestDeleteIssue_BacklogIssue(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)

	issue := models.Issue{Title: "backlog", WorkspaceID: ws.ID}
	require.NoError(t, env.db.Create(&issue).Error)

	require.NoError(t, env.engine.DeleteIssue(issue.ID))
	require.ErrorIs(t, env.db.First(&models.Issue{}, "id = ?", issue.ID).Error, gorm.ErrRecordNotFound)
}

func TestResequence_ClosesGaps(t *testing.T) {
	env := setupOrderingTestEnv(t)
	ws := env.seedWorkspace(t)
	board := env.seedBoard(t, ws.ID, 0)
	column := env.seedColumn(t, board.ID, 0)

	// Seed with gappy orders straight into the store.
	for i, order := range []int{3, 7, 11} {
		issue := models.Issue{
			Title:       fmt.Sprintf("gappy-%d", i),
			WorkspaceID: ws.ID,
			ColumnID:    &column.ID,
			Order:       order,
		}
		require.NoError(t, env.db.Create(&issue).Error)
	}

	require.NoError(t, env.engine.Resequence(ColumnContainer(column.ID)))

	ids := env.columnIssueIDs(t, column.ID)
	require.Len(t, ids, 3)
}
