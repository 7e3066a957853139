package repository

import (
	"errors"

	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/scope"
	"gorm.io/gorm"
)

// GormHierarchyRepository answers "which organization owns this
// entity" by walking the containment lineage with joins. It satisfies
// scope.OrgLookup; a dangling reference yields ("", nil) so the
// resolver treats it like a missing candidate instead of an internal
// error.
type GormHierarchyRepository struct {
	db *gorm.DB
}

// NewHierarchyRepository creates a new hierarchy lookup backed by gorm
func NewHierarchyRepository(db *gorm.DB) scope.OrgLookup {
	return &GormHierarchyRepository{db: db}
}

type orgRow struct {
	OrganizationID string
}

func (r *GormHierarchyRepository) WorkspaceOrg(workspaceID string) (string, error) {
	var row orgRow
	err := r.db.Model(&models.Workspace{}).
		Select("organization_id").
		Where("id = ?", workspaceID).
		Take(&row).Error
	return orgOrAbsent(row, err)
}

func (r *GormHierarchyRepository) BoardOrg(boardID string) (string, error) {
	var row orgRow
	err := r.db.Model(&models.Board{}).
		Select("workspaces.organization_id AS organization_id").
		Joins("JOIN workspaces ON workspaces.id = boards.workspace_id").
		Where("boards.id = ? AND workspaces.deleted_at IS NULL", boardID).
		Take(&row).Error
	return orgOrAbsent(row, err)
}

func (r *GormHierarchyRepository) ColumnOrg(columnID string) (string, error) {
	var row orgRow
	err := r.db.Model(&models.BoardColumn{}).
		Select("workspaces.organization_id AS organization_id").
		Joins("JOIN boards ON boards.id = board_columns.board_id").
		Joins("JOIN workspaces ON workspaces.id = boards.workspace_id").
		Where("board_columns.id = ? AND boards.deleted_at IS NULL AND workspaces.deleted_at IS NULL", columnID).
		Take(&row).Error
	return orgOrAbsent(row, err)
}

// IssueOrg walks issue → column → board → workspace → org when the
// issue is filed in a column, and issue → workspace → org for backlog
// issues.
func (r *GormHierarchyRepository) IssueOrg(issueID string) (string, error) {
	var issue models.Issue
	if err := r.db.Select("id", "workspace_id", "column_id").
		First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if issue.ColumnID != nil {
		orgID, err := r.ColumnOrg(*issue.ColumnID)
		if err != nil || orgID != "" {
			return orgID, err
		}
	}
	return r.WorkspaceOrg(issue.WorkspaceID)
}

func orgOrAbsent(row orgRow, err error) (string, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.OrganizationID, nil
}
