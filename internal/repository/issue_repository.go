package repository

import (
	"github.com/hinagiku/kanban-api/internal/database"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/utils"
	"gorm.io/gorm"
)

// GormIssueRepository is a GORM implementation of IssueRepository
type GormIssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &GormIssueRepository{db: db}
}

func (r *GormIssueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

func (r *GormIssueRepository) FindByID(id string) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// List retrieves a page of issues matching the filter, newest first,
// along with the unpaged total
func (r *GormIssueRepository) List(filter IssueFilter, page utils.PaginationParams) ([]models.Issue, int64, error) {
	query := r.db.Model(&models.Issue{})

	if filter.WorkspaceID != "" {
		query = query.Where("workspace_id = ?", filter.WorkspaceID)
	}
	if filter.ColumnID != "" {
		query = query.Where("column_id = ?", filter.ColumnID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	// Reusable for both the count and the page fetch.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	if err := query.Preload("Assignee").
		Order("created_at desc").
		Scopes(database.Paginate(page)).
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (r *GormIssueRepository) Update(issue *models.Issue) error {
	return r.db.Save(issue).Error
}
