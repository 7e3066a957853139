package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hinagiku/kanban-api/internal/constants"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/repository"
	"github.com/hinagiku/kanban-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound          = errors.New("issue not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidIssueStatus     = errors.New("invalid issue status")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoIssuesGenerated    = errors.New("AI did not generate any issues")
)

// IssueService handles issue business logic.
type IssueService struct {
	issueRepo     repository.IssueRepository
	workspaceRepo repository.WorkspaceRepository
	engine        *ordering.Engine
	aiService     *AIService
}

// NewIssueService creates a new IssueService.
func NewIssueService(issueRepo repository.IssueRepository, workspaceRepo repository.WorkspaceRepository, engine *ordering.Engine, aiService *AIService) *IssueService {
	return &IssueService{
		issueRepo:     issueRepo,
		workspaceRepo: workspaceRepo,
		engine:        engine,
		aiService:     aiService,
	}
}

// CreateIssueInput represents parameters to create a new issue.
type CreateIssueInput struct {
	Title       string
	Description string
	WorkspaceID string
	ColumnID    *string
	AssigneeID  *string
	Status      models.IssueStatus
	DueAt       *time.Time
}

// CreateIssue creates an issue, appended at the end of its column when
// one is given, otherwise in the workspace backlog.
func (s *IssueService) CreateIssue(input CreateIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.workspaceRepo.FindByID(input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.IssueStatusTodo
	}
	if status != models.IssueStatusTodo && status != models.IssueStatusDoing && status != models.IssueStatusDone {
		return nil, ErrInvalidIssueStatus
	}

	position := 0
	if input.ColumnID != nil {
		var err error
		position, err = s.engine.AppendPosition(ordering.ColumnContainer(*input.ColumnID))
		if err != nil {
			if errors.Is(err, ordering.ErrContainerNotFound) {
				return nil, ErrColumnNotFound
			}
			return nil, fmt.Errorf("failed to compute issue position: %w", err)
		}
	}

	issue := &models.Issue{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		WorkspaceID: input.WorkspaceID,
		ColumnID:    input.ColumnID,
		AssigneeID:  input.AssigneeID,
		DueAt:       input.DueAt,
		Order:       position,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return issue, nil
}

// GetIssue returns one issue.
func (s *IssueService) GetIssue(id string) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}
	return issue, nil
}

// ListIssues lists a page of issues matching the filter.
func (s *IssueService) ListIssues(filter repository.IssueFilter, page utils.PaginationParams) ([]models.Issue, int64, error) {
	issues, total, err := s.issueRepo.List(filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, total, nil
}

// UpdateIssueInput carries a partial issue update. Nil means "leave
// unchanged"; for ColumnID an explicit empty string unfiles the issue
// back to the workspace backlog.
type UpdateIssueInput struct {
	Title       *string
	Description *string
	Status      *models.IssueStatus
	AssigneeID  *string
	DueAt       *time.Time
	ColumnID    *string
	Position    *int
}

// UpdateIssue applies a partial update. Reassigning ColumnID moves the
// issue across containers: it is spliced into the destination at the
// requested position (appended when none is given) and both columns
// are resequenced densely.
func (s *IssueService) UpdateIssue(id string, input UpdateIssueInput) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		issue.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Status != nil {
		st := *input.Status
		if st != models.IssueStatusTodo && st != models.IssueStatusDoing && st != models.IssueStatusDone {
			return nil, ErrInvalidIssueStatus
		}
		issue.Status = st
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			issue.AssigneeID = nil
		} else {
			issue.AssigneeID = input.AssigneeID
		}
	}
	if input.DueAt != nil {
		issue.DueAt = input.DueAt
	}

	if err := s.issueRepo.Update(issue); err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	if input.ColumnID != nil {
		if err := s.reassignColumn(issue, *input.ColumnID, input.Position); err != nil {
			return nil, err
		}
	}

	return s.GetIssue(id)
}

func (s *IssueService) reassignColumn(issue *models.Issue, columnID string, position *int) error {
	destIndex := math.MaxInt32
	if position != nil {
		destIndex = *position
	}

	switch {
	case columnID == "":
		// Unfile to the backlog and close the gap left behind.
		if issue.ColumnID == nil {
			return nil
		}
		from := *issue.ColumnID
		issue.ColumnID = nil
		issue.Order = 0
		if err := s.issueRepo.Update(issue); err != nil {
			return fmt.Errorf("failed to unfile issue: %w", err)
		}
		return s.engine.Resequence(ordering.ColumnContainer(from))

	case issue.ColumnID == nil:
		// Backlog issue entering a column: plain adoption via a
		// partial reorder that names only the new arrival.
		return s.engine.ReorderWithin(ordering.ColumnContainer(columnID), []string{issue.ID}, ordering.PolicyPartial)

	case *issue.ColumnID != columnID || position != nil:
		return s.engine.MoveIssue(issue.ID, *issue.ColumnID, columnID, destIndex)
	}

	return nil
}

// DeleteIssue removes an issue and keeps its column dense.
func (s *IssueService) DeleteIssue(id string) error {
	return s.engine.DeleteIssue(id)
}

// GenerateIssues drafts issues from free-form text via the AI service
// and files them into the workspace backlog.
func (s *IssueService) GenerateIssues(ctx context.Context, workspaceID, text string) ([]models.Issue, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	drafts, err := s.aiService.GenerateIssuesFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate issues: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrAINoIssuesGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedIssues {
		drafts = drafts[:constants.MaxAIGeneratedIssues]
	}

	created := make([]models.Issue, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}
		issue := &models.Issue{
			Title:       strings.TrimSpace(draft.Title),
			Description: draft.Description,
			Status:      models.IssueStatusTodo,
			WorkspaceID: workspaceID,
		}
		if err := s.issueRepo.Create(issue); err != nil {
			return nil, fmt.Errorf("failed to create generated issue: %w", err)
		}
		created = append(created, *issue)
	}

	if len(created) == 0 {
		return nil, ErrAINoIssuesGenerated
	}
	return created, nil
}
