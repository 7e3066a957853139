package repository

import (
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// CreateWithPersonalOrganization creates a user, their personal organization,
	// and corresponding membership within a single transaction.
	CreateWithPersonalOrganization(user *models.User, org *models.Organization, member *models.Membership) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id string) (*models.Organization, error)

	// FindByInviteCode finds an organization by invite code
	FindByInviteCode(code string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization and all related data
	Delete(id string) error

	// AddMember adds a member to an organization
	AddMember(member *models.Membership) error

	// UpdateMember saves changes to an existing membership
	UpdateMember(member *models.Membership) error

	// RemoveMember removes a member from an organization
	RemoveMember(organizationID, userID string) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID string) (*models.Membership, error)

	// ListMembersByUserID lists all organizations a user is a member of
	ListMembersByUserID(userID string) ([]models.Membership, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID string) ([]models.Membership, error)
}

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	Create(workspace *models.Workspace) error
	FindByID(id string) (*models.Workspace, error)
	ListByOrganization(orgID string) ([]models.Workspace, error)
	Update(workspace *models.Workspace) error
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(board *models.Board) error
	FindByID(id string) (*models.Board, error)

	// FindByIDWithColumns loads the board and its columns order ascending
	FindByIDWithColumns(id string) (*models.Board, error)

	// FindFull loads the board with ordered columns, each with ordered
	// issues and their assignees
	FindFull(id string) (*models.Board, error)

	// ListByWorkspace lists boards of a workspace, order ascending,
	// columns preloaded in order
	ListByWorkspace(workspaceID string) ([]models.Board, error)

	Update(board *models.Board) error
}

// ColumnRepository defines the interface for board-column data access
type ColumnRepository interface {
	Create(column *models.BoardColumn) error
	FindByID(id string) (*models.BoardColumn, error)

	// ListByBoard lists a board's columns order ascending with issues preloaded
	ListByBoard(boardID string) ([]models.BoardColumn, error)

	Update(column *models.BoardColumn) error
}

// IssueFilter holds filtering options for listing issues
type IssueFilter struct {
	WorkspaceID string
	ColumnID    string
	Status      *models.IssueStatus
	AssigneeID  string
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	Create(issue *models.Issue) error
	FindByID(id string) (*models.Issue, error)

	// List retrieves a page of issues matching the filter, newest
	// first, along with the unpaged total
	List(filter IssueFilter, page utils.PaginationParams) ([]models.Issue, int64, error)

	Update(issue *models.Issue) error
}
