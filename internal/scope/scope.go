// Package scope resolves the identifiers present on an inbound
// request up the containment hierarchy (issue → column → board →
// workspace → organization) to the owning organization id. It holds
// no store coupling of its own; hierarchy reads go through OrgLookup.
package scope

import "errors"

// ErrResolutionFailed means no candidate identifier chain could be
// walked to an organization. Callers treat it as Forbidden: ambiguity
// never defaults to allow.
var ErrResolutionFailed = errors.New("scope resolution failed")

// Scope is the granularity at which an authorization check is
// declared for an operation.
type Scope string

const (
	ScopeOrg       Scope = "org"
	ScopeWorkspace Scope = "workspace"
	ScopeBoard     Scope = "board"
)

// Resource names what a route's bare :id path parameter denotes.
type Resource string

const (
	ResourceNone   Resource = ""
	ResourceOrg    Resource = "org"
	ResourceBoard  Resource = "board"
	ResourceColumn Resource = "column"
	ResourceIssue  Resource = "issue"
)

// IDSet is the identifiers one request source (body, query or path)
// may carry. Absent values are empty strings.
type IDSet struct {
	OrgID       string
	WorkspaceID string
	BoardID     string
	ColumnID    string
	IssueID     string
}

// Candidates is everything the resolver may consult, harvested from
// one request.
type Candidates struct {
	HeaderBoardID string
	Body          IDSet
	Query         IDSet
	Path          IDSet

	// PathResource and PathID describe the route's own :id parameter,
	// e.g. PATCH /columns/:id yields (ResourceColumn, <id>).
	PathResource Resource
	PathID       string
}

// OrgLookup walks one hierarchy edge per call. Implementations return
// ("", nil) for a dangling reference; the resolver treats that the
// same as no candidate at all.
type OrgLookup interface {
	BoardOrg(boardID string) (string, error)
	ColumnOrg(columnID string) (string, error)
	IssueOrg(issueID string) (string, error)
	WorkspaceOrg(workspaceID string) (string, error)
}
