package scope

import "fmt"

type walkKind int

const (
	walkDirect walkKind = iota
	walkWorkspace
	walkBoard
	walkColumn
	walkIssue
)

// extractor names one candidate source and the hierarchy walk its id
// requires. Chains are evaluated in order; the first extractor that
// yields an id commits the resolution — a dangling id fails rather
// than falling through to the next source.
type extractor struct {
	name string
	pick func(Candidates) string
	walk walkKind
}

// The three chains are the precedence contract of the resolver. Order
// is significant and pinned by tests; direct identifiers always beat
// derived chains.
var (
	orgChain = []extractor{
		{"body.orgId", func(c Candidates) string { return c.Body.OrgID }, walkDirect},
		{"query.orgId", func(c Candidates) string { return c.Query.OrgID }, walkDirect},
		{"path.orgId", func(c Candidates) string { return c.Path.OrgID }, walkDirect},
		{"path:org", pathIDFor(ResourceOrg), walkDirect},
	}

	workspaceChain = []extractor{
		{"body.workspaceId", func(c Candidates) string { return c.Body.WorkspaceID }, walkWorkspace},
		{"query.workspaceId", func(c Candidates) string { return c.Query.WorkspaceID }, walkWorkspace},
		{"path.workspaceId", func(c Candidates) string { return c.Path.WorkspaceID }, walkWorkspace},
		{"body.boardId", func(c Candidates) string { return c.Body.BoardID }, walkBoard},
		{"query.boardId", func(c Candidates) string { return c.Query.BoardID }, walkBoard},
		{"path.boardId", func(c Candidates) string { return c.Path.BoardID }, walkBoard},
		{"body.columnId", func(c Candidates) string { return c.Body.ColumnID }, walkColumn},
		{"query.columnId", func(c Candidates) string { return c.Query.ColumnID }, walkColumn},
		{"path.columnId", func(c Candidates) string { return c.Path.ColumnID }, walkColumn},
		{"body.issueId", func(c Candidates) string { return c.Body.IssueID }, walkIssue},
		{"query.issueId", func(c Candidates) string { return c.Query.IssueID }, walkIssue},
		{"path.issueId", func(c Candidates) string { return c.Path.IssueID }, walkIssue},
		{"path:board", pathIDFor(ResourceBoard), walkBoard},
		{"path:column", pathIDFor(ResourceColumn), walkColumn},
		{"path:issue", pathIDFor(ResourceIssue), walkIssue},
	}

	boardChain = []extractor{
		{"header.x-board-id", func(c Candidates) string { return c.HeaderBoardID }, walkBoard},
		{"body.boardId", func(c Candidates) string { return c.Body.BoardID }, walkBoard},
		{"query.boardId", func(c Candidates) string { return c.Query.BoardID }, walkBoard},
		{"path.boardId", func(c Candidates) string { return c.Path.BoardID }, walkBoard},
		{"path:board", pathIDFor(ResourceBoard), walkBoard},
		{"path:column", pathIDFor(ResourceColumn), walkColumn},
		{"path:issue", pathIDFor(ResourceIssue), walkIssue},
		// Degraded fallback: a bare workspace id still pins the org,
		// and the membership check gates by org either way.
		{"body.workspaceId", func(c Candidates) string { return c.Body.WorkspaceID }, walkWorkspace},
	}
)

func pathIDFor(r Resource) func(Candidates) string {
	return func(c Candidates) string {
		if c.PathResource == r {
			return c.PathID
		}
		return ""
	}
}

func chainFor(s Scope) []extractor {
	switch s {
	case ScopeOrg:
		return orgChain
	case ScopeWorkspace:
		return workspaceChain
	case ScopeBoard:
		return boardChain
	default:
		return nil
	}
}

// ResolveOrg walks the first present candidate for the declared scope
// to its owning organization id. No candidate, or a candidate whose
// walk dead-ends, yields ErrResolutionFailed.
func ResolveOrg(s Scope, c Candidates, lookup OrgLookup) (string, error) {
	for _, ex := range chainFor(s) {
		id := ex.pick(c)
		if id == "" {
			continue
		}
		orgID, err := walk(lookup, ex.walk, id)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", ex.name, err)
		}
		if orgID == "" {
			return "", ErrResolutionFailed
		}
		return orgID, nil
	}
	return "", ErrResolutionFailed
}

func walk(lookup OrgLookup, kind walkKind, id string) (string, error) {
	switch kind {
	case walkDirect:
		return id, nil
	case walkWorkspace:
		return lookup.WorkspaceOrg(id)
	case walkBoard:
		return lookup.BoardOrg(id)
	case walkColumn:
		return lookup.ColumnOrg(id)
	case walkIssue:
		return lookup.IssueOrg(id)
	}
	return "", nil
}
