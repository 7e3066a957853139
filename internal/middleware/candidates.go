package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/constants"
	"github.com/hinagiku/kanban-api/internal/scope"
)

// harvestCandidates collects every identifier the scope resolver may
// consult: the x-board-id header, JSON body fields, query parameters,
// named path parameters, and the route's own :id parameter.
func harvestCandidates(c *gin.Context) scope.Candidates {
	return scope.Candidates{
		HeaderBoardID: c.GetHeader(constants.HeaderBoardID),
		Body:          bodyIDs(c),
		Query: scope.IDSet{
			OrgID:       c.Query("orgId"),
			WorkspaceID: c.Query("workspaceId"),
			BoardID:     c.Query("boardId"),
			ColumnID:    c.Query("columnId"),
			IssueID:     c.Query("issueId"),
		},
		Path: scope.IDSet{
			OrgID:       c.Param("orgId"),
			WorkspaceID: c.Param("workspaceId"),
			BoardID:     c.Param("boardId"),
			ColumnID:    c.Param("columnId"),
			IssueID:     c.Param("issueId"),
		},
		PathResource: pathResource(c),
		PathID:       c.Param("id"),
	}
}

// bodyIDs peeks at the JSON body without consuming it: the raw bytes
// are restored so handler binding still works downstream.
func bodyIDs(c *gin.Context) scope.IDSet {
	if c.Request.Body == nil {
		return scope.IDSet{}
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return scope.IDSet{}
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return scope.IDSet{}
	}

	return scope.IDSet{
		OrgID:       stringField(fields, "orgId"),
		WorkspaceID: stringField(fields, "workspaceId"),
		BoardID:     stringField(fields, "boardId"),
		ColumnID:    stringField(fields, "columnId"),
		IssueID:     stringField(fields, "issueId"),
	}
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// pathResource names what the route's :id parameter denotes, derived
// from the registered route path.
func pathResource(c *gin.Context) scope.Resource {
	path := c.FullPath()
	switch {
	case strings.Contains(path, "/organizations"):
		return scope.ResourceOrg
	case strings.Contains(path, "/boards"):
		return scope.ResourceBoard
	case strings.Contains(path, "/columns"):
		return scope.ResourceColumn
	case strings.Contains(path, "/issues"):
		return scope.ResourceIssue
	}
	return scope.ResourceNone
}
