package constants

// SessionCookieName is the cookie the session middleware issues.
const SessionCookieName = "kanban_session"

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// HeaderBoardID carries the board a drag-and-drop client is currently
// looking at; the scope resolver consults it before any other board
// identifier.
const HeaderBoardID = "x-board-id"

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxAIGeneratedIssues caps how many issues a single AI drafting
// request may create.
const MaxAIGeneratedIssues = 20
