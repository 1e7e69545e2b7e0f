package model

import "time"

// IssueState represents the state of an issue.
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

// Issue represents an issue on a platform repository. Body is never absent:
// issues whose body is missing on the platform are normalized to "".
type Issue struct {
	Title     string
	Body      string
	Number    int
	CreatedAt time.Time
	Author    string
	State     IssueState
}
