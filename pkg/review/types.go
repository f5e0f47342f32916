package review

import (
	"context"

	"github.com/google/go-github/v57/github"
)

// PullRequestContext identifies the pull request a run reviews
type PullRequestContext struct {
	Owner  string
	Repo   string
	Number int
}

// Snapshot is the pull request data gathered once per run
type Snapshot struct {
	Author   string
	Title    string
	Comments []Comment
	Files    []ChangedFile
}

// Comment is one issue-thread comment on the pull request
type Comment struct {
	Author string
	Body   string
}

// ChangedFile is one file touched by a pull request.
// HasPatch is false for binary and rename-only changes.
type ChangedFile struct {
	Filename string
	Patch    string
	HasPatch bool
}

// HistoricalDiff is a patch to the same file from an earlier merged pull request
type HistoricalDiff struct {
	PullNumber int
	Author     string
	Patch      string
}

// FileSummary pairs a reviewable file with its history
type FileSummary struct {
	File    ChangedFile
	History []HistoricalDiff
}

// Result describes how a run ended
type Result struct {
	// Skipped is set when no reviewable files remained after filtering.
	Skipped    bool
	Posted     bool
	Review     string
	CommentURL string
}

// GitHubAPI is the subset of the hosting API the pipeline reads and writes
type GitHubAPI interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error)
	ListFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error)
	ListClosedPullRequests(ctx context.Context, owner, repo string, limit int) ([]*github.PullRequest, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error)
}

// Generator turns a prompt into review text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func toChangedFile(f *github.CommitFile) ChangedFile {
	return ChangedFile{
		Filename: f.GetFilename(),
		Patch:    f.GetPatch(),
		HasPatch: f.Patch != nil,
	}
}
