package review

import (
	"context"

	"github.com/saint0x/ggreview/pkg/log"
)

// Fetcher reads the pull request's detail, comments and changed files
type Fetcher struct {
	gh     GitHubAPI
	logger *log.Logger
}

// NewFetcher creates a Fetcher
func NewFetcher(gh GitHubAPI, logger *log.Logger) *Fetcher {
	return &Fetcher{gh: gh, logger: logger}
}

// Fetch returns a fully populated snapshot or a *FetchError
func (f *Fetcher) Fetch(ctx context.Context, prc PullRequestContext) (*Snapshot, error) {
	f.logger.Step("Fetching PR #%d from %s/%s...", prc.Number, prc.Owner, prc.Repo)

	pr, err := f.gh.GetPullRequest(ctx, prc.Owner, prc.Repo, prc.Number)
	if err != nil {
		return nil, &FetchError{Op: "pull request", Err: err}
	}

	comments, err := f.gh.ListComments(ctx, prc.Owner, prc.Repo, prc.Number)
	if err != nil {
		return nil, &FetchError{Op: "comments", Err: err}
	}

	files, err := f.gh.ListFiles(ctx, prc.Owner, prc.Repo, prc.Number)
	if err != nil {
		return nil, &FetchError{Op: "changed files", Err: err}
	}

	snap := &Snapshot{
		Author:   pr.GetUser().GetLogin(),
		Title:    pr.GetTitle(),
		Comments: make([]Comment, 0, len(comments)),
		Files:    make([]ChangedFile, 0, len(files)),
	}
	for _, c := range comments {
		snap.Comments = append(snap.Comments, Comment{
			Author: c.GetUser().GetLogin(),
			Body:   c.GetBody(),
		})
	}
	for _, file := range files {
		snap.Files = append(snap.Files, toChangedFile(file))
	}

	f.logger.PR("%q by @%s: %d files, %d comments", snap.Title, snap.Author, len(snap.Files), len(snap.Comments))
	return snap, nil
}
