package review

import (
	"context"
	"errors"
	"fmt"

	gogithub "github.com/google/go-github/v57/github"
)

var errAPI = errors.New("api unavailable")

// mockGitHub implements GitHubAPI
type mockGitHub struct {
	pr       *gogithub.PullRequest
	comments []*gogithub.IssueComment
	// files keyed by pull request number
	files  map[int][]*gogithub.CommitFile
	closed []*gogithub.PullRequest

	getErr      error
	commentsErr error
	filesErr    error
	closedErr   error
	createErr   error

	listFilesCalls  []int
	closedCalls     int
	closedLimit     int
	createdComments []string
}

func (m *mockGitHub) GetPullRequest(_ context.Context, _, _ string, _ int) (*gogithub.PullRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.pr, nil
}

func (m *mockGitHub) ListComments(_ context.Context, _, _ string, _ int) ([]*gogithub.IssueComment, error) {
	if m.commentsErr != nil {
		return nil, m.commentsErr
	}
	return m.comments, nil
}

func (m *mockGitHub) ListFiles(_ context.Context, _, _ string, number int) ([]*gogithub.CommitFile, error) {
	m.listFilesCalls = append(m.listFilesCalls, number)
	if m.filesErr != nil {
		return nil, m.filesErr
	}
	return m.files[number], nil
}

func (m *mockGitHub) ListClosedPullRequests(_ context.Context, _, _ string, limit int) ([]*gogithub.PullRequest, error) {
	m.closedCalls++
	m.closedLimit = limit
	if m.closedErr != nil {
		return nil, m.closedErr
	}
	return m.closed, nil
}

func (m *mockGitHub) CreateComment(_ context.Context, owner, repo string, number int, body string) (*gogithub.IssueComment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdComments = append(m.createdComments, body)
	return &gogithub.IssueComment{
		HTMLURL: gogithub.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d#issuecomment-1", owner, repo, number)),
	}, nil
}

// mockGenerator implements Generator
type mockGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func commitFile(name, patch string) *gogithub.CommitFile {
	f := &gogithub.CommitFile{Filename: gogithub.String(name)}
	if patch != "" {
		f.Patch = gogithub.String(patch)
	}
	return f
}

func mergedPR(number int, author string) *gogithub.PullRequest {
	return &gogithub.PullRequest{
		Number:   gogithub.Int(number),
		User:     &gogithub.User{Login: gogithub.String(author)},
		MergedAt: &gogithub.Timestamp{},
	}
}

func closedPR(number int) *gogithub.PullRequest {
	return &gogithub.PullRequest{Number: gogithub.Int(number)}
}

func openPR(number int, title, author string) *gogithub.PullRequest {
	return &gogithub.PullRequest{
		Number: gogithub.Int(number),
		Title:  gogithub.String(title),
		User:   &gogithub.User{Login: gogithub.String(author)},
	}
}

func issueComment(author, body string) *gogithub.IssueComment {
	return &gogithub.IssueComment{
		User: &gogithub.User{Login: gogithub.String(author)},
		Body: gogithub.String(body),
	}
}
