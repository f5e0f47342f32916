package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/saint0x/ggreview/pkg/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Options configures a Client
type Options struct {
	Token string
	// BaseURL overrides the REST endpoint, e.g. GITHUB_API_URL on Enterprise runners.
	BaseURL string
	// RequestsPerSecond paces outgoing calls; zero or negative disables pacing.
	RequestsPerSecond float64
}

// Client handles GitHub operations
type Client struct {
	client *github.Client
	logger *log.Logger
}

// New creates a new GitHub client authenticated with a static token
func New(logger *log.Logger, opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Transport = newRateLimitedTransport(tc.Transport, opts.RequestsPerSecond)

	gh := github.NewClient(tc)
	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		gh.BaseURL = base
	}

	return &Client{
		client: gh,
		logger: logger,
	}, nil
}

// GetPullRequest gets a single pull request
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, err)
	}
	return pr, nil
}

// ListComments lists the issue-thread comments of a pull request.
// Only the API's default first page is returned.
func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error) {
	comments, _, err := c.client.Issues.ListComments(ctx, owner, repo, number, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for PR #%d: %w", number, err)
	}
	return comments, nil
}

// ListFiles lists the changed files of a pull request.
// Only the API's default first page is returned.
func (c *Client) ListFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	files, _, err := c.client.PullRequests.ListFiles(ctx, owner, repo, number, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list files for PR #%d: %w", number, err)
	}
	c.logger.Debug("PR #%d has %d changed files", number, len(files))
	return files, nil
}

// ListClosedPullRequests gets up to limit recently closed pull requests
func (c *Client) ListClosedPullRequests(ctx context.Context, owner, repo string, limit int) ([]*github.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State: "closed",
		ListOptions: github.ListOptions{
			PerPage: limit,
		},
	}

	prs, _, err := c.client.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed PRs: %w", err)
	}
	if len(prs) > limit {
		prs = prs[:limit]
	}
	return prs, nil
}

// CreateComment posts a new comment on the pull request's issue thread
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on PR #%d: %w", number, err)
	}
	return comment, nil
}

// rateLimitedTransport waits on a token bucket before every request
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitedTransport(base http.RoundTripper, perSecond float64) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &rateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
