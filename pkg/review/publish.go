package review

import (
	"context"
	"fmt"
	"io"

	"github.com/saint0x/ggreview/pkg/log"
)

// ReportHeader opens every published review
const ReportHeader = "## Gemini AI Review Report"

// FormatReport builds the comment body for a review
func FormatReport(review string) string {
	return ReportHeader + "\n\n" + review
}

// Publisher posts the review as a new issue comment
type Publisher struct {
	gh     GitHubAPI
	logger *log.Logger
	// dryRun, when set, receives the comment body instead of GitHub.
	dryRun io.Writer
}

// NewPublisher creates a Publisher; a non-nil dryRun writer disables posting
func NewPublisher(gh GitHubAPI, logger *log.Logger, dryRun io.Writer) *Publisher {
	return &Publisher{gh: gh, logger: logger, dryRun: dryRun}
}

// Publish creates exactly one comment and returns its URL
func (p *Publisher) Publish(ctx context.Context, prc PullRequestContext, review string) (string, error) {
	body := FormatReport(review)

	if p.dryRun != nil {
		p.logger.Info("Dry run: not posting to PR #%d", prc.Number)
		if _, err := fmt.Fprintln(p.dryRun, body); err != nil {
			return "", &PublishError{Err: err}
		}
		return "", nil
	}

	comment, err := p.gh.CreateComment(ctx, prc.Owner, prc.Repo, prc.Number, body)
	if err != nil {
		return "", &PublishError{Err: err}
	}
	return comment.GetHTMLURL(), nil
}
