package review

import (
	"context"
	"fmt"

	"github.com/saint0x/ggreview/pkg/log"
)

// Default history lookup bounds
const (
	DefaultHistoryScanLimit  = 10
	DefaultHistoryMatchLimit = 3
)

// HistoryFinder looks up patches to the same file in recently merged pull requests
type HistoryFinder struct {
	gh         GitHubAPI
	logger     *log.Logger
	scanLimit  int
	matchLimit int
}

// NewHistoryFinder creates a HistoryFinder; non-positive limits fall back to the defaults
func NewHistoryFinder(gh GitHubAPI, logger *log.Logger, scanLimit, matchLimit int) *HistoryFinder {
	if scanLimit <= 0 {
		scanLimit = DefaultHistoryScanLimit
	}
	if matchLimit <= 0 {
		matchLimit = DefaultHistoryMatchLimit
	}
	return &HistoryFinder{
		gh:         gh,
		logger:     logger,
		scanLimit:  scanLimit,
		matchLimit: matchLimit,
	}
}

// PreviousDiffs returns at most matchLimit patches to filename, in the order
// the closed pull requests are listed. Candidates are scanned one at a time and
// the scan stops once the quota is met, so at most scanLimit file listings are made.
func (h *HistoryFinder) PreviousDiffs(ctx context.Context, prc PullRequestContext, filename string) ([]HistoricalDiff, error) {
	closed, err := h.gh.ListClosedPullRequests(ctx, prc.Owner, prc.Repo, h.scanLimit)
	if err != nil {
		return nil, &FetchError{Op: "closed pull requests", Err: err}
	}

	var diffs []HistoricalDiff
	for _, pr := range closed {
		if len(diffs) >= h.matchLimit {
			break
		}
		if pr.MergedAt == nil || pr.GetNumber() == prc.Number {
			continue
		}

		files, err := h.gh.ListFiles(ctx, prc.Owner, prc.Repo, pr.GetNumber())
		if err != nil {
			return nil, &FetchError{Op: fmt.Sprintf("files of PR #%d", pr.GetNumber()), Err: err}
		}
		for _, f := range files {
			if f.GetFilename() == filename && f.GetPatch() != "" {
				diffs = append(diffs, HistoricalDiff{
					PullNumber: pr.GetNumber(),
					Author:     pr.GetUser().GetLogin(),
					Patch:      f.GetPatch(),
				})
				break
			}
		}
	}

	h.logger.Debug("%s: %d historical diffs", filename, len(diffs))
	return diffs, nil
}
