package review

import (
	"context"
	"io"

	"github.com/saint0x/ggreview/pkg/log"
)

// Options tunes a Runner
type Options struct {
	ExcludeExtensions []string
	HistoryScanLimit  int
	HistoryMatchLimit int
	// DryRun receives the report instead of GitHub when non-nil.
	DryRun io.Writer
}

// Runner drives one review: fetch, filter, enrich, compose, generate, publish
type Runner struct {
	logger    *log.Logger
	fetcher   *Fetcher
	history   *HistoryFinder
	generator Generator
	publisher *Publisher
	exclude   []string
}

// NewRunner wires the pipeline components around the given clients
func NewRunner(logger *log.Logger, gh GitHubAPI, gen Generator, opts Options) *Runner {
	exclude := opts.ExcludeExtensions
	if exclude == nil {
		exclude = DefaultExcludeExtensions
	}
	return &Runner{
		logger:    logger,
		fetcher:   NewFetcher(gh, logger),
		history:   NewHistoryFinder(gh, logger, opts.HistoryScanLimit, opts.HistoryMatchLimit),
		generator: gen,
		publisher: NewPublisher(gh, logger, opts.DryRun),
		exclude:   exclude,
	}
}

// Run reviews one pull request. Every step is awaited before the next starts.
// A pull request with nothing reviewable ends with Result.Skipped and no error.
func (r *Runner) Run(ctx context.Context, prc PullRequestContext) (*Result, error) {
	snap, err := r.fetcher.Fetch(ctx, prc)
	if err != nil {
		return nil, err
	}

	files := FilterReviewable(snap.Files, r.exclude)
	if len(files) == 0 {
		r.logger.Info("No reviewable files in PR #%d, skipping review", prc.Number)
		return &Result{Skipped: true}, nil
	}
	r.logger.Diff("%d of %d files are reviewable", len(files), len(snap.Files))

	summaries := make([]FileSummary, 0, len(files))
	for _, f := range files {
		r.logger.Step("Looking up history for %s...", f.Filename)
		history, err := r.history.PreviousDiffs(ctx, prc, f.Filename)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, FileSummary{File: f, History: history})
	}

	prompt := BuildPrompt(PromptInput{
		Title:    snap.Title,
		Author:   snap.Author,
		Files:    summaries,
		Comments: snap.Comments,
	})

	r.logger.Step("Generating review...")
	text, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	r.logger.Step("Publishing review...")
	url, err := r.publisher.Publish(ctx, prc, text)
	if err != nil {
		return nil, err
	}

	result := &Result{Review: text, CommentURL: url, Posted: r.publisher.dryRun == nil}
	if result.Posted {
		r.logger.Success("Posted review on PR #%d", prc.Number)
		if url != "" {
			r.logger.PR("URL: %s", url)
		}
	}
	return result, nil
}
