package review

import (
	"fmt"
	"strings"
)

// Sentinels used when a prompt section has nothing to show
const (
	NoHistorySentinel  = "No similar historical changes found."
	NoCommentsSentinel = "No public PR comments."
)

// PromptInput is everything the composer needs from a run
type PromptInput struct {
	Title    string
	Author   string
	Files    []FileSummary
	Comments []Comment
}

// BuildPrompt composes the review request sent to the model
func BuildPrompt(in PromptInput) string {
	var sb strings.Builder

	sb.WriteString("You are a senior software engineer reviewing a GitHub pull request.\n")
	sb.WriteString("Review the changes below for bugs, security issues, performance problems and readability.\n")
	sb.WriteString("Use the historical changes to the same files to judge whether this change is consistent with how the code has evolved.\n")
	sb.WriteString("Answer in GitHub-flavored markdown with concrete, actionable suggestions grouped by file.\n\n")

	fmt.Fprintf(&sb, "Pull request: %s\n", in.Title)
	fmt.Fprintf(&sb, "Author: @%s\n", in.Author)
	fmt.Fprintf(&sb, "Files to review: %d\n\n", len(in.Files))

	for _, fs := range in.Files {
		fmt.Fprintf(&sb, "### File: %s\n\n", fs.File.Filename)
		sb.WriteString("Current diff:\n```diff\n")
		sb.WriteString(fs.File.Patch)
		sb.WriteString("\n```\n\n")
		sb.WriteString("Historical changes:\n")
		sb.WriteString(HistoryBlock(fs.History))
		sb.WriteString("\n\n")
	}

	sb.WriteString("### Pull request comments\n\n")
	sb.WriteString(CommentBlock(in.Comments))
	sb.WriteString("\n")

	return sb.String()
}

// HistoryBlock renders a file's historical diffs, or NoHistorySentinel when there are none
func HistoryBlock(diffs []HistoricalDiff) string {
	if len(diffs) == 0 {
		return NoHistorySentinel
	}
	blocks := make([]string, 0, len(diffs))
	for _, d := range diffs {
		blocks = append(blocks, fmt.Sprintf("PR #%d by @%s:\n```diff\n%s\n```", d.PullNumber, d.Author, d.Patch))
	}
	return strings.Join(blocks, "\n\n")
}

// CommentBlock renders comments as "**author**: body" pairs, or NoCommentsSentinel when there are none
func CommentBlock(comments []Comment) string {
	if len(comments) == 0 {
		return NoCommentsSentinel
	}
	pairs := make([]string, 0, len(comments))
	for _, c := range comments {
		pairs = append(pairs, fmt.Sprintf("**%s**: %s", c.Author, c.Body))
	}
	return strings.Join(pairs, "\n\n")
}
