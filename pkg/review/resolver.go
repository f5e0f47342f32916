package review

import (
	"strconv"
	"strings"
)

// ResolveContext derives the pull request identity from the CI environment.
// repository is "owner/repo"; ref is e.g. "refs/pull/42/merge", where the
// segment after "pull" carries the number. A non-numeric segment resolves to
// 0 and is left for the API to reject.
func ResolveContext(repository, ref string) PullRequestContext {
	owner, repo, _ := strings.Cut(strings.TrimSpace(repository), "/")

	var number int
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(ref), "refs/"), "/")
	if len(parts) > 1 {
		number, _ = strconv.Atoi(parts[1])
	}

	return PullRequestContext{
		Owner:  owner,
		Repo:   repo,
		Number: number,
	}
}
