package review

import "strings"

// DefaultExcludeExtensions are skipped unless configured otherwise
var DefaultExcludeExtensions = []string{".json", ".md"}

// FilterReviewable keeps files whose name ends in none of the extensions.
// Order is preserved and the input is not modified.
func FilterReviewable(files []ChangedFile, extensions []string) []ChangedFile {
	out := make([]ChangedFile, 0, len(files))
	for _, f := range files {
		if hasAnySuffix(f.Filename, extensions) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
