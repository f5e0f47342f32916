package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/saint0x/ggreview/pkg/log"
)

// FileName is the workflow file written under .github/workflows
const FileName = "gemini-review.yml"

// Template is the GitHub Actions workflow that runs the review on pull requests
const Template = `name: Gemini AI Review

on:
  pull_request:
    types: [opened, synchronize, reopened]

permissions:
  contents: read
  pull-requests: write
  issues: write

jobs:
  review:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/setup-go@v5
        with:
          go-version: stable
      - name: Review pull request
        run: go run github.com/saint0x/ggreview@latest
        env:
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
          GEMINI_API_KEY: ${{ secrets.GEMINI_API_KEY }}
`

// Manager installs and removes the review workflow in a repository
type Manager struct {
	logger *log.Logger
}

// New creates a new workflow manager
func New(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Path returns where the workflow lives inside repoPath
func Path(repoPath string) string {
	return filepath.Join(repoPath, ".github", "workflows", FileName)
}

// Install writes the workflow file; an existing file is kept unless force is set
func (m *Manager) Install(repoPath string, force bool) (string, error) {
	if err := m.ValidateGitRepo(repoPath); err != nil {
		return "", err
	}

	path := Path(repoPath)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("workflow already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create workflows directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return "", fmt.Errorf("failed to write workflow: %w", err)
	}

	m.logger.Success("Installed %s", path)
	return path, nil
}

// Remove deletes the workflow file; a missing file is not an error
func (m *Manager) Remove(repoPath string) error {
	path := Path(repoPath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove workflow: %w", err)
	}
	m.logger.Success("Removed %s", path)
	return nil
}

// ValidateGitRepo validates a git repository
func (m *Manager) ValidateGitRepo(path string) error {
	gitPath := filepath.Join(path, ".git")
	if _, err := os.Stat(gitPath); os.IsNotExist(err) {
		return fmt.Errorf("not a git repository: %w", err)
	}
	return nil
}
