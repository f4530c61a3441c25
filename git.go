package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
// Prioritizes the .git suffix or git@ prefix; plain https:// is ambiguous
// and treated as a web URL instead.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones a repository into a temporary directory and returns
// the directory path. The clone is shallow and single-branch; the caller
// removes the directory once the batch is done.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "tally-git-")
	if err != nil {
		return "", fmt.Errorf("creating temporary directory: %w", err)
	}

	logger.Debug().Str("url", url).Str("dir", tempDir).Msg("cloning repository")

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("cloning repository %q: %w", url, err)
	}

	return tempDir, nil
}
