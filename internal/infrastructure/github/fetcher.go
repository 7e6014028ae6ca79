package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"intelligent-cd/internal/application/port/output"
)

var _ output.ContentFetcherPort = (*Fetcher)(nil)

// maxContentBytes caps a single document download.
const maxContentBytes = 8 << 20

var repoPattern = regexp.MustCompile(`github\.com[:/]([^/]+/[^/]+?)(?:\.git)?/?$`)

// ParseRepo extracts "owner/repo" from a git remote URL, https or ssh form.
func ParseRepo(gitURL string) (string, error) {
	m := repoPattern.FindStringSubmatch(strings.TrimSpace(gitURL))
	if m == nil {
		return "", fmt.Errorf("cannot extract owner/repo from %q", gitURL)
	}
	return m[1], nil
}

// RawURL builds the raw.githubusercontent.com address for one document.
func RawURL(repo, branch, docsPath, folder, file string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s/%s",
		repo, branch, docsPath, folder, file)
}

// Fetcher downloads raw repository content over HTTPS.
type Fetcher struct {
	http   *http.Client
	logger output.LoggerPort
}

func NewFetcher(timeout time.Duration, logger output.LoggerPort) *Fetcher {
	return &Fetcher{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	f.logger.Debug("Fetched document",
		"url", url,
		"bytes", len(data),
		"durationMs", time.Since(start).Milliseconds(),
	)
	return data, nil
}
