package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIURL      = "https://api.github.com/repos/microshop-platform/shopctl/releases/latest"
	defaultDownloadURL = "https://github.com/microshop-platform/shopctl/releases/download"
	userAgent          = "shopctl"
)

// Updater checks for and installs new CLI releases. The URLs are fields so
// tests can point it at a local server.
type Updater struct {
	APIURL          string
	DownloadBaseURL string
	Out             io.Writer

	client *http.Client
}

// NewUpdater creates an updater against the public release feed.
func NewUpdater() *Updater {
	return &Updater{
		APIURL:          defaultAPIURL,
		DownloadBaseURL: defaultDownloadURL,
		Out:             os.Stdout,
		client:          &http.Client{Timeout: 10 * time.Second},
	}
}

// Release represents a GitHub release
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// LatestVersion fetches the latest release tag.
func (u *Updater) LatestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.APIURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return release.TagName, nil
}

// CheckForUpdate reports whether a newer release exists and its tag.
func (u *Updater) CheckForUpdate(ctx context.Context, currentVersion string) (bool, string, error) {
	latestVersion, err := u.LatestVersion(ctx)
	if err != nil {
		return false, "", err
	}

	return versionsDiffer(currentVersion, latestVersion), latestVersion, nil
}

// versionsDiffer returns true if latest is newer than current
func versionsDiffer(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")

	// Dev builds always get the update suggestion
	if current == "dev" {
		return true
	}

	return current != latest
}

// PrintUpdateNotification prints a hint on stderr when a newer release
// exists. Errors are swallowed; the check is best effort.
func PrintUpdateNotification(currentVersion string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u := NewUpdater()
	updateAvailable, latestVersion, err := u.CheckForUpdate(ctx, currentVersion)
	if err != nil {
		return
	}

	if updateAvailable {
		fmt.Fprintf(os.Stderr, "New version %s -> %s. Run: shopctl update\n\n", currentVersion, latestVersion)
	}
}
