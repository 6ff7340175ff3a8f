package update

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// SelfUpdate downloads the latest release, verifies its checksum, and swaps
// it in over the running binary.
func (u *Updater) SelfUpdate(ctx context.Context, currentVersion string) error {
	latestVersion, err := u.LatestVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !versionsDiffer(currentVersion, latestVersion) {
		fmt.Fprintf(u.Out, "Already up to date (version %s)\n", currentVersion)
		return nil
	}

	fmt.Fprintf(u.Out, "Updating from %s to %s...\n", currentVersion, latestVersion)

	assetName, err := releaseAsset()
	if err != nil {
		return err
	}

	fmt.Fprintln(u.Out, "Downloading new version...")
	downloadURL := fmt.Sprintf("%s/%s/%s", u.DownloadBaseURL, latestVersion, assetName)

	tmpFile, err := u.downloadFile(ctx, downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download update: %w", err)
	}
	defer os.Remove(tmpFile)

	fmt.Fprintln(u.Out, "Verifying checksum...")
	if err := u.verifyChecksum(ctx, tmpFile, downloadURL+".sha256"); err != nil {
		return fmt.Errorf("checksum verification failed: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	fmt.Fprintln(u.Out, "Installing new version...")
	if err := replaceBinary(tmpFile, execPath); err != nil {
		return fmt.Errorf("failed to install update: %w", err)
	}

	fmt.Fprintf(u.Out, "\n✓ Successfully updated to version %s!\n", latestVersion)

	return nil
}

// releaseAsset returns the release asset name for the current platform.
func releaseAsset() (string, error) {
	switch runtime.GOOS {
	case "linux", "darwin":
		switch runtime.GOARCH {
		case "amd64", "arm64":
			return fmt.Sprintf("shopctl-%s-%s", runtime.GOOS, runtime.GOARCH), nil
		}
		return "", fmt.Errorf("unsupported architecture: %s", runtime.GOARCH)
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "shopctl-windows-amd64.exe", nil
		}
		return "", fmt.Errorf("unsupported architecture: %s", runtime.GOARCH)
	}
	return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
}

// downloadFile downloads a release asset to a temporary file.
func (u *Updater) downloadFile(ctx context.Context, url string) (string, error) {
	// Binary downloads can take a while, so don't reuse the short-timeout
	// client used for the release feed.
	client := &http.Client{Timeout: 5 * time.Minute}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "shopctl-update-*")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// verifyChecksum fetches the published SHA256 and compares it against the
// downloaded file.
func (u *Updater) verifyChecksum(ctx context.Context, filePath, checksumURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checksumURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download checksum (status %d)", resp.StatusCode)
	}

	checksumData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Checksum file format: "hash  filename"
	parts := strings.Fields(string(checksumData))
	if len(parts) < 1 {
		return fmt.Errorf("invalid checksum format")
	}
	expectedHash := parts[0]

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	actualHash := fmt.Sprintf("%x", h.Sum(nil))

	if actualHash != expectedHash {
		return fmt.Errorf("checksum mismatch (expected: %s, got: %s)", expectedHash, actualHash)
	}

	return nil
}

// replaceBinary swaps the new binary in over the current one, keeping a
// backup until the swap succeeds.
func replaceBinary(newBinaryPath, currentBinaryPath string) error {
	if err := os.Chmod(newBinaryPath, 0755); err != nil {
		return err
	}

	// Windows can't overwrite a running executable; rename around it instead.
	if runtime.GOOS == "windows" {
		backupPath := currentBinaryPath + ".old"
		os.Remove(backupPath)

		if err := os.Rename(currentBinaryPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup current binary: %w", err)
		}
		if err := os.Rename(newBinaryPath, currentBinaryPath); err != nil {
			os.Rename(backupPath, currentBinaryPath)
			return fmt.Errorf("failed to install new binary: %w", err)
		}
		return nil
	}

	backupPath := currentBinaryPath + ".backup"
	if err := copyFile(currentBinaryPath, backupPath); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := copyFile(newBinaryPath, currentBinaryPath); err != nil {
		copyFile(backupPath, currentBinaryPath)
		return fmt.Errorf("failed to install new binary: %w", err)
	}

	os.Remove(backupPath)

	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.Chmod(dst, sourceInfo.Mode())
}
