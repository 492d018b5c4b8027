// Package docs retrieves protected binary documents through the gateway,
// materializes them into short-lived local handles, and bounds their
// lifetime.
package docs

import (
	"context"
	"fmt"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linkledger/lenderctl/internal/logging"
)

// BinaryAPI is the slice of the gateway the fetcher needs.
type BinaryAPI interface {
	BaseURL() string
	FetchBinary(ctx context.Context, url string) ([]byte, string, error)
}

// presentFn launches the platform viewer on a materialized document. Var
// indirection so tests can observe the launch without opening anything.
var presentFn = openViewer

type Fetcher struct {
	api BinaryAPI
	ttl time.Duration
	log logging.Logger

	dir string
}

// NewFetcher builds a Fetcher whose handles live for ttl after opening,
// whether or not the viewer is still up.
func NewFetcher(api BinaryAPI, ttl time.Duration, log logging.Logger) *Fetcher {
	return &Fetcher{api: api, ttl: ttl, log: log}
}

// Open retrieves the document at fileURL, writes it to a temporary handle,
// and presents it in a detached viewer. Relative locations are resolved
// against the API origin; stored locations may be legacy-absolute or newer-
// relative. The handle is released after the fixed TTL; release failures are
// swallowed.
//
// Concurrent opens of the same document are not merged or rejected.
func (f *Fetcher) Open(ctx context.Context, fileURL string) (string, error) {
	data, contentType, err := f.api.FetchBinary(ctx, f.resolve(fileURL))
	if err != nil {
		return "", err
	}

	path, err := f.materialize(data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to materialize document: %w", err)
	}

	if err := presentFn(path); err != nil {
		f.log.Warn(ctx, "viewer launch failed", "path", path, "err", err)
	}

	time.AfterFunc(f.ttl, func() {
		_ = os.Remove(path)
	})

	f.log.Debug(ctx, "document opened", "path", path, "ttl", f.ttl)
	return path, nil
}

// resolve absolutizes a stored file location against the API origin when it
// is not already absolute.
func (f *Fetcher) resolve(fileURL string) string {
	if strings.HasPrefix(fileURL, "http://") || strings.HasPrefix(fileURL, "https://") {
		return fileURL
	}
	if !strings.HasPrefix(fileURL, "/") {
		fileURL = "/" + fileURL
	}
	return f.api.BaseURL() + fileURL
}

func (f *Fetcher) materialize(data []byte, contentType string) (string, error) {
	if f.dir == "" {
		dir, err := os.MkdirTemp("", "lenderctl-docs-")
		if err != nil {
			return "", err
		}
		f.dir = dir
	}

	path := filepath.Join(f.dir, uuid.NewString()+extensionFor(contentType))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// extensionFor picks a filename extension for the declared MIME type so the
// platform viewer dispatches correctly.
func extensionFor(contentType string) string {
	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch strings.TrimSpace(ct) {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, err := mime.ExtensionsByType(ct); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// openViewer starts the platform document viewer detached from this process.
func openViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
