// Package vocabfetch downloads vocabulary files from a Hugging Face
// repository and verifies them against a SHA-256 checksum.
package vocabfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultBaseURL is the Hugging Face hub.
const DefaultBaseURL = "https://huggingface.co"

// LockFile is written next to fetched files and records, per local file, the
// repo, revision and checksum it was fetched at, so later fetches of the same
// source can skip metadata lookups.
const LockFile = "vocab.lock.json"

type Options struct {
	Repo     string
	Revision string // defaults to "main"
	Filename string
	SHA256   string // optional; resolved from the lock file or hub metadata when empty
	OutDir   string
	HFToken  string
	BaseURL  string       // defaults to DefaultBaseURL
	Client   *http.Client // defaults to a client without timeout
	Stdout   io.Writer
}

type ErrAccessDenied struct {
	Repo string
	Msg  string
}

func (e *ErrAccessDenied) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("access denied for %s", e.Repo)
}

type lockManifest struct {
	Generated string                `json:"generated"`
	Files     map[string]lockRecord `json:"files"`
}

type lockRecord struct {
	Repo     string `json:"repo"`
	Revision string `json:"revision"`
	SHA256   string `json:"sha256"`
}

var shaHexPattern = regexp.MustCompile(`(?i)^[a-f0-9]{64}$`)

// Fetch downloads opts.Filename into opts.OutDir and returns the local path.
// An existing file with the expected checksum is kept as is.
func Fetch(ctx context.Context, opts Options) (string, error) {
	if opts.Repo == "" {
		return "", errors.New("repo is required")
	}
	if opts.Filename == "" {
		return "", errors.New("filename is required")
	}
	if opts.OutDir == "" {
		return "", errors.New("out dir is required")
	}
	if opts.Revision == "" {
		opts.Revision = "main"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 0}
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.SHA256 != "" && !isSHA256Hex(opts.SHA256) {
		return "", fmt.Errorf("invalid sha256 %q", opts.SHA256)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}

	lockPath := filepath.Join(opts.OutDir, LockFile)
	lock := readLockManifest(lockPath)
	lock.Generated = time.Now().UTC().Format(time.RFC3339)

	expected := strings.ToLower(opts.SHA256)
	if expected == "" {
		if lr, ok := lock.Files[opts.Filename]; ok && lr.Repo == opts.Repo && lr.Revision == opts.Revision && isSHA256Hex(lr.SHA256) {
			expected = strings.ToLower(lr.SHA256)
		} else {
			var err error
			expected, err = resolveChecksumFromMetadata(ctx, opts)
			if err != nil {
				return "", err
			}
		}
	}

	localPath := filepath.Join(opts.OutDir, filepath.Base(filepath.FromSlash(opts.Filename)))

	if ok, err := existingMatches(localPath, expected); err != nil {
		return "", err
	} else if ok {
		fmt.Fprintf(opts.Stdout, "skip %s (checksum match)\n", opts.Filename)
	} else {
		fmt.Fprintf(opts.Stdout, "download %s@%s -> %s\n", opts.Filename, opts.Revision, localPath)
		actual, err := downloadWithProgress(ctx, opts, localPath)
		if err != nil {
			return "", err
		}
		if actual != expected {
			_ = os.Remove(localPath)
			return "", fmt.Errorf("checksum mismatch for %s: expected %s got %s", opts.Filename, expected, actual)
		}
		fmt.Fprintf(opts.Stdout, "verified %s (sha256=%s)\n", opts.Filename, actual)
	}

	lock.Files[opts.Filename] = lockRecord{Repo: opts.Repo, Revision: opts.Revision, SHA256: expected}
	if err := writeLockManifest(lockPath, lock); err != nil {
		return "", err
	}

	return localPath, nil
}

func existingMatches(path, expected string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat existing file: %w", err)
	}
	if fi.IsDir() {
		return false, fmt.Errorf("expected file at %s, found directory", path)
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

func downloadWithProgress(ctx context.Context, opts Options, outPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL(opts), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	setAuth(req, opts.HFToken)

	resp, err := opts.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkAccess(resp, opts.Repo); err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed for %s: %s", opts.Filename, resp.Status)
	}

	tmp := outPath + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	pw := &progressWriter{w: opts.Stdout, total: resp.ContentLength, last: time.Now()}

	if _, err := io.Copy(io.MultiWriter(fh, h, pw), resp.Body); err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download read failed: %w", err)
	}

	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move temp file into place: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// progressWriter reports download progress at most every 700ms.
type progressWriter struct {
	w       io.Writer
	total   int64
	written int64
	last    time.Time
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if time.Since(p.last) > 700*time.Millisecond {
		if p.total > 0 {
			pct := float64(p.written) * 100 / float64(p.total)
			fmt.Fprintf(p.w, "  progress: %.1f%% (%d/%d bytes)\n", pct, p.written, p.total)
		} else {
			fmt.Fprintf(p.w, "  progress: %d bytes\n", p.written)
		}
		p.last = time.Now()
	}
	return len(b), nil
}

func resolveChecksumFromMetadata(ctx context.Context, opts Options) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, resolveURL(opts), nil)
	if err != nil {
		return "", fmt.Errorf("build metadata request: %w", err)
	}
	setAuth(req, opts.HFToken)

	resp, err := opts.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("metadata request failed for %s: %w", opts.Filename, err)
	}
	defer resp.Body.Close()

	if err := checkAccess(resp, opts.Repo); err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return "", fmt.Errorf("metadata request failed for %s: %s", opts.Filename, resp.Status)
	}

	for _, key := range []string{"X-Linked-Etag", "Etag"} {
		if v := normalizeETag(resp.Header.Get(key)); isSHA256Hex(v) {
			return strings.ToLower(v), nil
		}
	}

	return "", fmt.Errorf("unable to resolve sha256 metadata for %s; pass --sha256", opts.Filename)
}

func checkAccess(resp *http.Response, repo string) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &ErrAccessDenied{
			Repo: repo,
			Msg:  fmt.Sprintf("access denied for %s; provide HF_TOKEN or --hf-token", repo),
		}
	}
	return nil
}

func resolveURL(opts Options) string {
	return fmt.Sprintf("%s/%s/resolve/%s/%s", strings.TrimRight(opts.BaseURL, "/"), opts.Repo, opts.Revision, opts.Filename)
}

func setAuth(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func normalizeETag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "W/")
	return strings.Trim(v, "\"")
}

func isSHA256Hex(v string) bool {
	return shaHexPattern.MatchString(v)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read file for checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func readLockManifest(path string) lockManifest {
	out := lockManifest{Files: map[string]lockRecord{}}

	b, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return lockManifest{Files: map[string]lockRecord{}}
	}
	if out.Files == nil {
		out.Files = map[string]lockRecord{}
	}
	return out
}

func writeLockManifest(path string, lock lockManifest) error {
	b, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lock manifest: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write lock manifest: %w", err)
	}
	return nil
}
