package vocabfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func sha256hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// hubServer serves content at /org/vocab/resolve/<rev>/vocab.json and counts
// GET requests. HEAD requests carry checksum as X-Linked-Etag.
func hubServer(t *testing.T, content []byte, checksum string, gets *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/org/vocab/resolve/") {
			http.NotFound(w, r)
			return
		}
		if checksum != "" {
			w.Header().Set("X-Linked-Etag", `"`+checksum+`"`)
		}
		if r.Method == http.MethodHead {
			return
		}
		if gets != nil {
			gets.Add(1)
		}
		_, _ = w.Write(content)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetch_DownloadsAndWritesLock(t *testing.T) {
	content := []byte(`{"[hi]":0}`)
	sum := sha256hex(content)

	var gets atomic.Int32
	srv := hubServer(t, content, sum, &gets)
	outDir := t.TempDir()

	var log strings.Builder
	path, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: outDir,
		BaseURL: srv.URL, Stdout: &log,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if path != filepath.Join(outDir, "vocab.json") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != string(content) {
		t.Fatalf("content = %q, %v", data, err)
	}

	if !strings.Contains(log.String(), "verified vocab.json") {
		t.Errorf("log = %q", log.String())
	}

	lock := readLockManifest(filepath.Join(outDir, LockFile))
	if rec := lock.Files["vocab.json"]; rec.Repo != "org/vocab" || rec.Revision != "main" || rec.SHA256 != sum {
		t.Errorf("lock record = %+v", rec)
	}

	// Second fetch finds the file and skips the download.
	log.Reset()
	if _, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: outDir,
		BaseURL: srv.URL, Stdout: &log,
	}); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}

	if gets.Load() != 1 {
		t.Errorf("GET requests = %d; want 1", gets.Load())
	}

	if !strings.Contains(log.String(), "skip vocab.json") {
		t.Errorf("log = %q", log.String())
	}
}

func TestFetch_UsesLockedChecksum(t *testing.T) {
	content := []byte("vocab")
	srv := hubServer(t, content, "", nil) // no metadata headers
	outDir := t.TempDir()

	if err := writeLockManifest(filepath.Join(outDir, LockFile), lockManifest{
		Files: map[string]lockRecord{"vocab.json": {Repo: "org/vocab", Revision: "v1", SHA256: sha256hex(content)}},
	}); err != nil {
		t.Fatal(err)
	}

	_, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Revision: "v1", Filename: "vocab.json", OutDir: outDir, BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestFetch_LockIsScopedToRepo(t *testing.T) {
	contents := map[string][]byte{
		"/org/first/":  []byte(`{"a":0}`),
		"/org/second/": []byte(`{"b":0}`),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for prefix, content := range contents {
			if strings.HasPrefix(r.URL.Path, prefix) {
				w.Header().Set("X-Linked-Etag", `"`+sha256hex(content)+`"`)
				if r.Method != http.MethodHead {
					_, _ = w.Write(content)
				}
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	outDir := t.TempDir()
	for _, repo := range []string{"org/first", "org/second"} {
		if _, err := Fetch(context.Background(), Options{
			Repo: repo, Filename: "vocab.json", OutDir: outDir, BaseURL: srv.URL,
		}); err != nil {
			t.Fatalf("Fetch %s: %v", repo, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "vocab.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"b":0}` {
		t.Errorf("content = %q; want the second repo's file", data)
	}

	rec := readLockManifest(filepath.Join(outDir, LockFile)).Files["vocab.json"]
	if rec.Repo != "org/second" || rec.SHA256 != sha256hex(contents["/org/second/"]) {
		t.Errorf("lock record = %+v", rec)
	}
}

func TestFetch_ChecksumMismatchRemovesFile(t *testing.T) {
	srv := hubServer(t, []byte("tampered"), "", nil)
	outDir := t.TempDir()

	_, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: outDir, BaseURL: srv.URL,
		SHA256: strings.Repeat("a", 64),
	})
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("err = %v; want checksum mismatch", err)
	}

	if _, statErr := os.Stat(filepath.Join(outDir, "vocab.json")); !os.IsNotExist(statErr) {
		t.Error("mismatched file should be removed")
	}
}

func TestFetch_NoMetadataChecksum(t *testing.T) {
	srv := hubServer(t, []byte("x"), "", nil)

	_, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: t.TempDir(), BaseURL: srv.URL,
	})
	if err == nil || !strings.Contains(err.Error(), "--sha256") {
		t.Fatalf("err = %v; want hint to pass --sha256", err)
	}
}

func TestFetch_AccessDenied(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := Fetch(context.Background(), Options{
			Repo: "org/vocab", Filename: "vocab.json", OutDir: t.TempDir(), BaseURL: srv.URL,
		})
		srv.Close()

		var denied *ErrAccessDenied
		if !errors.As(err, &denied) {
			t.Errorf("HTTP %d: err = %v; want *ErrAccessDenied", code, err)
		}
	}
}

func TestFetch_SendsToken(t *testing.T) {
	content := []byte("v")
	var auth atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: t.TempDir(), BaseURL: srv.URL,
		SHA256: sha256hex(content), HFToken: "secret",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got, _ := auth.Load().(string); got != "Bearer secret" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestFetch_InvalidOptions(t *testing.T) {
	tests := []Options{
		{Filename: "v.json", OutDir: "x"},
		{Repo: "org/vocab", OutDir: "x"},
		{Repo: "org/vocab", Filename: "v.json"},
		{Repo: "org/vocab", Filename: "v.json", OutDir: "x", SHA256: "abc"},
	}

	for _, opts := range tests {
		if _, err := Fetch(context.Background(), opts); err == nil {
			t.Errorf("Fetch(%+v) = nil; want error", opts)
		}
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := hubServer(t, []byte("v"), strings.Repeat("b", 64), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, Options{
		Repo: "org/vocab", Filename: "vocab.json", OutDir: t.TempDir(), BaseURL: srv.URL,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}

func TestResolveURL(t *testing.T) {
	got := resolveURL(Options{BaseURL: "https://hub.example/", Repo: "org/vocab", Revision: "abc", Filename: "dir/vocab.json"})
	if want := "https://hub.example/org/vocab/resolve/abc/dir/vocab.json"; got != want {
		t.Errorf("resolveURL = %q; want %q", got, want)
	}
}

func TestNormalizeETag(t *testing.T) {
	sum := strings.Repeat("c", 64)
	for _, in := range []string{sum, `"` + sum + `"`, `W/"` + sum + `"`, "  " + sum + " "} {
		if got := normalizeETag(in); got != sum {
			t.Errorf("normalizeETag(%q) = %q", in, got)
		}
	}
}

func TestExistingMatches_Directory(t *testing.T) {
	if _, err := existingMatches(t.TempDir(), strings.Repeat("a", 64)); err == nil {
		t.Error("directory should be an error")
	}
}

func TestReadLockManifest_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), LockFile)
	if err := os.WriteFile(p, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := readLockManifest(p)
	if got.Files == nil || len(got.Files) != 0 {
		t.Errorf("got %+v; want empty manifest", got)
	}

	raw, _ := json.Marshal(got)
	if !strings.Contains(string(raw), `"files":{}`) {
		t.Errorf("manifest json = %s", raw)
	}
}
