package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestClient spins up an httptest server with the given mux and points a
// Client at it. The server is torn down with the test.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWithBaseURL("test-token", srv.URL, testLogger())
}

func TestFetchReadme(t *testing.T) {
	readme := "# Hello\n\nThis is the README."

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello/readme", func(w http.ResponseWriter, r *http.Request) {
		// GitHub base64-wraps content at 60 columns; emulate the newlines.
		encoded := base64.StdEncoding.EncodeToString([]byte(readme))
		wrapped := encoded[:10] + "\n" + encoded[10:]
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped})
	})

	c := newTestClient(t, mux)

	got, err := c.FetchReadme(context.Background(), "octocat", "hello")
	assert.NoError(t, err)
	assert.Equal(t, readme, got)
}

func TestFetchReadme_HTTPErrorNamesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/private/readme", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := newTestClient(t, mux)

	_, err := c.FetchReadme(context.Background(), "octocat", "private")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Could not fetch README")
	assert.Contains(t, err.Error(), "404")
}

// treeHandler serves the two endpoints FetchFileTree hits: the repo lookup
// (for the default branch) and the recursive tree.
func treeHandler(t *testing.T, entries []map[string]string) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"default_branch": "main"})
	})
	mux.HandleFunc("/repos/octocat/hello/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		json.NewEncoder(w).Encode(map[string]any{"tree": entries})
	})
	return mux
}

func TestFetchFileTree_FiltersAndPreservesOrder(t *testing.T) {
	entries := []map[string]string{
		{"path": "README.md", "type": "blob"},
		{"path": "src", "type": "tree"}, // directory — excluded
		{"path": "src/main.go", "type": "blob"},
		{"path": "src/util.go", "type": "blob"},
	}

	c := newTestClient(t, treeHandler(t, entries))

	got, err := c.FetchFileTree(context.Background(), "octocat", "hello")
	assert.NoError(t, err)
	assert.Equal(t, "README.md\nsrc/main.go\nsrc/util.go", got)
}

func TestFetchFileTree_TruncatesAt200(t *testing.T) {
	// 250 blobs → exactly the first 200, in server order, no marker.
	entries := make([]map[string]string, 0, 250)
	for i := 0; i < 250; i++ {
		entries = append(entries, map[string]string{
			"path": fmt.Sprintf("file%03d.txt", i),
			"type": "blob",
		})
	}

	c := newTestClient(t, treeHandler(t, entries))

	got, err := c.FetchFileTree(context.Background(), "octocat", "hello")
	assert.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 200)
	assert.Equal(t, "file000.txt", lines[0])
	assert.Equal(t, "file199.txt", lines[199])
}

func TestFetchFileTree_UnmodifiedAtOrBelow200(t *testing.T) {
	entries := make([]map[string]string, 0, 200)
	for i := 0; i < 200; i++ {
		entries = append(entries, map[string]string{
			"path": fmt.Sprintf("file%03d.txt", i),
			"type": "blob",
		})
	}

	c := newTestClient(t, treeHandler(t, entries))

	got, err := c.FetchFileTree(context.Background(), "octocat", "hello")
	assert.NoError(t, err)
	assert.Len(t, strings.Split(got, "\n"), 200)
}

func TestFetchFileTree_HTTPErrorNamesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	c := newTestClient(t, mux)

	_, err := c.FetchFileTree(context.Background(), "octocat", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Could not fetch file structure")
	assert.Contains(t, err.Error(), "403")
}

func TestSearchTrending(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Contains(t, q.Get("q"), "created:>")
		assert.Contains(t, q.Get("q"), "rust")
		assert.Equal(t, "stars", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "12", q.Get("per_page"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"full_name":        "rust-lang/rust",
					"html_url":         "https://github.com/rust-lang/rust",
					"stargazers_count": 90000,
					"description":      "Empowering everyone",
					"forks_count":      12000,
				},
			},
		})
	})

	c := newTestClient(t, mux)

	repos, err := c.SearchTrending(context.Background(), "rust")
	assert.NoError(t, err)
	assert.Len(t, repos, 1)
	assert.Equal(t, "rust-lang/rust", repos[0].Name)
	assert.Equal(t, 90000, repos[0].Stars)
	assert.Equal(t, 12000, repos[0].Forks)
}
