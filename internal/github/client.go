// Package github is a thin client for the handful of GitHub REST endpoints
// the analysis pipeline needs: README content, the recursive file tree of the
// default branch, and repository search for the trending feed.
//
// ERROR CONTRACT:
// Every method returns a result-or-error pair and never panics past this
// boundary. HTTP failures become human-readable messages that name the status
// code; anything else becomes a wrapped generic message. The orchestrator
// aggregates these strings into the response, so the wording here is
// user-visible.
//
// There is no retry, backoff, or caching — a transient failure surfaces
// immediately as an error and the caller decides what to do with the partial
// result.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

const (
	defaultBaseURL = "https://api.github.com"

	// maxTreeEntries caps the file list interpolated into prompts. Trees
	// larger than this are truncated silently — the remainder is dropped
	// without signalling it downstream.
	maxTreeEntries = 200

	requestTimeout = 15 * time.Second
)

// Client talks to the GitHub REST API with a fixed bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New creates a Client authenticated with the given token.
//
// oauth2.StaticTokenSource wraps the token; oauth2.NewClient returns an
// *http.Client whose transport adds "Authorization: Bearer <token>" to every
// request, so none of the methods below handle auth themselves.
func New(token string, logger *slog.Logger) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = requestTimeout

	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// NewWithBaseURL is New with an overridable API root, for tests that point
// the client at an httptest.Server.
func NewWithBaseURL(token, baseURL string, logger *slog.Logger) *Client {
	c := New(token, logger)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// get issues a GET with the GitHub media type header and decodes the JSON
// body into out. A non-2xx response is returned as *httpError so callers can
// produce their endpoint-specific message with the status code.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling GitHub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpError{status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding GitHub response: %w", err)
	}

	return nil
}

// httpError marks a non-2xx GitHub response.
type httpError struct {
	status int
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d", e.status)
}

// readmeResponse is the slice of GET /repos/{o}/{r}/readme we care about.
// GitHub returns the file content base64-encoded in the "content" field.
type readmeResponse struct {
	Content string `json:"content"`
}

// FetchReadme returns the decoded README text of a repository.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	c.logger.Debug("fetching README",
		slog.String("owner", owner),
		slog.String("repo", repo),
	)

	var body readmeResponse
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, repo), &body); err != nil {
		if he, ok := err.(*httpError); ok {
			return "", fmt.Errorf(
				"Could not fetch README. Repository might be private, or have no README. (HTTP Error: %d)",
				he.status)
		}
		return "", fmt.Errorf("An unexpected error occurred while fetching README: %w", err)
	}

	// GitHub wraps the base64 payload at 60 columns; the decoder rejects the
	// embedded newlines unless we strip them first.
	raw := strings.ReplaceAll(body.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("An unexpected error occurred while fetching README: %w", err)
	}

	return string(decoded), nil
}

type repoResponse struct {
	DefaultBranch string `json:"default_branch"`
}

type treeResponse struct {
	Tree []treeEntry `json:"tree"`
}

// treeEntry is one node in a git tree: a "blob" is a file, a "tree" is a
// directory.
type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// FetchFileTree returns the repository's file paths, newline-joined.
//
// Two round-trips: first resolve the default branch, then fetch its tree
// recursively. Only blob entries (files) are kept, in the order the server
// returned them, capped at maxTreeEntries.
func (c *Client) FetchFileTree(ctx context.Context, owner, repo string) (string, error) {
	c.logger.Debug("fetching file tree",
		slog.String("owner", owner),
		slog.String("repo", repo),
	)

	var info repoResponse
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &info); err != nil {
		return "", treeError(err)
	}

	var tree treeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, repo, info.DefaultBranch)
	if err := c.get(ctx, path, &tree); err != nil {
		return "", treeError(err)
	}

	files := make([]string, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		if entry.Type != "blob" {
			continue
		}
		files = append(files, entry.Path)
		if len(files) == maxTreeEntries {
			break
		}
	}

	return strings.Join(files, "\n"), nil
}

func treeError(err error) error {
	if he, ok := err.(*httpError); ok {
		return fmt.Errorf("Could not fetch file structure. (HTTP Error: %d)", he.status)
	}
	return fmt.Errorf("An unexpected error occurred while fetching file structure: %w", err)
}

// searchResponse is the slice of the repository search result we keep.
type searchResponse struct {
	Items []struct {
		FullName    string `json:"full_name"`
		HTMLURL     string `json:"html_url"`
		Stars       int    `json:"stargazers_count"`
		Description string `json:"description"`
		Forks       int    `json:"forks_count"`
	} `json:"items"`
}

// SearchTrending returns up to 12 repositories created within the last two
// years, most-starred first, optionally narrowed by a search query.
func (c *Client) SearchTrending(ctx context.Context, searchQuery string) ([]model.TrendingRepo, error) {
	qualifiers := []string{}
	if searchQuery != "" {
		qualifiers = append(qualifiers, searchQuery)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -730).Format("2006-01-02")
	qualifiers = append(qualifiers, "created:>"+cutoff)

	params := url.Values{
		"q":        {strings.Join(qualifiers, " ")},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {"12"},
	}

	var body searchResponse
	if err := c.get(ctx, "/search/repositories?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("Error searching repos: %w", err)
	}

	repos := make([]model.TrendingRepo, 0, len(body.Items))
	for _, item := range body.Items {
		repos = append(repos, model.TrendingRepo{
			Name:        item.FullName,
			URL:         item.HTMLURL,
			Stars:       item.Stars,
			Description: item.Description,
			Forks:       item.Forks,
		})
	}

	return repos, nil
}
