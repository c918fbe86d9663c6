package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Iamdevsuyash/CodeAtlas/internal/analyzer"
	"github.com/Iamdevsuyash/CodeAtlas/internal/handler"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

// mockAnalyzer returns a canned result and records the URL it was asked to
// analyze.
type mockAnalyzer struct {
	CapturedURL string
	ReturnRes   *analyzer.Result
}

func (m *mockAnalyzer) Analyze(_ context.Context, repoURL string) *analyzer.Result {
	m.CapturedURL = repoURL
	if m.ReturnRes != nil {
		return m.ReturnRes
	}
	return &analyzer.Result{}
}

type mockTrending struct {
	CapturedQuery string
	ReturnRepos   []model.TrendingRepo
	ReturnErr     error
}

func (m *mockTrending) SearchTrending(_ context.Context, searchQuery string) ([]model.TrendingRepo, error) {
	m.CapturedQuery = searchQuery
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnRepos, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAnalyzeHandler_HandleAnalyze(t *testing.T) {
	t.Run("successful analysis", func(t *testing.T) {
		mock := &mockAnalyzer{
			ReturnRes: &analyzer.Result{
				ReadmeSummary:     "<p>A web framework.</p>",
				StructureAnalysis: "<p>Standard layout.</p>",
				SetupGuide:        "<p>pip install</p>",
				FileStructure:     "setup.py\nsrc/app.py",
			},
		}
		h := handler.NewAnalyzeHandler(mock, &mockTrending{}, testLogger())

		reqBody := `{"repo_url":"https://github.com/pallets/flask"}`
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleAnalyze(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://github.com/pallets/flask", mock.CapturedURL)

		var res analyzer.Result
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.Equal(t, "<p>A web framework.</p>", res.ReadmeSummary)
		assert.Equal(t, "setup.py\nsrc/app.py", res.FileStructure)
		assert.Empty(t, res.Err)
	})

	t.Run("partial failure still returns 200", func(t *testing.T) {
		mock := &mockAnalyzer{
			ReturnRes: &analyzer.Result{
				StructureAnalysis: "<p>ok</p>",
				Err:               "Error generating README summary: quota exceeded",
			},
		}
		h := handler.NewAnalyzeHandler(mock, &mockTrending{}, testLogger())

		reqBody := `{"repo_url":"https://github.com/pallets/flask"}`
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleAnalyze(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res analyzer.Result
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res.Err, "quota exceeded")
	})

	t.Run("missing repo_url", func(t *testing.T) {
		mock := &mockAnalyzer{}
		h := handler.NewAnalyzeHandler(mock, &mockTrending{}, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(`{}`))
		rr := httptest.NewRecorder()

		h.HandleAnalyze(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		// The pipeline must not run for an empty URL.
		assert.Empty(t, mock.CapturedURL)
	})

	t.Run("unparseable URL", func(t *testing.T) {
		mock := &mockAnalyzer{
			ReturnRes: &analyzer.Result{Err: analyzer.InvalidURLMessage},
		}
		h := handler.NewAnalyzeHandler(mock, &mockTrending{}, testLogger())

		reqBody := `{"repo_url":"https://gitlab.com/owner/repo"}`
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleAnalyze(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid GitHub URL")
	})

	t.Run("invalid request body", func(t *testing.T) {
		h := handler.NewAnalyzeHandler(&mockAnalyzer{}, &mockTrending{}, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(`{"repo_url":`))
		rr := httptest.NewRecorder()

		h.HandleAnalyze(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAnalyzeHandler_HandleTrending(t *testing.T) {
	t.Run("returns repositories", func(t *testing.T) {
		mock := &mockTrending{
			ReturnRepos: []model.TrendingRepo{
				{Name: "owner/hot", URL: "https://github.com/owner/hot", Stars: 4200},
			},
		}
		h := handler.NewAnalyzeHandler(&mockAnalyzer{}, mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/trending?search_query=language:go", nil)
		rr := httptest.NewRecorder()

		h.HandleTrending(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "language:go", mock.CapturedQuery)

		var repos []model.TrendingRepo
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&repos))
		assert.Len(t, repos, 1)
		assert.Equal(t, "owner/hot", repos[0].Name)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mock := &mockTrending{ReturnErr: errors.New("rate limited")}
		h := handler.NewAnalyzeHandler(&mockAnalyzer{}, mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		rr := httptest.NewRecorder()

		h.HandleTrending(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}
