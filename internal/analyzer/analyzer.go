// Package analyzer contains the repository-analysis pipeline: parse a GitHub
// URL, fetch content, compose prompts, call the model, aggregate the pieces.
//
// PARTIAL-FAILURE POLICY:
// The three generated sections (summary, structure analysis, setup guide) are
// independent. A failed README fetch must not prevent the structure analysis
// from running, and a failed Gemini call for one section must not block the
// others. So every error is recorded and the pipeline keeps going; the
// response carries whichever sections succeeded alongside a newline-joined
// accumulation of everything that failed. Callers must not assume
// all-or-nothing semantics.
//
// The pipeline is strictly sequential — a simplification, not a performance
// requirement, since each call is a blocking external round-trip anyway.
package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Iamdevsuyash/CodeAtlas/internal/llm"
)

// GitHubFetcher is the slice of the GitHub client the pipeline needs.
// Declaring the interface here (at the consumer) instead of in the github
// package follows "accept interfaces, return structs" — the orchestrator
// tests supply fakes without touching HTTP.
type GitHubFetcher interface {
	FetchReadme(ctx context.Context, owner, repo string) (string, error)
	FetchFileTree(ctx context.Context, owner, repo string) (string, error)
}

// Result is the aggregate of one analysis request. Any subset of the HTML
// fields may be empty if the corresponding fetch or generation failed; Err
// collects every failure message, newline-joined.
type Result struct {
	ReadmeSummary     string `json:"readme_summary,omitempty"`
	StructureAnalysis string `json:"structure_analysis,omitempty"`
	SetupGuide        string `json:"setup_guide,omitempty"`
	FileStructure     string `json:"file_structure,omitempty"`
	Err               string `json:"error,omitempty"`
}

// addError appends a failure message to the aggregate.
func (r *Result) addError(msg string) {
	if r.Err == "" {
		r.Err = msg
		return
	}
	r.Err = r.Err + "\n" + msg
}

// Analyzer runs the pipeline over injected clients.
type Analyzer struct {
	github GitHubFetcher
	llm    llm.Generator
	logger *slog.Logger
}

// New creates an Analyzer.
func New(github GitHubFetcher, generator llm.Generator, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		github: github,
		llm:    generator,
		logger: logger,
	}
}

// InvalidURLMessage is returned when the URL doesn't contain an owner/repo
// pair. Parsing failure aborts before any external call is made.
const InvalidURLMessage = "Invalid GitHub URL. Please use the format: https://github.com/owner/repo"

// Analyze runs the full pipeline for one repository URL and always returns a
// usable Result — errors live inside it, never alongside it.
func (a *Analyzer) Analyze(ctx context.Context, repoURL string) *Result {
	result := &Result{}

	// 1. Parse. The only failure that aborts the whole pipeline.
	owner, repo, ok := ParseRepoURL(repoURL)
	if !ok {
		result.addError(InvalidURLMessage)
		return result
	}

	a.logger.Info("analyzing repository",
		slog.String("owner", owner),
		slog.String("repo", repo),
	)

	// 2–3. README → summary. A fetch failure (or an empty README) skips only
	// the summary; there is no point sending the model a blank document.
	readme, err := a.github.FetchReadme(ctx, owner, repo)
	switch {
	case err != nil:
		result.addError(err.Error())
	case readme == "":
		result.addError("README content is empty.")
	default:
		if html, err := a.llm.Generate(ctx, SummaryPrompt(readme)); err != nil {
			result.addError("Error generating README summary: " + err.Error())
		} else {
			result.ReadmeSummary = html
		}
	}

	// 4–5. File tree → structure analysis, independent of the README's fate.
	fileStructure, err := a.github.FetchFileTree(ctx, owner, repo)
	switch {
	case err != nil:
		result.addError(err.Error())
	case fileStructure == "":
		result.addError("File structure is empty.")
	default:
		result.FileStructure = fileStructure
		if html, err := a.llm.Generate(ctx, StructurePrompt(fileStructure)); err != nil {
			result.addError("Error generating structure analysis: " + err.Error())
		} else {
			result.StructureAnalysis = html
		}
	}

	// 6. Setup guide, from whatever text survived the fetches. Both inputs
	// empty still produces a (generic) guide — matching the historical
	// behavior of always attempting this section.
	if html, err := a.llm.Generate(ctx, SetupPrompt(readme, fileStructure)); err != nil {
		result.addError("Error generating setup guide: " + err.Error())
	} else {
		result.SetupGuide = html
	}

	if result.Err != "" {
		a.logger.Warn("analysis completed with errors",
			slog.String("repo", owner+"/"+repo),
			slog.Int("errorCount", strings.Count(result.Err, "\n")+1),
		)
	}

	return result
}
