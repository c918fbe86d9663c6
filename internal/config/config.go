// Package config loads the process-wide configuration once at startup.
//
// WHY A CONFIG STRUCT INSTEAD OF os.Getenv EVERYWHERE?
// The GitHub and Gemini clients are configured exactly once, at process start.
// Reading ambient env vars deep inside a client makes it impossible to swap in
// test doubles. Loading everything into one struct in main() and passing it
// down (dependency injection) means:
//   - every component declares what it needs in its constructor
//   - tests construct a Config (or the client directly) with fake values
//   - a missing credential fails fast at startup, not on the first request
//
// Viper gives us env-var binding with defaults in a few lines. We only use the
// env layer — no config file — since every deployment of this app is
// configured through the environment.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to start.
type Config struct {
	Port          int    // HTTP listen port
	DBPath        string // SQLite database file path
	GitHubToken   string // bearer token for the GitHub REST API
	GeminiAPIKey  string // API key for the Gemini provider
	GeminiModel   string // model name, e.g. "gemini-2.5-pro"
	SessionSecret string // HMAC secret for session tokens
}

// Load reads configuration from the environment.
//
// Recognised variables:
//
//	PORT            (default 8080)
//	DB_PATH         (default data/codeatlas.db)
//	GITHUB_TOKEN    (required)
//	GEMINI_API_KEY  (required)
//	GEMINI_MODEL    (default gemini-2.5-pro)
//	SESSION_SECRET  (required)
//
// Load does not validate — call Validate afterwards so tests can build
// partial configs without tripping the required-credential checks.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "data/codeatlas.db")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-pro")

	return &Config{
		Port:          v.GetInt("PORT"),
		DBPath:        v.GetString("DB_PATH"),
		GitHubToken:   v.GetString("GITHUB_TOKEN"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		SessionSecret: v.GetString("SESSION_SECRET"),
	}
}

// Validate checks the startup-fatal conditions.
//
// The analysis pipeline is the core of the app — without the GitHub token or
// the Gemini key every /api/analyze call would fail, so we refuse to start.
// The same goes for the session secret: without it, session tokens would be
// signed with an empty key and anyone could forge one.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return errors.New("config: GITHUB_TOKEN is required")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("config: GEMINI_API_KEY is required")
	}
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET is required")
	}
	return nil
}
