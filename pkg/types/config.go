// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperfetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MatchConfig holds the data the normalizer and verifier are parameterized
// on. Both lists default to the built-in sets when empty, so the matcher can
// be tested against synthetic domains without the optimizer-paper bias.
type MatchConfig struct {
	// StopWords are dropped during title normalization.
	StopWords []string `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`

	// BlacklistPatterns are normalized phrases that mark a candidate as a
	// known false positive unless the requested title contains them too.
	BlacklistPatterns []string `json:"blacklist_patterns,omitempty" yaml:"blacklist_patterns,omitempty"`
}

// ResolveConfig holds settings for the resolution stage.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	Match MatchConfig `json:"match" yaml:"match"`

	// Threshold is the minimum composite similarity for accepting the best
	// unverified candidate (default 0.5).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// ManualFallback enables the interactive search prompt when automatic
	// resolution fails.
	ManualFallback bool `json:"manual_fallback" yaml:"manual_fallback"`

	// VenueDomains are source-URL substrings marking proceedings venues
	// whose titles drift from canonical repository titles. Papers from
	// these venues get the looser, venue-specific search strategies.
	VenueDomains []string `json:"venue_domains,omitempty" yaml:"venue_domains,omitempty"`

	// PaperDelay is the pause between resolving consecutive papers
	// (default 3s; the repository API is rate limited).
	PaperDelay time.Duration `json:"paper_delay" yaml:"paper_delay"`
}

// DownloadConfig holds settings for the PDF download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory downloaded PDFs are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DiscoveryConfig holds settings for the paper discovery stage.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the OpenAI model used for web-search discovery (default "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the OpenAI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// OutputDir is the directory paper-list JSON files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ResultsConfig holds settings for the result persistence stage.
type ResultsConfig struct {
	// DBPath is the SQLite resolution-log path (default "data/paperfetch.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Resolve   ResolveConfig   `json:"resolve" yaml:"resolve"`
	Download  DownloadConfig  `json:"download" yaml:"download"`
	Results   ResultsConfig   `json:"results" yaml:"results"`
}
