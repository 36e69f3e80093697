// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout applied to each call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// The portal rejects submissions without a browser-like value.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for a scrape run over a roll-number range.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the results page URL. Both the token fetch and the form
	// submission go to this address.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Start and End are the inclusive roll-number bounds, iterated in
	// ascending order.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Delay is the pause between consecutive lookups (default 0).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// MaxRetries is the number of retries on HTTP 429 responses.
	// Zero means a single attempt per call.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ReportFormat selects the summary document format.
type ReportFormat string

const (
	FormatPDF  ReportFormat = "pdf"
	FormatXLSX ReportFormat = "xlsx"
	FormatYAML ReportFormat = "yaml"
	FormatJSON ReportFormat = "json"
)

// ReportConfig holds settings for the report writer.
type ReportConfig struct {
	// OutputPath is the destination file for the summary document.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Title is the document title rendered above the table.
	Title string `json:"title" yaml:"title"`

	// Format selects the output format: pdf, xlsx, yaml, or json.
	Format ReportFormat `json:"format" yaml:"format"`
}

// ArchiveConfig holds settings for the optional run archive.
type ArchiveConfig struct {
	// DBPath is the SQLite database file. Empty disables archiving.
	DBPath string `json:"db_path" yaml:"db_path"`
}
