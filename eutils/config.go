// Package eutils is a minimal, strictly sequential client for the NCBI
// Entrez E-utilities (esearch, esummary, efetch).
package eutils

import (
	"net/http"
	"time"
)

const (
	DefaultBaseURL           = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"
	DefaultInterRequestDelay = 3 * time.Second
	DefaultTool              = "variantkit"
)

// RetryPolicy is opt-in. With MaxAttempts <= 1 a failed request is returned
// to the caller immediately.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration // Wait between attempts, multiplied by the attempt number
}

type Config struct {
	BaseURL string
	Tool    string
	Email   string
	APIKey  string

	// InterRequestDelay is waited out before every request, including the
	// first. It is static and ignores anything the server says.
	InterRequestDelay time.Duration

	Retry RetryPolicy

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Tool:              DefaultTool,
		InterRequestDelay: DefaultInterRequestDelay,
		Retry:             RetryPolicy{MaxAttempts: 1},
	}
}
