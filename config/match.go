package config

// MatchConfig contains matching proxy configuration. Matching is optional;
// leave BaseURL empty to disable the match endpoints.
type MatchConfig struct {
	// BaseURL is the base URL of the matching service, e.g.
	// "https://match.internal.example". Empty disables matching.
	BaseURL string `env:"BASE_URL" envDefault:""`

	// ScorePath is a JMESPath expression locating the numeric fit score in
	// the matching service response. Empty uses the client default.
	ScorePath string `env:"SCORE_PATH" envDefault:""`

	// APIKey authenticates requests to the matching service.
	APIKey string `env:"API_KEY" envDefault:""`
}
