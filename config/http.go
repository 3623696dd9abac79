package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	// Used for generating absolute URLs in SSO redirects and other external contexts.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for the visitor cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// MaxUploadMB caps resume and roster uploads, in megabytes.
	MaxUploadMB int `env:"HTTP_MAX_UPLOAD_MB" envDefault:"8"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.MaxUploadMB < 1 {
		h.MaxUploadMB = 1
	}
	if h.MaxUploadMB > 64 {
		h.MaxUploadMB = 64
	}
}
