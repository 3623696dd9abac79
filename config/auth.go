package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the employer authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword uses email/password login with signed tokens.
	AuthModePassword AuthMode = "password"
	// AuthModeOIDC additionally enables corporate single sign-on via OIDC.
	AuthModeOIDC AuthMode = "oidc"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oidc":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oidc)", v)
	}
}

// OIDCConfig contains OIDC single sign-on configuration.
// Used when Mode=oidc.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"hireloop"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:""`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/api/employers/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// AuthConfig groups all employer authentication configuration.
type AuthConfig struct {
	// Mode determines which employer authentication flows are available.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// TokenSecret signs employer API tokens. Required.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`

	// TokenTTL is the lifetime of an employer API token.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt work factor for candidate passwords.
	// Zero selects the library default.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"0"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`
}
