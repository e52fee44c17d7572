package config

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"

	"github.com/sethvargo/go-envconfig"
)

// New reads the service configuration from the environment. Missing required
// keys are a fatal startup error for the relevant subsystem.
func New(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %v", err)
	}
	return cfg, nil
}

type Config struct {
	Hostname string `env:"HOSTNAME, default=localhost"`
	Port     int    `env:"PORT, default=8080"`
	BasePath string `env:"BASE_PATH, default=/"`

	Postgresql     Postgresql
	Authentication Authentication
	Github         Github
}

type Postgresql struct {
	Host         string `env:"DATABASE_HOST, required"`
	Port         int    `env:"DATABASE_PORT, default=5432"`
	Username     string `env:"DATABASE_USERNAME, required"`
	Password     string `env:"DATABASE_PASSWORD, required"`
	DatabaseName string `env:"DATABASE_NAME, required"`
}

type Authentication struct {
	// PEM-encoded RSA private key used to sign access tokens; the public half
	// verifies them.
	PrivateKey                   string `env:"PRIVATE_KEY, required"`
	AccessTokenExpirationSeconds int    `env:"ACCESS_TOKEN_EXPIRATION_SECONDS, default=86400"`
	SameSiteMode                 string `env:"SAME_SITE_MODE, default=strict"`

	// FakeGithubUsername, when set, authenticates otherwise-anonymous requests
	// as the user owning that GitHub login. Bypass auth for controlled,
	// non-production deployments only.
	FakeGithubUsername string `env:"FAKE_GITHUB_USERNAME"`
}

type Github struct {
	ClientID     string `env:"GITHUB_CLIENT_ID, required"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET, required"`
	CallbackURL  string `env:"GITHUB_CALLBACK_URL, required"`
}

// GetPrivateKey parses the configured PEM-encoded RSA private key.
func (a Authentication) GetPrivateKey() (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(a.PrivateKey))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not an RSA key")
	}
	return rsaKey, nil
}

// GetSameSiteMode maps the configured cookie SameSite mode onto [http.SameSite].
func (a Authentication) GetSameSiteMode() (http.SameSite, error) {
	switch a.SameSiteMode {
	case "default":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("unknown SameSite mode %q", a.SameSiteMode)
}
