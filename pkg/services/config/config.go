package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Resource names a remote collection of the governance API.
type Resource string

const (
	ResourceDashboard       Resource = "dashboard"
	ResourceAiSystems       Resource = "ai_systems"
	ResourceRiskAssessments Resource = "risk_assessments"
	ResourcePolicies        Resource = "policies"
	ResourceIncidents       Resource = "incidents"
	ResourceUsers           Resource = "users"
)

const (
	DefaultBaseURL         = "https://api.example.com"
	DefaultTokenKey        = "aims_auth_token"
	DefaultRefreshTokenKey = "aims_refresh_token"
	DefaultTimeoutMs       = 30000
	DefaultItemsPerPage    = 10
	DefaultDateFormat      = "2006-01-02"
	DefaultTimeFormat      = "15:04"

	credentialsFile = ".aimscfg"
)

// baseURLEnv lists the variables that may override the API base URL, first match wins.
var baseURLEnv = []string{"AIMS_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"}

type Endpoints struct {
	Dashboard       string `mapstructure:"dashboard"`
	AiSystems       string `mapstructure:"ai_systems"`
	RiskAssessments string `mapstructure:"risk_assessments"`
	Policies        string `mapstructure:"policies"`
	Incidents       string `mapstructure:"incidents"`
	Users           string `mapstructure:"users"`
}

type Auth struct {
	TokenKey        string `mapstructure:"token_key"`
	RefreshTokenKey string `mapstructure:"refresh_token_key"`
	CredentialsPath string `mapstructure:"credentials_path"`
}

type API struct {
	BaseURL     string    `mapstructure:"base_url"`
	Endpoints   Endpoints `mapstructure:"endpoints"`
	Auth        Auth      `mapstructure:"auth"`
	TimeoutMs   int       `mapstructure:"timeout_ms"`
	UseMockData bool      `mapstructure:"use_mock_data"`
}

type Features struct {
	EnableNotifications bool `mapstructure:"enable_notifications"`
	EnableExports       bool `mapstructure:"enable_exports"`
	EnableSharing       bool `mapstructure:"enable_sharing"`
}

type UI struct {
	ItemsPerPage int    `mapstructure:"items_per_page"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

type Config struct {
	API      API      `mapstructure:"api"`
	Features Features `mapstructure:"features"`
	UI       UI       `mapstructure:"ui"`
}

// Timeout is the per request deadline.
func (a API) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

// Endpoint returns the path of a resource relative to BaseURL.
func (a API) Endpoint(r Resource) (string, error) {
	var path string
	switch r {
	case ResourceDashboard:
		path = a.Endpoints.Dashboard
	case ResourceAiSystems:
		path = a.Endpoints.AiSystems
	case ResourceRiskAssessments:
		path = a.Endpoints.RiskAssessments
	case ResourcePolicies:
		path = a.Endpoints.Policies
	case ResourceIncidents:
		path = a.Endpoints.Incidents
	case ResourceUsers:
		path = a.Endpoints.Users
	default:
		return "", fmt.Errorf("unknown resource %q", r)
	}
	if path == "" {
		return "", fmt.Errorf("no endpoint configured for %s", r)
	}
	return path, nil
}

// Default returns the built-in settings with the base URL taken from the environment when set.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	var cfg Config
	// Unmarshal of plain defaults does not fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads settings from an optional file on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url must be absolute, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutMs <= 0 {
		return fmt.Errorf("api timeout must be positive, got %dms", c.API.TimeoutMs)
	}
	if c.API.Auth.TokenKey == "" {
		return fmt.Errorf("auth token key is required")
	}
	if c.UI.ItemsPerPage <= 0 {
		return fmt.Errorf("items per page must be positive, got %d", c.UI.ItemsPerPage)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.endpoints.dashboard", "/dashboard")
	v.SetDefault("api.endpoints.ai_systems", "/ai-systems")
	v.SetDefault("api.endpoints.risk_assessments", "/risk-assessments")
	v.SetDefault("api.endpoints.policies", "/policies")
	v.SetDefault("api.endpoints.incidents", "/incidents")
	v.SetDefault("api.endpoints.users", "/users")
	v.SetDefault("api.auth.token_key", DefaultTokenKey)
	v.SetDefault("api.auth.refresh_token_key", DefaultRefreshTokenKey)
	v.SetDefault("api.auth.credentials_path", defaultCredentialsPath())
	v.SetDefault("api.timeout_ms", DefaultTimeoutMs)
	v.SetDefault("api.use_mock_data", true)

	v.SetDefault("features.enable_notifications", true)
	v.SetDefault("features.enable_exports", true)
	v.SetDefault("features.enable_sharing", true)

	v.SetDefault("ui.items_per_page", DefaultItemsPerPage)
	v.SetDefault("ui.date_format", DefaultDateFormat)
	v.SetDefault("ui.time_format", DefaultTimeFormat)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv(append([]string{"api.base_url"}, baseURLEnv...)...)
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return credentialsFile
	}
	return filepath.Join(home, credentialsFile)
}
