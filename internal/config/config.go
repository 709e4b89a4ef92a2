package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultJWTSecret is the development secret. Load rejects it when Env is "prod".
const DefaultJWTSecret = "supersecretkey"

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// SuiNetworks are the networks the fullnode URL can be derived for.
var SuiNetworks = []string{"mainnet", "testnet", "devnet", "localnet"}

type Config struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"supersecretkey"`


	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// CORSAllowedOrigins is a list of origins allowed for CORS (comma-separated in the environment).
	// When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For / X-Real-IP
	// headers are believed. Requests from any other peer are keyed by their own address.
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" env-separator:","`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `yaml:"tls_cert_file" env:"TLS_CERT_FILE"`
	TLSKeyFile  string `yaml:"tls_key_file" env:"TLS_KEY_FILE"`

	SuiNetwork   string `yaml:"sui_network" env:"SUI_NETWORK,NEXT_PUBLIC_SUI_NETWORK" env-default:"testnet"`
	SuiRPCURL    string `yaml:"sui_rpc_url" env:"SUI_RPC_URL,NEXT_PUBLIC_SUI_RPC_URL"`
	SuiFaucetURL string `yaml:"sui_faucet_url" env:"SUI_FAUCET_URL,NEXT_PUBLIC_SUI_FAUCET_URL"`

	WalrusPublisherURL  string `yaml:"walrus_publisher_url" env:"WALRUS_PUBLISHER_URL,NEXT_PUBLIC_WALRUS_PUBLISHER_URL" env-default:"https://publisher.walrus-testnet.walrus.space"`
	WalrusAggregatorURL string `yaml:"walrus_aggregator_url" env:"WALRUS_AGGREGATOR_URL,NEXT_PUBLIC_WALRUS_AGGREGATOR_URL" env-default:"https://aggregator.walrus-testnet.walrus.space"`

	// WalrusMaxUploadBytes caps POST /api/walrus/upload bodies (default 10 MiB).
	WalrusMaxUploadBytes int64 `yaml:"walrus_max_upload_bytes" env:"WALRUS_MAX_UPLOAD_BYTES" env-default:"10485760"`

	ReviewPackageID  string `yaml:"review_package_id" env:"REVIEW_PACKAGE_ID,NEXT_PUBLIC_REVIEW_PACKAGE_ID"`
	ReviewRegistryID string `yaml:"review_registry_id" env:"REVIEW_REGISTRY_ID,NEXT_PUBLIC_REVIEW_REGISTRY_ID"`

	EnableBlockchain bool `yaml:"enable_blockchain" env:"ENABLE_BLOCKCHAIN,NEXT_PUBLIC_ENABLE_BLOCKCHAIN" env-default:"false"`
	EnableWalrus     bool `yaml:"enable_walrus" env:"ENABLE_WALRUS,NEXT_PUBLIC_ENABLE_WALRUS" env-default:"false"`

	// Store selects where admin logs and API keys live: "memory" (seeded) or "postgres".
	Store string `yaml:"store" env:"STORE" env-default:"memory"`

	DBHost string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort string `yaml:"db_port" env:"DB_PORT" env-default:"5432"`
	DBName string `yaml:"db_name" env:"DB_NAME" env-default:"verakita"`
	DBUser string `yaml:"db_user" env:"DB_USER" env-default:"verakita"`
	DBPass string `yaml:"db_pass" env:"DB_PASS" env-default:"verakita"`

	DBMaxOpenConns int `yaml:"db_max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns int `yaml:"db_max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`

	// ProbeSchedule is the cron spec for the Sui/Walrus health probe. Empty disables it.
	ProbeSchedule string `yaml:"probe_schedule" env:"PROBE_SCHEDULE" env-default:"@every 1m"`
}

// Load reads configuration from the environment, or from the YAML file named by
// CONFIG_PATH when set (environment values still win).
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	cfg.CORSAllowedOrigins = trimOrigins(cfg.CORSAllowedOrigins)
	if cfg.SuiRPCURL == "" {
		cfg.SuiRPCURL = FullnodeURL(cfg.SuiNetwork)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot express as tags.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(SuiNetworks, c.SuiNetwork) {
		errs = append(errs, fmt.Errorf("SUI_NETWORK must be one of %s", strings.Join(SuiNetworks, ", ")))
	}
	if c.Store != StoreMemory && c.Store != StorePostgres {
		errs = append(errs, fmt.Errorf("STORE must be %q or %q", StoreMemory, StorePostgres))
	}
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set in prod"))
	}
	if c.WalrusMaxUploadBytes <= 0 {
		errs = append(errs, errors.New("WALRUS_MAX_UPLOAD_BYTES must be positive"))
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a single-address prefix.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid CIDR %q", raw)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid IP %q", raw)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// DatabaseURL returns a postgres URL suitable for golang-migrate.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// FullnodeURL returns the public fullnode RPC endpoint for a Sui network.
func FullnodeURL(network string) string {
	if network == "localnet" {
		return "http://127.0.0.1:9000"
	}
	return "https://fullnode." + network + ".sui.io:443"
}

// trimOrigins trims spaces and drops empty entries.
func trimOrigins(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}
