package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benithors/dotprovision/internal/store"
)

// Config aggregates everything the commands need. Sources are applied in
// order: defaults, YAML file, environment, then explicitly set CLI flags.
type Config struct {
	NameCom    NameComConfig
	Cloudflare CloudflareConfig
	Provision  ProvisionConfig
	Check      CheckConfig
	Log        LogConfig

	Store   string
	Timeout time.Duration
}

type NameComConfig struct {
	Username string
	Token    string
	BaseURL  string
}

type CloudflareConfig struct {
	Email   string
	APIKey  string
	BaseURL string
}

type ProvisionConfig struct {
	ServerIP string
	MaxPrice float64
	Cycles   int
	Phrase   string
}

type CheckConfig struct {
	Timeout time.Duration
}

// LogConfig controls structured logging settings.
type LogConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultMaxPrice     = 5.0
	defaultCycles       = 5
	defaultTimeout      = 30 * time.Second
	defaultCheckTimeout = 10 * time.Second
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
)

type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func Default() Config {
	return Config{
		Provision: ProvisionConfig{MaxPrice: defaultMaxPrice, Cycles: defaultCycles},
		Check:     CheckConfig{Timeout: defaultCheckTimeout},
		Log:       LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Store:     store.DefaultPath,
		Timeout:   defaultTimeout,
	}
}

// Load builds a Config from defaults, the optional YAML file at path and the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &OpError{Op: "config.load", Path: path, Err: err}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return &OpError{Op: "config.decode", Path: path, Err: err}
	}

	setString(&c.NameCom.Username, dto.NameCom.Username)
	setString(&c.NameCom.Token, dto.NameCom.Token)
	setString(&c.NameCom.BaseURL, dto.NameCom.BaseURL)
	setString(&c.Cloudflare.Email, dto.Cloudflare.Email)
	setString(&c.Cloudflare.APIKey, dto.Cloudflare.APIKey)
	setString(&c.Cloudflare.BaseURL, dto.Cloudflare.BaseURL)
	setString(&c.Provision.ServerIP, dto.Provision.ServerIP)
	setString(&c.Provision.Phrase, dto.Provision.Phrase)
	setString(&c.Store, dto.Store)
	setString(&c.Log.Level, dto.Log.Level)
	setString(&c.Log.Format, dto.Log.Format)
	if dto.Provision.MaxPrice != nil {
		c.Provision.MaxPrice = *dto.Provision.MaxPrice
	}
	if dto.Provision.Cycles != nil {
		c.Provision.Cycles = *dto.Provision.Cycles
	}
	if err := setDuration(&c.Timeout, dto.Timeout); err != nil {
		return &OpError{Op: "config.decode", Path: path, Err: fmt.Errorf("timeout: %w", err)}
	}
	if err := setDuration(&c.Check.Timeout, dto.Check.Timeout); err != nil {
		return &OpError{Op: "config.decode", Path: path, Err: fmt.Errorf("check.timeout: %w", err)}
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.NameCom.Username = valueOrDefault("NAMECOM_USERNAME", c.NameCom.Username)
	c.NameCom.Token = valueOrDefault("NAMECOM_TOKEN", c.NameCom.Token)
	c.NameCom.BaseURL = valueOrDefault("NAMECOM_BASE_URL", c.NameCom.BaseURL)
	c.Cloudflare.Email = valueOrDefault("CLOUDFLARE_EMAIL", c.Cloudflare.Email)
	c.Cloudflare.APIKey = valueOrDefault("CLOUDFLARE_API_KEY", c.Cloudflare.APIKey)
	c.Cloudflare.BaseURL = valueOrDefault("CLOUDFLARE_BASE_URL", c.Cloudflare.BaseURL)
	c.Provision.ServerIP = valueOrDefault("SERVER_IP", c.Provision.ServerIP)
	c.Store = valueOrDefault("RESULT_STORE", c.Store)
	c.Log.Level = valueOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = valueOrDefault("LOG_FORMAT", c.Log.Format)

	if v := os.Getenv("MAX_PRICE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_PRICE value %q: %w", v, err)
		}
		c.Provision.MaxPrice = f
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// ValidateRegistrar checks what every name.com call needs.
func (c Config) ValidateRegistrar() error {
	var errs []error
	if strings.TrimSpace(c.NameCom.Username) == "" {
		errs = append(errs, errors.New("namecom username is required (NAMECOM_USERNAME)"))
	}
	if strings.TrimSpace(c.NameCom.Token) == "" {
		errs = append(errs, errors.New("namecom token is required (NAMECOM_TOKEN)"))
	}
	return errors.Join(errs...)
}

func (c Config) ValidateDNS() error {
	var errs []error
	if strings.TrimSpace(c.Cloudflare.Email) == "" {
		errs = append(errs, errors.New("cloudflare email is required (CLOUDFLARE_EMAIL)"))
	}
	if strings.TrimSpace(c.Cloudflare.APIKey) == "" {
		errs = append(errs, errors.New("cloudflare api key is required (CLOUDFLARE_API_KEY)"))
	}
	return errors.Join(errs...)
}

// ValidateProvision checks everything a provisioning run touches.
func (c Config) ValidateProvision() error {
	errs := []error{c.ValidateRegistrar(), c.ValidateDNS()}
	if ip := net.ParseIP(strings.TrimSpace(c.Provision.ServerIP)); ip == nil || ip.To4() == nil {
		errs = append(errs, fmt.Errorf("server ip %q is not an IPv4 address (SERVER_IP)", c.Provision.ServerIP))
	}
	if !(c.Provision.MaxPrice > 0) || math.IsInf(c.Provision.MaxPrice, 1) {
		errs = append(errs, fmt.Errorf("max price must be a positive finite number, got %v (MAX_PRICE)", c.Provision.MaxPrice))
	}
	if c.Provision.Cycles < 0 {
		errs = append(errs, fmt.Errorf("cycles must not be negative, got %d", c.Provision.Cycles))
	}
	if strings.TrimSpace(c.Store) == "" {
		errs = append(errs, errors.New("result store path is required"))
	}
	return errors.Join(errs...)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
