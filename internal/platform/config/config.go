package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ストアの実装種別です。
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig は HTTP / gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string          `yaml:"listen_addr"`
	GRPCListenAddr     string          `yaml:"grpc_listen_addr"`
	ReadTimeout        time.Duration   `yaml:"-"`
	WriteTimeout       time.Duration   `yaml:"-"`
	IdleTimeout        time.Duration   `yaml:"-"`
	ShutdownTimeout    time.Duration   `yaml:"-"`
	ReadTimeoutRaw     string          `yaml:"read_timeout"`
	WriteTimeoutRaw    string          `yaml:"write_timeout"`
	IdleTimeoutRaw     string          `yaml:"idle_timeout"`
	ShutdownTimeoutRaw string          `yaml:"shutdown_timeout"`
	CORSAllowOrigins   []string        `yaml:"cors_allow_origins"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig はクライアント IP 単位のレート制限です。RPS が 0 の場合は無効です。
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// StoreConfig はレコードストアの選択です。
// FallbackToMemory が true の場合、PostgreSQL に到達できなければデモストアで起動します。
type StoreConfig struct {
	Driver           string `yaml:"driver"`
	FallbackToMemory bool   `yaml:"fallback_to_memory"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。URL が指定された場合は個別項目より優先します。
type DatabaseConfig struct {
	URL                string        `yaml:"url"`
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LogConfig はロガーの設定です。Format は json または console です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig は OpenTelemetry のトレース送信設定です。OTLPEndpoint が空の場合は無効です。
type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	Insecure     bool    `yaml:"insecure"`
	ServiceName  string  `yaml:"service_name"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

// LoadDotEnv は .env ファイルを環境変数に読み込みます。ファイルが存在しない場合は何もしません。
// 既に設定済みの環境変数は上書きしません。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.applyEnv(lookup)

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.ListenAddr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("STORE_DRIVER"); ok && v != "" {
		c.Store.Driver = v
	}
	if v, ok := lookup("STORE_FALLBACK_TO_MEMORY"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Store.FallbackToMemory = b
		}
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.Database.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && v != "" {
		c.Telemetry.OTLPEndpoint = v
	}
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "":
		c.Store.Driver = StoreDriverPostgres
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("config: store.driver must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}

	if c.Store.Driver == StoreDriverPostgres {
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	}

	if err := c.Log.validateAndNormalize(); err != nil {
		return err
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "funcionarios-api"
	}
	if c.Telemetry.SampleRatio <= 0 || c.Telemetry.SampleRatio > 1 {
		c.Telemetry.SampleRatio = 1
	}

	return nil
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
		def  time.Duration
	}{
		{"read_timeout", s.ReadTimeoutRaw, &s.ReadTimeout, 15 * time.Second},
		{"write_timeout", s.WriteTimeoutRaw, &s.WriteTimeout, 15 * time.Second},
		{"idle_timeout", s.IdleTimeoutRaw, &s.IdleTimeout, 60 * time.Second},
		{"shutdown_timeout", s.ShutdownTimeoutRaw, &s.ShutdownTimeout, 10 * time.Second},
	}
	for _, d := range durations {
		v, err := parseDurationAllowEmpty(d.raw)
		if err != nil {
			return fmt.Errorf("config: server.%s: %w", d.name, err)
		}
		if v == 0 {
			v = d.def
		}
		*d.dst = v
	}

	if s.RateLimit.RPS < 0 {
		return fmt.Errorf("config: server.rate_limit.rps must not be negative")
	}
	if s.RateLimit.RPS > 0 && s.RateLimit.Burst <= 0 {
		s.RateLimit.Burst = int(s.RateLimit.RPS) + 1
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.URL == "" {
		if d.Host == "" {
			return fmt.Errorf("config: database.host must be set")
		}
		if d.Port == 0 {
			return fmt.Errorf("config: database.port must be set")
		}
		if d.User == "" {
			return fmt.Errorf("config: database.user must be set")
		}
		if d.Password == "" {
			return fmt.Errorf("config: database.password must be set")
		}
		if d.Name == "" {
			return fmt.Errorf("config: database.name must be set")
		}
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LogConfig) validateAndNormalize() error {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	switch l.Format {
	case "":
		l.Format = "json"
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console")
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
