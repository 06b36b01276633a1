package config

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
	RBAC     RBACConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Timezone string
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (a AppConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MaxRetries      int
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL is the form golang-migrate and lib/pq expect.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries int
}

type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
	PollInterval  time.Duration
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type PayrollConfig struct {
	// WorkingDays is the fixed divisor used to turn basic salary into a daily rate.
	WorkingDays int
	// DeductibleLeaveCodes lists leave type codes whose approved days reduce pay.
	DeductibleLeaveCodes []string
}

type StorageConfig struct {
	Driver        string // local or s3
	LocalDir      string
	PublicBaseURL string

	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

type RBACConfig struct {
	PolicyTTL time.Duration
}

var (
	current *Config
	mu      sync.RWMutex
)

// Load reads .env (if any), an optional config.yaml and HRMS_* environment
// variables, in increasing order of priority.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("HRMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			Port:     v.GetString("app.port"),
			Timezone: v.GetString("app.timezone"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			MaxRetries:      v.GetInt("database.max_retries"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis.addr"),
			Password:   v.GetString("redis.password"),
			DB:         v.GetInt("redis.db"),
			MaxRetries: v.GetInt("redis.max_retries"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("kafka.brokers")),
			ConsumerGroup: v.GetString("kafka.consumer_group"),
			PollInterval:  v.GetDuration("kafka.poll_interval"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt.secret"),
			AccessTokenTTL:  v.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: v.GetDuration("jwt.refresh_token_ttl"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Payroll: PayrollConfig{
			WorkingDays:          v.GetInt("payroll.working_days"),
			DeductibleLeaveCodes: splitList(v.GetString("payroll.deductible_leave_codes")),
		},
		Storage: StorageConfig{
			Driver:        v.GetString("storage.driver"),
			LocalDir:      v.GetString("storage.local_dir"),
			PublicBaseURL: v.GetString("storage.public_base_url"),
			Bucket:        v.GetString("storage.bucket"),
			Region:        v.GetString("storage.region"),
			Endpoint:      v.GetString("storage.endpoint"),
			AccessKey:     v.GetString("storage.access_key"),
			SecretKey:     v.GetString("storage.secret_key"),
			UsePathStyle:  v.GetBool("storage.use_path_style"),
			PresignTTL:    v.GetDuration("storage.presign_ttl"),
		},
		RBAC: RBACConfig{
			PolicyTTL: v.GetDuration("rbac.policy_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	current = cfg
	mu.Unlock()

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Payroll.WorkingDays <= 0 {
		return fmt.Errorf("payroll.working_days must be positive, got %d", c.Payroll.WorkingDays)
	}
	if c.App.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("jwt.secret must be set in production")
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
	}
	return nil
}

// Get returns the last loaded configuration, or defaults when Load was never called.
func Get() *Config {
	mu.RLock()
	cfg := current
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}
	return Default()
}

// Default builds a Config from built-in defaults only. Tests rely on it.
func Default() *Config {
	return &Config{
		App:      AppConfig{Name: "go-hrms", Env: "development", Port: "3000", Timezone: "Asia/Jakarta"},
		Database: DatabaseConfig{SSLMode: "disable", MaxOpenConns: 25, MaxIdleConns: 10, ConnMaxLifetime: time.Hour, MaxRetries: 5},
		JWT:      JWTConfig{Secret: defaultJWTSecret, AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 7 * 24 * time.Hour},
		HTTP:     HTTPConfig{ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second, IdleTimeout: 60 * time.Second, ShutdownTimeout: 10 * time.Second},
		Payroll:  PayrollConfig{WorkingDays: 30, DeductibleLeaveCodes: []string{"UNPAID", "CASUAL", "SICK"}},
		Storage:  StorageConfig{Driver: "local", LocalDir: "storage/files", PublicBaseURL: "/files", PresignTTL: 15 * time.Minute},
		RBAC:     RBACConfig{PolicyTTL: 30 * time.Second},
	}
}

// Set replaces the active configuration.
func Set(cfg *Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}

const defaultJWTSecret = "change-me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-hrms")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.timezone", "Asia/Jakarta")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "hrms")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.consumer_group", "go-hrms")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)

	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("payroll.working_days", 30)
	v.SetDefault("payroll.deductible_leave_codes", "UNPAID,CASUAL,SICK")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "storage/files")
	v.SetDefault("storage.public_base_url", "/files")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presign_ttl", 15*time.Minute)

	v.SetDefault("rbac.policy_ttl", 30*time.Second)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
