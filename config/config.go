package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

// ErrBaseURLRequired возвращает ClientConfig, если не задан client.base_url
// (или LLANTABOX_API_URL). Адрес API клиент не угадывает.
var ErrBaseURLRequired = errors.New("client base url is required: set client.base_url or LLANTABOX_API_URL")

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Redis     RedisConfig     `yaml:"redis"`
	LlantaBox LlantaBoxConfig `yaml:"llantabox"`
	Client    ClientConfig    `yaml:"client"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	// Сколько ждать БД при старте, прежде чем уйти на in-memory store.
	ConnectWaitSeconds int `yaml:"connect_wait_seconds"`
}

type KafkaConfig struct {
	Host                 string `yaml:"host"`
	Port                 int    `yaml:"port"`
	SubmissionsTopicName string `yaml:"submissions_topic_name"`
	PublishTimeoutMillis int    `yaml:"publish_timeout_ms"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LlantaBoxConfig struct {
	HTTPAddr    string `yaml:"http_addr"`
	Environment string `yaml:"environment"`
	FrontendDir string `yaml:"frontend_dir"`

	CatalogCacheTTLSeconds int   `yaml:"catalog_cache_ttl_seconds"`
	StoreTimeoutMillis     int   `yaml:"store_timeout_ms"`
	SeedCatalog            *bool `yaml:"seed_catalog"`
	// Оптимистичное подтверждение: при ошибке записи в БД заявка
	// сохраняется в памяти процесса.
	BestEffortAck *bool `yaml:"best_effort_ack"`
}

type ClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}

// Load читает .env (если есть), YAML по path (если задан) и поверх
// накладывает переменные окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv накладывает переменные окружения на cfg.
func ApplyEnv(cfg *Config) error {
	setStr := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setInt := func(dst *int, key string) error {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setStr(&cfg.Database.URL, "DATABASE_URL")
	setStr(&cfg.Database.Host, "DB_HOST")
	setStr(&cfg.Database.Username, "DB_USER")
	setStr(&cfg.Database.Password, "DB_PASSWORD")
	setStr(&cfg.Database.DBName, "DB_NAME")
	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("DB_SSL"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			if b {
				cfg.Database.SSLMode = "require"
			} else {
				cfg.Database.SSLMode = "disable"
			}
		}
	}

	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		host, port, err := splitHostPort(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_ADDR: %w", err)
		}
		cfg.Redis.Host, cfg.Redis.Port = host, port
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		host, port, err := splitHostPort(strings.Split(v, ",")[0])
		if err != nil {
			return fmt.Errorf("invalid KAFKA_BROKERS: %w", err)
		}
		cfg.Kafka.Host, cfg.Kafka.Port = host, port
	}

	if v, ok := os.LookupEnv("PORT"); ok && strings.TrimSpace(v) != "" {
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.LlantaBox.HTTPAddr = ":" + strings.TrimSpace(v)
	}
	setStr(&cfg.LlantaBox.Environment, "APP_ENV")
	setStr(&cfg.LlantaBox.FrontendDir, "FRONTEND_DIR")
	setStr(&cfg.Client.BaseURL, "LLANTABOX_API_URL")
	return nil
}

func splitHostPort(addr string) (string, int, error) {
	addr = strings.TrimSpace(addr)
	i := strings.LastIndexByte(addr, ':')
	if i <= 0 {
		return "", 0, fmt.Errorf("expected host:port, got %q", addr)
	}
	port, err := strconv.Atoi(addr[i+1:])
	if err != nil {
		return "", 0, err
	}
	return addr[:i], port, nil
}

// DatabaseEnabled сообщает, задан ли адрес БД.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.URL != "" || c.Database.Host != ""
}

func (c *Config) ConnString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.Username, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, port),
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

func (c *Config) ConnectWait() time.Duration {
	if c.Database.ConnectWaitSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Database.ConnectWaitSeconds) * time.Second
}

func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	port := c.Redis.Port
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", c.Redis.Host, port)
}

func (c *Config) KafkaBrokers() []string {
	if c.Kafka.Host == "" {
		return nil
	}
	port := c.Kafka.Port
	if port == 0 {
		port = 9092
	}
	return []string{fmt.Sprintf("%s:%d", c.Kafka.Host, port)}
}

func (c *Config) SubmissionsTopic() string {
	if c.Kafka.SubmissionsTopicName == "" {
		return "llantabox.submissions"
	}
	return c.Kafka.SubmissionsTopicName
}

func (c *Config) PublishTimeout() time.Duration {
	if c.Kafka.PublishTimeoutMillis <= 0 {
		return time.Second
	}
	return time.Duration(c.Kafka.PublishTimeoutMillis) * time.Millisecond
}

func (c *Config) HTTPAddr() string {
	if c.LlantaBox.HTTPAddr == "" {
		return ":8000"
	}
	return c.LlantaBox.HTTPAddr
}

func (c *Config) Environment() string {
	if c.LlantaBox.Environment == "" {
		return "development"
	}
	return c.LlantaBox.Environment
}

func (c *Config) CatalogCacheTTL() time.Duration {
	if c.LlantaBox.CatalogCacheTTLSeconds < 0 {
		return 0
	}
	if c.LlantaBox.CatalogCacheTTLSeconds == 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.LlantaBox.CatalogCacheTTLSeconds) * time.Second
}

func (c *Config) StoreTimeout() time.Duration {
	if c.LlantaBox.StoreTimeoutMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.LlantaBox.StoreTimeoutMillis) * time.Millisecond
}

func (c *Config) SeedCatalog() bool {
	return c.LlantaBox.SeedCatalog == nil || *c.LlantaBox.SeedCatalog
}

func (c *Config) BestEffortAck() bool {
	return c.LlantaBox.BestEffortAck == nil || *c.LlantaBox.BestEffortAck
}

// ResolvedClient это проверенная конфигурация клиента.
type ResolvedClient struct {
	BaseURL string
	Timeout time.Duration
}

// ClientConfig проверяет секцию client. base URL обязателен и должен быть
// абсолютным http(s); завершающие слэши отрезаются.
func (c *Config) ClientConfig() (ResolvedClient, error) {
	base := strings.TrimRight(strings.TrimSpace(c.Client.BaseURL), "/")
	if base == "" {
		return ResolvedClient{}, ErrBaseURLRequired
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ResolvedClient{}, fmt.Errorf("client base url %q must be an absolute http(s) url", base)
	}
	timeout := 5 * time.Second
	if c.Client.TimeoutSeconds > 0 {
		timeout = time.Duration(c.Client.TimeoutSeconds) * time.Second
	}
	return ResolvedClient{BaseURL: base, Timeout: timeout}, nil
}
